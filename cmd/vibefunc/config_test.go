package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeTempConfig(t, "entry: match-option\nout: ./dist\n")

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "match-option", cfg.Entry)
	assert.Equal(t, "./dist", cfg.Out)
}

func TestLoadProjectConfigMissingEntry(t *testing.T) {
	path := writeTempConfig(t, "out: ./dist\n")

	_, err := loadProjectConfig(path)
	assert.Error(t, err)
}

func TestLoadProjectConfigMissingFile(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
