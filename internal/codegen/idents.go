package codegen

import "strconv"

// reserved is the fixed escaping table (§4.6.3): ES2020 keywords,
// strict-mode reserved words, and the handful of identifiers that are
// technically legal but would silently shadow a global every emitted
// module depends on.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "instanceof": true,
	"new": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "let": true, "static": true,
	"enum": true, "await": true,
	"implements": true, "interface": true, "package": true, "private": true,
	"protected": true, "public": true,
	"null": true, "true": true, "false": true, "undefined": true,
	"NaN": true, "Infinity": true, "eval": true, "arguments": true,
}

// escapeIdent applies §4.6.3's escaping rule to every emitted binding,
// parameter, field-key shorthand, and imported local name.
func escapeIdent(name string) string {
	if reserved[name] {
		return name + "$"
	}
	return name
}

// wildcardNamer returns successive placeholder names for JS
// destructuring slots a wildcard pattern must still occupy
// (§4.6.6: "_unused0, _unused1, ...").
type wildcardNamer struct{ n int }

func (w *wildcardNamer) next() string {
	name := "_unused" + strconv.Itoa(w.n)
	w.n++
	return name
}
