// Command vibefunc is a small driver over internal/compiler. It has no
// lexer or parser of its own: it runs one of the named programs in
// internal/fixtures (built directly as ASTs) through the whole-program
// pipeline, prints diagnostics, and prints whatever ES2020 the pipeline
// produced to stdout, or writes it under an output directory with --out.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/vibefun/vibefun/internal/compiler"
	"github.com/vibefun/vibefun/internal/diag"
	"github.com/vibefun/vibefun/internal/fixtures"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		outDir      = flag.String("out", "", "Directory to write generated JS into (build only)")
		configPath  = flag.String("config", "", "Path to a YAML project file naming the entry point (build only)")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "list":
		listScenarios()

	case "build":
		// flag.Parse stops at the subcommand, so flags written after it
		// (or after the scenario name) are parsed here.
		args := flag.Args()[1:]
		name := ""
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			name, args = args[0], args[1:]
		}
		flag.CommandLine.Parse(args)
		if name == "" {
			name = flag.Arg(0)
		}
		out := *outDir
		if *configPath != "" {
			cfg, err := loadProjectConfig(*configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
				os.Exit(1)
			}
			if name == "" {
				name = cfg.Entry
			}
			if out == "" {
				out = cfg.Out
			}
		}
		if name == "" {
			fmt.Fprintf(os.Stderr, "%s: missing scenario name\n", red("Error"))
			fmt.Println("Usage: vibefunc build <scenario> [--out dir]")
			fmt.Println("       vibefunc build --config project.yaml")
			os.Exit(1)
		}
		buildScenario(name, out)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("vibefunc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
	fmt.Println("\nA small ML-family language that compiles to ES2020.")
}

func printHelp() {
	fmt.Println(bold("vibefunc - compile a vibefun program to ES2020"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vibefunc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s                List the built-in example programs\n", cyan("list"))
	fmt.Printf("  %s <name>        Compile one to ES2020 and print/write it\n", cyan("build"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --out <dir>      Write each compiled module's JS under dir instead of stdout")
	fmt.Println("  --config <file>  Read entry point and output dir from a YAML project file")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help           Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s\n", cyan("vibefunc list"))
	fmt.Printf("  %s\n", cyan("vibefunc build match-option"))
	fmt.Printf("  %s\n", cyan("vibefunc build width-subtyping --out ./dist"))
}

func listScenarios() {
	fmt.Println(bold("Built-in programs:"))
	for _, s := range fixtures.All() {
		fmt.Printf("  %s  %s\n", cyan(pad(s.Name, 20)), s.Description)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func buildScenario(name, outDir string) {
	scenario, ok := fixtures.Get(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: unknown scenario '%s'\n", red("Error"), name)
		fmt.Println("Run 'vibefunc list' to see available programs.")
		os.Exit(1)
	}

	fmt.Printf("%s Compiling %s...\n", cyan("→"), scenario.Name)
	result, diags := compiler.Compile(compiler.Config{}, scenario.Inputs)
	printDiagnostics(diags)

	if result == nil {
		fmt.Fprintf(os.Stderr, "\n%s compilation failed\n", red("✗"))
		os.Exit(1)
	}

	for _, path := range result.Order {
		js, ok := result.Outputs[path]
		if !ok {
			continue
		}
		if outDir == "" {
			fmt.Printf("\n%s %s\n", bold("//"), path)
			fmt.Println(js)
			continue
		}
		if err := writeOutput(outDir, path, js); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	}

	fmt.Printf("\n%s compiled %d module(s)\n", green("✓"), len(result.Outputs))
}

func writeOutput(outDir, modulePath, js string) error {
	rel := strings.TrimPrefix(modulePath, "./")
	if !strings.HasSuffix(rel, ".js") {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".js"
	}
	dest := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(js), 0o644)
}

func printDiagnostics(diags *diag.Collector) {
	items := diag.SortStable(diags.Items())
	if len(items) == 0 {
		return
	}
	for _, d := range items {
		label := severityLabel(d.Severity)
		fmt.Printf("%s %s [%s] %s\n", label, d.Primary, d.Code, d.Message)
		if d.Hint != "" {
			fmt.Printf("  %s %s\n", yellow("hint:"), d.Hint)
		}
	}
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.Error:
		return red("error:")
	case diag.Warning:
		return yellow("warning:")
	default:
		return cyan("note:")
	}
}
