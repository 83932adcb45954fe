// Package cmd implements the contour command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/contour-lang/contour/analyzer"
	"github.com/contour-lang/contour/ast"
	"github.com/contour-lang/contour/builtins"
	"github.com/contour-lang/contour/parser"
)

var traceKeys = []string{
	"contour.scanner",
	"contour.parser",
	"contour.analyzer",
	"contour.repl",
}

// Execute runs the contour CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "contour",
		Usage:                  "A pure-functional language for geometric shape scripting",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "trace",
				Usage: "Trace level [Debug|Info|Error]",
				Value: "Error",
			},
		},
		// Allow `contour script.ct` as shorthand for `contour analyze script.ct`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				setupTracing(cmd.String("trace"))
				return analyzeFile(cmd.Args().First())
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse a .ct file and print its phrase tree",
				ArgsUsage: "<file.ct>",
				Action:    parseAction,
			},
			{
				Name:      "analyze",
				Usage:     "Analyze a .ct file and print its IR outline",
				ArgsUsage: "<file.ct>",
				Action:    analyzeAction,
			},
			{
				Name:      "check",
				Usage:     "Syntax- and scope-check one or more .ct files",
				ArgsUsage: "<file.ct>...",
				Action:    checkAction,
			},
			{
				Name:   "repl",
				Usage:  "Interactive read-analyze-print loop",
				Action: replAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupTracing installs the log-based trace adapter and applies the
// requested level to all contour trace keys.
func setupTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("CONTOUR_FORCE_COLOR") == "" {
		pterm.DisableColor()
	}
}

func parseFile(path string) (*ast.ProgramPhrase, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	prog, err := parser.Parse(path, string(src))
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func parseAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: contour parse <file.ct>")
	}
	setupTracing(cmd.String("trace"))
	prog, err := parseFile(cmd.Args().First())
	if err != nil {
		return err
	}
	fmt.Print(ast.Sprint(prog))
	return nil
}

func analyzeFile(path string) error {
	prog, err := parseFile(path)
	if err != nil {
		return err
	}
	module, err := analyzer.AnalyzeProgram(prog, builtins.Default())
	if err != nil {
		return err
	}
	fmt.Print(analyzer.Sprint(module))
	return nil
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: contour analyze <file.ct>")
	}
	setupTracing(cmd.String("trace"))
	return analyzeFile(cmd.Args().First())
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: contour check <file.ct>...")
	}
	setupTracing(cmd.String("trace"))
	failed := 0
	for _, path := range cmd.Args().Slice() {
		if err := checkFile(path); err != nil {
			pterm.Error.Println(err)
			failed++
		} else {
			pterm.Info.Printf("%s ok\n", path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, cmd.NArg())
	}
	return nil
}

func checkFile(path string) error {
	prog, err := parseFile(path)
	if err != nil {
		return err
	}
	_, err = analyzer.AnalyzeProgram(prog, builtins.Default())
	return err
}
