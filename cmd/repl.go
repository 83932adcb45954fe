package cmd

import (
	"context"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"

	"github.com/contour-lang/contour/analyzer"
	"github.com/contour-lang/contour/builtins"
	"github.com/contour-lang/contour/parser"
)

func tracer() tracing.Trace {
	return tracing.Select("contour.repl")
}

// replAction runs the interactive read-analyze-print loop. Each line
// is parsed and analyzed as a standalone module; the resulting IR
// outline is printed. Quit with ctrl-D.
func replAction(ctx context.Context, cmd *cli.Command) error {
	setupTracing(cmd.String("trace"))
	pterm.Info.Println("Welcome to contour")
	tracer().Infof("Quit with <ctrl>D")

	rl, err := readline.New("contour> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	ns := builtins.Default()
	lineno := 0
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		lineno++
		if evalLine(line, lineno, ns) {
			break
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// evalLine analyzes one REPL line; returns true to quit.
func evalLine(line string, lineno int, ns analyzer.Namespace) bool {
	if line == "quit" || line == "exit" {
		return true
	}
	prog, err := parser.Parse("", line)
	if err != nil {
		pterm.Error.Println(err)
		return false
	}
	module, err := analyzer.AnalyzeProgram(prog, ns)
	if err != nil {
		pterm.Error.Println(err)
		return false
	}
	tracer().Debugf("line %d analyzed", lineno)
	pterm.Println(analyzer.Sprint(module))
	return false
}
