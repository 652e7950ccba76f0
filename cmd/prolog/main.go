// Command prolog is the command-line driver: it loads a source file
// through internal/parse, asserts every clause and DCG rule into an
// internal/engine.Engine, then runs one query and prints its solutions.
// The lexer, parser, and this driver live outside the engine package
// itself — this binary exists to exercise the engine end to end, built
// as a small command-tree program on github.com/hashicorp/cli.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"
)

func main() {
	app := &cli.CLI{
		Name:     "prolog",
		Version:  "0.1.0",
		Args:     os.Args[1:],
		Commands: commands(),
	}

	exitCode, err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func commands() map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &RunCommand{}, nil
		},
	}
}
