package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/goprolog/internal/engine"
	"github.com/gitrdm/goprolog/internal/parse"
	"github.com/gitrdm/goprolog/internal/term"
)

// RunCommand loads a source file and runs one query against it, printing
// every solution found (up to -n, default 1) to stdout.
type RunCommand struct{}

func (c *RunCommand) Help() string {
	return strings.TrimSpace(`
Usage: prolog run [options] <file.pl> <query>

  Loads the clauses and DCG rules in <file.pl>, then solves <query>
  against them, printing one line per solution.

Options:

  -n=<num>      Maximum number of solutions to print (default 1; 0 = all)
  -log-level=<level>  Log level passed to the engine's logger (default warn)
`)
}

func (c *RunCommand) Synopsis() string {
	return "Load a Prolog source file and run one query against it"
}

func (c *RunCommand) Run(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	maxSolutions := fs.Int("n", 1, "maximum number of solutions to print (0 = all)")
	logLevel := fs.String("log-level", "warn", "log level for the engine's logger")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, c.Help())
		return 1
	}
	path, queryText := rest[0], rest[1]

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prolog: %v\n", err)
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "prolog",
		Level: hclog.LevelFromString(*logLevel),
	})

	eng := engine.New(engine.Config{Logger: logger, Output: os.Stdout})
	if err := loadSource(eng, string(src)); err != nil {
		fmt.Fprintf(os.Stderr, "prolog: %v\n", err)
		return 1
	}

	goals, err := parseQuery(queryText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "prolog: %v\n", err)
		return 1
	}

	env := term.NewEnv()
	found := 0
	_, err = eng.Solve(goals, env, func(solved *term.Env) error {
		found++
		fmt.Println(renderSolution(goals, solved))
		if *maxSolutions > 0 && found >= *maxSolutions {
			return errStopEnumeration
		}
		return nil
	})
	if err != nil && err != errStopEnumeration {
		fmt.Fprintf(os.Stderr, "prolog: %v\n", err)
		return 1
	}
	if found == 0 {
		fmt.Println("false.")
	}
	return 0
}

// errStopEnumeration is the driver's own early-termination sentinel: the
// query handler returns it once enough solutions have been printed, which
// unwinds Solve without treating the stop as a real error. It never needs
// to be distinguished from other errors by callers outside this command.
var errStopEnumeration = fmt.Errorf("prolog: stop enumeration")

func loadSource(eng *engine.Engine, src string) error {
	p, err := parse.NewParser(src)
	if err != nil {
		return err
	}
	for !p.AtEOF() {
		fact, dcgRule, err := p.Next()
		if err != nil {
			return err
		}
		switch {
		case dcgRule != nil:
			eng.AddDCGRule(dcgRule.Head, dcgRule.BodyElems)
		case fact != nil:
			eng.AddClause(fact.Head, fact.Body...)
		}
	}
	return nil
}

func parseQuery(text string) ([]term.Term, error) {
	text = strings.TrimSuffix(strings.TrimSpace(text), ".")
	p, err := parse.NewParser(text + ".")
	if err != nil {
		return nil, err
	}
	fact, _, err := p.Next()
	if err != nil {
		return nil, err
	}
	if fact.Body == nil {
		return []term.Term{fact.Head}, nil
	}
	return append([]term.Term{fact.Head}, fact.Body...), nil
}

func renderSolution(goals []term.Term, env *term.Env) string {
	vars := collectVars(goals)
	if len(vars) == 0 {
		return "true."
	}
	var parts []string
	for _, v := range vars {
		parts = append(parts, fmt.Sprintf("%s = %s", v, term.Write(env.CopyResolved(v), env)))
	}
	return strings.Join(parts, ", ") + "."
}

func collectVars(goals []term.Term) []term.Var {
	seen := make(map[term.Var]bool)
	var out []term.Var
	var walk func(t term.Term)
	walk = func(t term.Term) {
		switch v := t.(type) {
		case term.Var:
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		case *term.Compound:
			for _, a := range v.Args {
				walk(a)
			}
		}
	}
	for _, g := range goals {
		walk(g)
	}
	return out
}
