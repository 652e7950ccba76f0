package engine

import (
	"fmt"
	"strings"

	"github.com/gitrdm/goprolog/internal/errs"
	"github.com/gitrdm/goprolog/internal/term"
)

// doFormat implements format/1,2: fmtTerm is an Atom or Str whose
// characters are scanned for directives, each consuming the next element
// of argsList in order. Unknown directives are copied through literally;
// running out of arguments for a directive that needs one is a typed
// error, not a logic failure, since it indicates a malformed call rather
// than a search dead end.
func (e *Engine) doFormat(fmtTerm, argsList term.Term, env *term.Env) error {
	resolved := env.Resolve(fmtTerm)
	spec, ok := formatText(resolved)
	if !ok {
		return errs.TypeError.New("format/1,2 first argument must be an atom or string")
	}

	args, _ := term.Slice(env.Resolve(argsList))
	next := 0
	pop := func() (term.Term, error) {
		if next >= len(args) {
			return nil, errs.TypeError.New("format/2: too few arguments for directive string")
		}
		a := env.Resolve(args[next])
		next++
		return a, nil
	}

	var out strings.Builder
	runes := []rune(spec)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '~' {
			out.WriteRune(ch)
			continue
		}
		i++
		if i >= len(runes) {
			out.WriteRune('~')
			break
		}
		switch runes[i] {
		case 'w':
			a, err := pop()
			if err != nil {
				return err
			}
			out.WriteString(term.Write(a, env))
		case 'a':
			a, err := pop()
			if err != nil {
				return err
			}
			out.WriteString(formatAtomArg(a))
		case 'd':
			a, err := pop()
			if err != nil {
				return err
			}
			n, ok := a.(term.Int)
			if !ok {
				return errs.TypeError.New("~d directive requires an integer argument")
			}
			fmt.Fprintf(&out, "%d", int64(n))
		case 'f':
			a, err := pop()
			if err != nil {
				return err
			}
			f, ok := formatFloatArg(a)
			if !ok {
				return errs.TypeError.New("~f directive requires a numeric argument")
			}
			fmt.Fprintf(&out, "%f", f)
		case 's':
			a, err := pop()
			if err != nil {
				return err
			}
			text, ok := formatText(a)
			if !ok {
				return errs.TypeError.New("~s directive requires a string or atom argument")
			}
			out.WriteString(text)
		case 'n':
			out.WriteRune('\n')
		case '~':
			out.WriteRune('~')
		default:
			// Unknown directive: copy the tilde and following rune literally.
			out.WriteRune('~')
			out.WriteRune(runes[i])
		}
	}

	return e.writeOut(out.String())
}

func formatText(t term.Term) (string, bool) {
	switch v := t.(type) {
	case term.Atom:
		return string(v), true
	case term.Str:
		return string(v), true
	default:
		return "", false
	}
}

func formatAtomArg(t term.Term) string {
	if s, ok := formatText(t); ok {
		return s
	}
	return t.String()
}

func formatFloatArg(t term.Term) (float64, bool) {
	switch v := t.(type) {
	case term.Float:
		return float64(v), true
	case term.Int:
		return float64(v), true
	default:
		return 0, false
	}
}
