package libstring

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib/internal/libutil"
)

// Builtins returns the string functions.
func Builtins() []lisp.BuiltinDef {
	return builtins
}

// LoadPackage adds the string functions to rt.
func LoadPackage(rt *lisp.Runtime) error {
	return lisp.WithBuiltins(builtins...)(rt)
}

var builtins = []lisp.BuiltinDef{
	libutil.Function("string-upcase", 1, builtinUpcase),
	libutil.Function("string-downcase", 1, builtinDowncase),
	libutil.Function("string-split", 2, builtinSplit),
	libutil.Function("string-join", 2, builtinJoin),
	libutil.Function("string->symbol", 1, builtinStringToSymbol),
	libutil.Function("symbol->string", 1, builtinSymbolToString),
	libutil.Function("number->string", 1, builtinNumberToString),
	libutil.Function("string->number", 1, builtinStringToNumber),
	libutil.VarFunction("string-format", 1, builtinFormat),
}

func builtinUpcase(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	s, ok := libutil.StringArg(rt, "string-upcase", args, 0)
	if !ok {
		return nil
	}
	return lisp.Str(strings.ToUpper(s))
}

func builtinDowncase(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	s, ok := libutil.StringArg(rt, "string-downcase", args, 0)
	if !ok {
		return nil
	}
	return lisp.Str(strings.ToLower(s))
}

func builtinSplit(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	s, ok := libutil.StringArg(rt, "string-split", args, 0)
	if !ok {
		return nil
	}
	sep, ok := libutil.StringArg(rt, "string-split", args, 1)
	if !ok {
		return nil
	}
	parts := strings.Split(s, sep)
	cells := make([]lisp.LVal, len(parts))
	for i := range parts {
		cells[i] = lisp.Str(parts[i])
	}
	return lisp.NewList(cells...)
}

func builtinJoin(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	lis, ok := args.Cells[0].(*lisp.List)
	if !ok {
		return rt.Errorf(lisp.TypeError, "string-join: first argument is not a list: %v", args.Cells[0].Type())
	}
	sep, ok := libutil.StringArg(rt, "string-join", args, 1)
	if !ok {
		return nil
	}
	strs := make([]string, lis.Len())
	for i, c := range lis.Cells {
		s, ok := c.(*lisp.String)
		if !ok {
			return rt.Errorf(lisp.TypeError, "string-join: list element %d is not a string: %v", i, c.Type())
		}
		strs[i] = s.Value
	}
	return lisp.Str(strings.Join(strs, sep))
}

func builtinStringToSymbol(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	s, ok := libutil.StringArg(rt, "string->symbol", args, 0)
	if !ok {
		return nil
	}
	if s == "" {
		return rt.Errorf(lisp.TypeError, "string->symbol: empty symbol name")
	}
	return lisp.Sym(s)
}

func builtinSymbolToString(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	sym, ok := args.Cells[0].(*lisp.Symbol)
	if !ok {
		return rt.Errorf(lisp.TypeError, "symbol->string: argument is not a symbol: %v", args.Cells[0].Type())
	}
	return lisp.Str(sym.Name)
}

func builtinNumberToString(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	x, ok := args.Cells[0].(*lisp.Int)
	if !ok {
		return rt.Errorf(lisp.TypeError, "number->string: argument is not an integer: %v", args.Cells[0].Type())
	}
	return lisp.Str(strconv.Itoa(x.Value))
}

func builtinStringToNumber(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	s, ok := libutil.StringArg(rt, "string->number", args, 0)
	if !ok {
		return nil
	}
	x, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return rt.Errorf(lisp.TypeError, "string->number: invalid integer: %q", s)
	}
	return lisp.Integer(x)
}

// (string-format "{} and {}" a b)
func builtinFormat(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	format, ok := libutil.StringArg(rt, "string-format", args, 0)
	if !ok {
		return nil
	}
	fvals := args.Cells[1:]
	parts, err := parseFormatString(format)
	if err != nil {
		return rt.Errorf(lisp.RuntimeError, "string-format: %v", err)
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") && p != "{" && p != "}" {
			p = strings.Join(strings.Fields(p), "")
			if p != "{}" {
				return rt.Errorf(lisp.RuntimeError, "string-format: formatting directives must be empty")
			}
			if anonIndex >= len(fvals) {
				return rt.Errorf(lisp.RuntimeError, "string-format: too many formatting directives for supplied values")
			}
			val := fvals[anonIndex]
			if s, ok := val.(*lisp.String); ok {
				buf.WriteString(s.Value)
			} else {
				buf.WriteString(val.String())
			}
			anonIndex++
		} else {
			buf.WriteString(p)
		}
	}
	return lisp.Str(buf.String())
}

// parseFormatString splits f into literal text and directives.  Doubled
// braces escape a literal brace.
func parseFormatString(f string) ([]string, error) {
	var s []string
	tokens := tokenizeFormatString(f)
	for len(tokens) > 0 {
		tok := tokens[0]
		if tok.typ == formatText {
			s = append(s, tok.text)
			tokens = tokens[1:]
			continue
		}
		if tok.typ == formatClose {
			if len(tokens) < 2 || tokens[1].typ != formatClose {
				return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
			}
			s = append(s, "}")
			tokens = tokens[2:]
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("unclosed formatting directive")
		}
		switch tokens[1].typ {
		case formatOpen:
			s = append(s, "{")
			tokens = tokens[2:]
		case formatClose:
			s = append(s, "{}")
			tokens = tokens[2:]
		default:
			if len(tokens) < 3 || tokens[2].typ != formatClose {
				return nil, fmt.Errorf("unclosed formatting directive")
			}
			s = append(s, "{"+tokens[1].text+"}")
			tokens = tokens[3:]
		}
	}
	return s, nil
}

func tokenizeFormatString(f string) []formatToken {
	var tokens []formatToken
	for f != "" {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			tokens = append(tokens, formatToken{formatText, f})
			return tokens
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
			f = f[i:]
		}
		if f[0] == '{' {
			tokens = append(tokens, formatToken{formatOpen, "{"})
		} else {
			tokens = append(tokens, formatToken{formatClose, "}"})
		}
		f = f[1:]
	}
	return tokens
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatOpen
	formatClose
)

type formatToken struct {
	typ  formatTokenType
	text string
}
