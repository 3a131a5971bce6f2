package libregexp

import (
	"regexp"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib/internal/libutil"
)

// Builtins returns the regular expression functions.  Patterns are strings
// using Go regexp syntax.
func Builtins() []lisp.BuiltinDef {
	return builtins
}

// LoadPackage adds the regular expression functions to rt.
func LoadPackage(rt *lisp.Runtime) error {
	return lisp.WithBuiltins(builtins...)(rt)
}

var builtins = []lisp.BuiltinDef{
	libutil.Function("regexp-match?", 2, BuiltinIsMatch),
	libutil.Function("regexp-find-all", 2, BuiltinFindAll),
	libutil.Function("regexp-replace", 3, BuiltinReplace),
}

// (regexp-match? pattern text)
func BuiltinIsMatch(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	re, text, ok := regexpArgs(rt, "regexp-match?", args)
	if !ok {
		return nil
	}
	return lisp.Bool(re.MatchString(text))
}

// (regexp-find-all pattern text)
func BuiltinFindAll(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	re, text, ok := regexpArgs(rt, "regexp-find-all", args)
	if !ok {
		return nil
	}
	matches := re.FindAllString(text, -1)
	cells := make([]lisp.LVal, len(matches))
	for i := range matches {
		cells[i] = lisp.Str(matches[i])
	}
	return lisp.NewList(cells...)
}

// (regexp-replace pattern text replacement)
func BuiltinReplace(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	re, text, ok := regexpArgs(rt, "regexp-replace", args)
	if !ok {
		return nil
	}
	repl, ok := libutil.StringArg(rt, "regexp-replace", args, 2)
	if !ok {
		return nil
	}
	return lisp.Str(re.ReplaceAllString(text, repl))
}

func regexpArgs(rt *lisp.Runtime, name string, args *lisp.List) (*regexp.Regexp, string, bool) {
	patt, ok := libutil.StringArg(rt, name, args, 0)
	if !ok {
		return nil, "", false
	}
	text, ok := libutil.StringArg(rt, name, args, 1)
	if !ok {
		return nil, "", false
	}
	re, err := regexp.Compile(patt)
	if err != nil {
		rt.Errorf(lisp.RuntimeError, "%s: invalid regexp pattern: %v", name, err)
		return nil, "", false
	}
	return re, text, true
}
