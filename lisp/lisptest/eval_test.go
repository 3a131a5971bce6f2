package lisptest_test

import (
	"testing"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisptest"
)

func TestEval(t *testing.T) {
	tests := lisptest.TestSuite{
		{"atoms", lisptest.TestSequence{
			{"3", "3", ""},
			{"-3", "-3", ""},
			{"+3", "3", ""},
			{`"abc"`, `"abc"`, ""},
			{`"a\nb"`, `"a\nb"`, ""},
			{"t", "t", ""},
			{"nil", "()", ""},
			{"()", "()", ""},
			{"car", "<builtin car>", ""},
		}},
		{"symbols", lisptest.TestSequence{
			{"a", "no-such-symbol: no such symbol: a", ""},
			{"(boundp 'a)", "()", ""},
			{"(set 'a 1)", "1", ""},
			{"(boundp 'a)", "t", ""},
			{"a", "1", ""},
			{"(makunbound 'a)", "a", ""},
			{"a", "unbound-symbol: unbound symbol: a", ""},
			{"(makunbound 'b)", "no-such-symbol: no such symbol: b", ""},
			{"(makunbound 't)", "constant-violation: cannot unbind constant: t", ""},
			{"(set 1 2)", "type-error: first argument is not a symbol: integer", ""},
		}},
		{"calls", lisptest.TestSequence{
			{"(1 2)", "not-callable: first element of expression is not a function: 1", ""},
			{`("f")`, `not-callable: first element of expression is not a function: "f"`, ""},
			{"(+ 1)", "arity-error: +: expected exactly 2 arguments (got 1)", ""},
			{"(+ 1 2 3)", "arity-error: +: expected exactly 2 arguments (got 3)", ""},
			{"(car (print 1) (print 2))", "arity-error: car: expected exactly 1 argument (got 2)", ""},
			{"(+ 1 (car 1))", "type-error: argument is not a list: integer", ""},
			{"(+ (+ 1 2) (* 3 4))", "15", ""},
		}},
		{"arithmetic", lisptest.TestSequence{
			{"(+ 1 2)", "3", ""},
			{"(- 1 2)", "-1", ""},
			{"(* -3 4)", "-12", ""},
			{"(/ 7 2)", "3", ""},
			{"(/ -7 2)", "-3", ""},
			{"(mod 7 2)", "1", ""},
			{"(mod -7 2)", "-1", ""},
			{"(mod 7 -1)", "0", ""},
			{"(/ 1 0)", "arithmetic-error: /: division by zero", ""},
			{"(+ 9223372036854775807 1)", "arithmetic-error: +: integer overflow", ""},
			{"(+ -9223372036854775808 -1)", "arithmetic-error: +: integer overflow", ""},
			{"(+ 9223372036854775807 -1)", "9223372036854775806", ""},
			{"(- -9223372036854775808 1)", "arithmetic-error: -: integer overflow", ""},
			{"(- 0 -9223372036854775808)", "arithmetic-error: -: integer overflow", ""},
			{"(- -1 -9223372036854775808)", "9223372036854775807", ""},
			{"(* 4611686018427387904 2)", "arithmetic-error: *: integer overflow", ""},
			{"(* -4611686018427387904 2)", "-9223372036854775808", ""},
			{"(* -1 -9223372036854775808)", "arithmetic-error: *: integer overflow", ""},
			{"(* 3037000500 3037000500)", "arithmetic-error: *: integer overflow", ""},
			{"(* 0 -9223372036854775808)", "0", ""},
			{"(mod 1 0)", "arithmetic-error: mod: division by zero", ""},
			{`(+ 1 "a")`, "type-error: +: argument 1 is not an integer: string", ""},
			{"(= 1 1)", "t", ""},
			{"(= 1 2)", "()", ""},
			{"(< 1 2)", "t", ""},
			{"(> 1 2)", "()", ""},
			{"(<= 2 2)", "t", ""},
			{">=", "<builtin >=>", ""},
		}},
		{"lists", lisptest.TestSequence{
			{"(list)", "()", ""},
			{`(list 1 "a" 'b)`, `(1 "a" b)`, ""},
			{"(car '(1 2 3))", "1", ""},
			{"(cdr '(1 2 3))", "(2 3)", ""},
			{"(cdr '(1))", "()", ""},
			{"(car nil)", "()", ""},
			{"(cdr nil)", "()", ""},
			{"(cons 1 '(2 3))", "(1 2 3)", ""},
			{"(cons 1 nil)", "(1)", ""},
			{"(cons 1 2)", "type-error: second argument is not a list: integer", ""},
			{"(length '(1 2 3))", "3", ""},
			{`(length "abcd")`, "4", ""},
			{`(length "é")`, "1", ""},
			{`(length "héllo, 世界")`, "9", ""},
			{"(length 1)", "type-error: argument is not a list or string: integer", ""},
			{"(null nil)", "t", ""},
			{"(not 0)", "()", ""},
		}},
		{"equality", lisptest.TestSequence{
			{"(equal '(1 (2)) '(1 (2)))", "t", ""},
			{"(equal '(1 2) '(1 3))", "()", ""},
			{`(equal "a" "a")`, "t", ""},
			{"(equal 1 \"1\")", "()", ""},
			{"(eq '(1 2) '(1 2))", "()", ""},
			{"(eq nil '())", "t", ""},
			{"(eq 1 1)", "t", ""},
			{"(eq 'a 'a)", "t", ""},
			{"(eq car car)", "t", ""},
			{"(setq l '(1 2))", "(1 2)", ""},
			{"(eq l l)", "t", ""},
		}},
		{"eval", lisptest.TestSequence{
			{"(eval '(+ 1 2))", "3", ""},
			{"(eval ''x)", "x", ""},
			{"(eval 1)", "1", ""},
			{"(funcall + 1 2)", "3", ""},
			{"(funcall (lambda () 5))", "5", ""},
			{"(funcall 1)", "not-callable: first argument is not a function: integer", ""},
			{"(apply + '(1 2))", "3", ""},
			{"(apply + '(1))", "arity-error: +: expected exactly 2 arguments (got 1)", ""},
			{"(apply + 1)", "type-error: second argument is not a list: integer", ""},
			{`(read-string "(+ 1 2)")`, "(+ 1 2)", ""},
			{`(read-string "")`, "syntax-error: no form in string", ""},
			{`(load-string "(setq z 4) (+ z 1)")`, "5", ""},
			{"z", "4", ""},
		}},
		{"strings", lisptest.TestSequence{
			{`(concat)`, `""`, ""},
			{`(concat "a" "b" "c")`, `"abc"`, ""},
			{`(concat "a" 1)`, "type-error: argument 1 is not a string: integer", ""},
		}},
		{"output", lisptest.TestSequence{
			{`(print "hi")`, `"hi"`, "\"hi\"\n"},
			{"(print '(1 2))", "(1 2)", "(1 2)\n"},
			{`(debug-print 1 "a" 'b)`, "()", "1 \"a\" b\n"},
			{"(debug-stack)", "()", "Stack Trace [1 frames -- entrypoint last]:\n  height 0: debug-stack (0 args) [builtin]\n"},
		}},
		{"error", lisptest.TestSequence{
			{`(error "boom")`, "runtime-error: boom", ""},
			{`(error "bad value:" 1 '(2))`, "runtime-error: bad value: 1 (2)", ""},
			{`(progn (error "stop") (print 1))`, "runtime-error: stop", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestScope(t *testing.T) {
	tests := lisptest.TestSuite{
		{"locals", lisptest.TestSequence{
			{"(setq x 10)", "10", ""},
			{"(defun f (x) (setq x 5) x)", "f", ""},
			{"(f 1)", "5", ""},
			{"x", "10", ""},
			{"(defun g (y) (setq x y))", "g", ""},
			{"(g 3)", "3", ""},
			{"x", "3", ""},
			{"(defun h (y) (boundp 'y))", "h", ""},
			{"(h 1)", "t", ""},
		}},
		{"no closures", lisptest.TestSequence{
			{"(defun inner () y)", "inner", ""},
			{"(defun outer (y) (inner))", "outer", ""},
			{"(outer 1)", "no-such-symbol: no such symbol: y", ""},
			{"(setq y 2)", "2", ""},
			{"(outer 1)", "2", ""},
		}},
		{"higher order", lisptest.TestSequence{
			{"(defun twice (fn x) (funcall fn (funcall fn x)))", "twice", ""},
			{"(twice (lambda (n) (* n 3)) 2)", "18", ""},
			{"(defun map1 (fn xs) (if xs (cons (funcall fn (car xs)) (map1 fn (cdr xs))) nil))", "map1", ""},
			{"(map1 (lambda (n) (+ n 1)) '(1 2 3))", "(2 3 4)", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestStackOverflow(t *testing.T) {
	r := &lisptest.Runner{
		Config: []lisp.Config{lisp.WithMaximumStackHeight(10)},
	}
	r.RunTestSuite(t, lisptest.TestSuite{
		{"recursion", lisptest.TestSequence{
			{"(defun loop () (loop))", "loop", ""},
			{"(loop)", "stack-overflow: maximum stack height exceeded: 10 (calling loop)", ""},
			{"(defun count (n) (if (= n 0) 0 (count (- n 1))))", "count", ""},
			{"(count 3)", "0", ""},
		}},
	})
}

func TestLibrary(t *testing.T) {
	tests := lisptest.TestSuite{
		{"math", lisptest.TestSequence{
			{"(abs -3)", "3", ""},
			{"(abs 3)", "3", ""},
			{"(min 3 1 2)", "1", ""},
			{"(max 3 1 2)", "3", ""},
			{"(max 7)", "7", ""},
			{"(min)", "arity-error: min: expected at least 1 argument (got 0)", ""},
			{"(expt 2 10)", "1024", ""},
			{"(expt 3 0)", "1", ""},
			{"(expt 2 -1)", "arithmetic-error: expt: negative exponent: -1", ""},
		}},
		{"regexp", lisptest.TestSequence{
			{`(regexp-match? "a+b" "caab")`, "t", ""},
			{`(regexp-match? "^b" "caab")`, "()", ""},
			{`(regexp-find-all "[0-9]+" "a1 b22 c333")`, `("1" "22" "333")`, ""},
			{`(regexp-find-all "z" "abc")`, "()", ""},
			{`(regexp-replace "o+" "foo boo" "0")`, `"f0 b0"`, ""},
			{`(regexp-match? 1 "a")`, "type-error: regexp-match?: argument 0 is not a string: integer", ""},
		}},
		{"string", lisptest.TestSequence{
			{`(string-upcase "abc")`, `"ABC"`, ""},
			{`(string-downcase "ABC")`, `"abc"`, ""},
			{`(string-split "a,b,c" ",")`, `("a" "b" "c")`, ""},
			{`(string-join '("a" "b") "-")`, `"a-b"`, ""},
			{`(string-join '("a" 1) "-")`, "type-error: string-join: list element 1 is not a string: integer", ""},
			{`(string->symbol "abc")`, "abc", ""},
			{`(symbol->string 'abc)`, `"abc"`, ""},
			{`(number->string 12)`, `"12"`, ""},
			{`(string->number "12")`, "12", ""},
			{`(string->number "x")`, `type-error: string->number: invalid integer: "x"`, ""},
			{`(string-upcase 1)`, "type-error: string-upcase: argument 0 is not a string: integer", ""},
			{`(string-format "{} + {} = {}" 1 2 (+ 1 2))`, `"1 + 2 = 3"`, ""},
			{`(string-format "{{}} {}" "x")`, `"{} x"`, ""},
			{`(string-format "{}")`, `runtime-error: string-format: too many formatting directives for supplied values`, ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
