package lisp

import (
	"fmt"
	"unicode/utf8"
)

// MaxError is the maximum length in bytes of an error message held by an
// ErrorChannel.  Longer messages are truncated.
const MaxError = 1000

// ErrorKind classifies runtime errors.  An ErrorKind is itself an error so
// that errors.Is(err, ArityError) can be used to test an *Error.
type ErrorKind int

// Possible ErrorKind values
const (
	RuntimeError ErrorKind = iota
	SyntaxError
	UnboundSymbol
	NoSuchSymbol
	ConstantViolation
	NotCallable
	ArityError
	TypeError
	ArithmeticError
	StackOverflow
	numErrorKinds
)

var errorKindStrings = [numErrorKinds]string{
	RuntimeError:      "runtime-error",
	SyntaxError:       "syntax-error",
	UnboundSymbol:     "unbound-symbol",
	NoSuchSymbol:      "no-such-symbol",
	ConstantViolation: "constant-violation",
	NotCallable:       "not-callable",
	ArityError:        "arity-error",
	TypeError:         "type-error",
	ArithmeticError:   "arithmetic-error",
	StackOverflow:     "stack-overflow",
}

func (k ErrorKind) String() string {
	if k < 0 || k >= numErrorKinds {
		return errorKindStrings[RuntimeError]
	}
	return errorKindStrings[k]
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return k.String()
}

// Error is a lisp runtime error.  The message is stored in Msg while the call
// stack at the time of the error, if any, is stored in Stack.
type Error struct {
	Kind  ErrorKind
	Msg   string
	Stack *CallStack
}

// Errorf returns an *Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Unwrap returns e.Kind so that errors.Is matches on the error's kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// ErrorChannel holds the most recent error encountered by a Runtime.  It is
// not a stack.  A new error overwrites the previous one.
type ErrorChannel struct {
	err *Error
}

// Set stores err.  Errors that are not an *Error are recorded as a
// RuntimeError.  Set truncates messages longer than MaxError.
func (c *ErrorChannel) Set(err error) {
	if err == nil {
		c.err = nil
		return
	}
	lerr, ok := err.(*Error)
	if !ok {
		lerr = &Error{Kind: RuntimeError, Msg: err.Error()}
	}
	if len(lerr.Msg) > MaxError {
		cp := *lerr
		cp.Msg = truncate(cp.Msg, MaxError)
		lerr = &cp
	}
	c.err = lerr
}

// Setf formats a message and stores it as an error of the given kind.
func (c *ErrorChannel) Setf(kind ErrorKind, format string, v ...interface{}) {
	c.Set(Errorf(kind, format, v...))
}

// Get returns the current error or nil if no error has occurred.
func (c *ErrorChannel) Get() *Error {
	return c.err
}

// Message returns the message of the current error.  The second value is
// false when no error has occurred.
func (c *ErrorChannel) Message() (string, bool) {
	if c.err == nil {
		return "", false
	}
	return c.err.Error(), true
}

// Has returns true if an error has occurred.
func (c *ErrorChannel) Has() bool {
	return c.err != nil
}

// Take returns the current error, or nil, and clears the channel.
func (c *ErrorChannel) Take() *Error {
	err := c.err
	c.err = nil
	return err
}

// Clear discards the current error.
func (c *ErrorChannel) Clear() {
	c.err = nil
}

// truncate shortens s to at most n bytes without splitting a utf-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
