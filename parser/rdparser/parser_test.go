package rdparser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/parser/internal/interntoken"
	"github.com/midnite8177/BasicLisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(src string) *Parser {
	return New(token.NewScanner("test", strings.NewReader(src)), interntoken.NewTable())
}

func TestParser(t *testing.T) {
	tests := []struct {
		src   string
		forms []string
	}{
		{"", nil},
		{"; only a comment", nil},
		{"1 -2 +3", []string{"1", "-2", "3"}},
		{`"a\tb"`, []string{`"a\tb"`}},
		{"(a (b c) ())", []string{"(a (b c) ())"}},
		{"'x '(1 2)", []string{"x", "(1 2)"}},
		{"''x", []string{"(quote x)"}},
		{"(a ; comment\n b)", []string{"(a b)"}},
		{"(a b)(c)", []string{"(a b)", "(c)"}},
		{"'  ; comment\n x", []string{"x"}},
	}
	for _, test := range tests {
		forms, err := newParser(test.src).ParseProgram()
		if !assert.NoError(t, err, "%q", test.src) {
			continue
		}
		var printed []string
		for _, v := range forms {
			printed = append(printed, v.String())
		}
		assert.Equal(t, test.forms, printed, "%q", test.src)
	}
}

func TestParser_quoted(t *testing.T) {
	forms, err := newParser("'x '(1 2) 'nil '()").ParseProgram()
	require.NoError(t, err)
	require.Len(t, forms, 4)
	assert.True(t, forms[0].Quoted())
	assert.Equal(t, lisp.LSymbol, forms[0].Type())
	assert.True(t, forms[1].Quoted())
	assert.True(t, forms[2].Quoted())
	assert.Same(t, lisp.Nil, forms[3])
}

func TestParser_errors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{")", "syntax-error: test:1:1: unmatched )"},
		{"(a b", "syntax-error: test:1:1: unmatched ("},
		{"(a (b)", "syntax-error: test:1:1: unmatched ("},
		{"'", "syntax-error: test:1:1: quote is not followed by an expression"},
		{"(')", "syntax-error: test:1:3: quote is not followed by an expression"},
		{`"abc`, "syntax-error: test:1:4: unterminated string literal"},
		{"99999999999999999999", "syntax-error: test:1:1: integer literal overflows int: 99999999999999999999"},
		{`"\q"`, `syntax-error: test:1:1: invalid string literal: "\q"`},
	}
	for _, test := range tests {
		_, err := newParser(test.src).ReadForm()
		if assert.Error(t, err, "%q", test.src) {
			assert.True(t, errors.Is(err, lisp.SyntaxError), "%q", test.src)
			assert.Equal(t, test.msg, err.Error(), "%q", test.src)
		}
	}
}

func TestParser_recover(t *testing.T) {
	p := newParser("(a ')\n(b c)\n) d\n")
	_, err := p.ReadForm()
	assert.Error(t, err)

	v, err := p.ReadForm()
	require.NoError(t, err)
	assert.Equal(t, "(b c)", v.String())

	_, err = p.ReadForm()
	assert.Error(t, err)

	// The rest of the line following an error is discarded.
	_, err = p.ReadForm()
	assert.Equal(t, io.EOF, err)
}

// lineSource returns one line per call to Read and fails the test if it is
// asked for more lines than it holds.
type lineSource struct {
	t     *testing.T
	lines []string
	reads int
}

func (s *lineSource) Read(p []byte) (int, error) {
	if len(s.lines) == 0 {
		s.t.Errorf("unexpected read")
		return 0, io.EOF
	}
	n := copy(p, s.lines[0])
	s.lines = s.lines[1:]
	s.reads++
	return n, nil
}

func TestParser_lazy(t *testing.T) {
	src := &lineSource{t: t, lines: []string{"(+ 1\n", "2)\n", "x\n"}}
	p := NewInteractive("test", src)
	assert.Equal(t, "> ", p.Prompt())

	v, err := p.ReadForm()
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)", v.String())
	assert.Equal(t, 2, src.reads)
	assert.False(t, p.IsParsing())
	assert.Equal(t, "> ", p.Prompt())

	v, err = p.ReadForm()
	require.NoError(t, err)
	assert.Equal(t, "x", v.String())
	assert.Equal(t, 3, src.reads)
}

func TestParser_continuationPrompt(t *testing.T) {
	var prompts []string
	var p *Interactive
	src := &promptSource{lines: []string{"(a\n", "b)\n"}}
	p = NewInteractive("test", src)
	src.prompt = func() { prompts = append(prompts, p.Prompt()) }
	_, err := p.ReadForm()
	require.NoError(t, err)
	assert.Equal(t, []string{"> ", "  "}, prompts)
}

type promptSource struct {
	lines  []string
	prompt func()
}

func (s *promptSource) Read(p []byte) (int, error) {
	if len(s.lines) == 0 {
		return 0, io.EOF
	}
	s.prompt()
	n := copy(p, s.lines[0])
	s.lines = s.lines[1:]
	return n, nil
}

func TestReader(t *testing.T) {
	r := NewReader()
	src := r.NewFormReader("test", strings.NewReader("(a b) c"))
	v, err := src.ReadForm()
	require.NoError(t, err)
	assert.Equal(t, "(a b)", v.String())
	v, err = src.ReadForm()
	require.NoError(t, err)
	assert.Equal(t, "c", v.String())
	_, err = src.ReadForm()
	assert.Equal(t, io.EOF, err)
}
