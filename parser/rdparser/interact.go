package rdparser

import (
	"io"

	"github.com/midnite8177/BasicLisp/parser/internal/interntoken"
	"github.com/midnite8177/BasicLisp/parser/token"
)

// Interactive implements a parser that parses a single expression at a time
// from a line oriented source, such as a terminal, and chooses the prompt to
// display when the source needs another line.
type Interactive struct {
	*Parser
	Primary      string
	Continuation string
}

// NewInteractive initializes and returns a new Interactive parser reading
// from r.
func NewInteractive(name string, r io.Reader) *Interactive {
	return &Interactive{
		Parser:       New(token.NewScanner(name, r), interntoken.NewTable()),
		Primary:      "> ",
		Continuation: "  ",
	}
}

// Prompt returns the prompt for the next line of input.  The continuation
// prompt is returned while p is in the middle of parsing a form.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return p.Continuation
	}
	return p.Primary
}
