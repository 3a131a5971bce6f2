package rdparser

import (
	"io"
	"strconv"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/parser/internal/interntoken"
	"github.com/midnite8177/BasicLisp/parser/lexer"
	"github.com/midnite8177/BasicLisp/parser/token"
)

type reader struct {
	intern *interntoken.Table
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.  Symbol names
// read by all FormReaders created from the returned Reader are interned in
// a common table.
func NewReader() lisp.Reader {
	return &reader{
		intern: interntoken.NewTable(),
	}
}

// NewFormReader implements lisp.Reader.
func (r *reader) NewFormReader(name string, src io.Reader) lisp.FormReader {
	return New(token.NewScanner(name, src), r.intern)
}

// Parser is a lisp parser.  A Parser reads tokens lazily, never requesting a
// token beyond the end of the form being parsed.
type Parser struct {
	lex     *lexer.Lexer
	curr    *token.Token
	peek    *token.Token
	parsing bool
}

var _ lisp.FormReader = (*Parser)(nil)

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner, tab *interntoken.Table) *Parser {
	return &Parser{
		lex: lexer.New(scanner, tab),
	}
}

// IsParsing returns true if p is in the middle of parsing a form.  A REPL
// uses IsParsing to choose a continuation prompt.
func (p *Parser) IsParsing() bool {
	return p != nil && p.parsing
}

// ReadForm implements lisp.FormReader.  When a syntax error is encountered the
// remainder of the current line is discarded so that parsing may resume with
// the next line.
func (p *Parser) ReadForm() (lisp.LVal, error) {
	defer func() { p.parsing = false }()
	for {
		switch p.PeekType() {
		case token.COMMENT:
			p.ReadToken()
			continue
		case token.EOF:
			return nil, io.EOF
		}
		break
	}
	v, err := p.ParseExpression()
	if err != nil {
		p.peek = nil
		p.lex.SkipLine()
		return nil, err
	}
	return v, nil
}

// ParseProgram parses all remaining forms in the input.
func (p *Parser) ParseProgram() ([]lisp.LVal, error) {
	var exprs []lisp.LVal
	for {
		v, err := p.ReadForm()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, v)
	}
}

func (p *Parser) ParseExpression() (lisp.LVal, error) {
	for p.expect(token.COMMENT) {
	}
	p.parsing = true
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.STRING:
		return p.ParseLiteralString()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.QUOTE:
		return p.ParseQuote()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.PAREN_R:
		p.ReadToken()
		return nil, p.errorf("unmatched %s", p.Token().Text)
	case token.EOF:
		p.ReadToken()
		return nil, p.errorf("unexpected end of input")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		if err := p.lex.ReadErr(); err != nil {
			return nil, lisp.Errorf(lisp.RuntimeError, "%s: read error: %v", p.Token().Source, err)
		}
		return nil, p.errorf("%s", p.Token().Text)
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected %s", p.Token().Type)
	}
}

func (p *Parser) ParseLiteralInt() (lisp.LVal, error) {
	if !p.expect(token.INT) {
		return nil, p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.Atoi(text)
	if err != nil {
		return nil, p.errorf("integer literal overflows int: %v", text)
	}
	return lisp.Integer(x), nil
}

func (p *Parser) ParseLiteralString() (lisp.LVal, error) {
	if !p.expect(token.STRING) {
		return nil, p.errorf("invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	s, err := strconv.Unquote(text)
	if err != nil {
		return nil, p.errorf("invalid string literal: %v", text)
	}
	return lisp.Str(s), nil
}

func (p *Parser) ParseSymbol() (lisp.LVal, error) {
	if !p.expect(token.SYMBOL) {
		return nil, p.errorf("invalid symbol: %v", p.PeekType())
	}
	return lisp.Sym(p.Token().Text), nil
}

func (p *Parser) ParseQuote() (lisp.LVal, error) {
	if !p.expect(token.QUOTE) {
		return nil, p.errorf("invalid quote: %v", p.PeekType())
	}
	for p.expect(token.COMMENT) {
	}
	switch p.PeekType() {
	case token.PAREN_R, token.EOF:
		p.ReadToken()
		return nil, p.errorf("quote is not followed by an expression")
	}
	v, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.Quote(v), nil
}

func (p *Parser) ParseConsExpression() (lisp.LVal, error) {
	if !p.expect(token.PAREN_L) {
		return nil, p.errorf("invalid list: %v", p.PeekType())
	}
	open := p.Token()
	var cells []lisp.LVal
	for {
		for p.expect(token.COMMENT) {
		}
		if p.PeekType() == token.EOF {
			return nil, lisp.Errorf(lisp.SyntaxError, "%s: unmatched %s", open.Source, open.Text)
		}
		if p.expect(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
	return lisp.NewList(cells...), nil
}

// ReadToken consumes the next token and returns it.
func (p *Parser) ReadToken() *token.Token {
	p.curr = p.Peek()
	p.peek = nil
	return p.curr
}

// Token returns the token most recently consumed.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// Peek returns the next token without consuming it.  The token is scanned
// only when Peek is first called for it.
func (p *Parser) Peek() *token.Token {
	if p.peek == nil {
		p.peek = p.lex.NextToken()
	}
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.Peek().Type
}

func (p *Parser) expect(typ token.Type) bool {
	if p.PeekType() == typ {
		p.ReadToken()
		return true
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	err := lisp.Errorf(lisp.SyntaxError, format, v...)
	if tok := p.Token(); tok != nil && tok.Source != nil {
		err.Msg = tok.Source.String() + ": " + err.Msg
	}
	return err
}
