package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/midnite8177/BasicLisp/parser/internal/interntoken"
	"github.com/midnite8177/BasicLisp/parser/token"
)

// BaseSymbolLength is the initial capacity in bytes of the scratch buffer
// holding symbol and integer text.
const BaseSymbolLength = 35

// BaseStringBufLength is the initial capacity in bytes of the scratch buffer
// holding string literal text.
const BaseStringBufLength = 256

const delimiters = "()\"';"

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune
	intern  *interntoken.Table

	symbuf *buffer
	strbuf *buffer

	// readErr is an error returned by the underlying reader
	readErr error
}

// New returns a Lexer that reads runes from s.  Symbol names are interned in
// tab, which may be shared between lexers.  A nil tab disables interning.
func New(s *token.Scanner, tab *interntoken.Table) *Lexer {
	lex := &Lexer{
		scanner: s,
		intern:  tab,
		symbuf:  newBuffer(BaseSymbolLength),
		strbuf:  newBuffer(BaseStringBufLength),
	}
	return lex
}

// NextToken scans and returns the next token in the input.  NextToken does
// not read input beyond the rune following the returned token, and for
// tokens which end with a delimiter, not beyond the token itself.
func (lex *Lexer) NextToken() *token.Token {
	err := lex.skipWhitespace()
	if err != nil {
		return lex.emitError(err, true)
	}
	err = lex.readChar()
	if err != nil {
		return lex.emitError(err, true)
	}
	loc := lex.scanner.Loc()
	switch lex.ch {
	case '(':
		return lex.emit(token.PAREN_L, "(", loc)
	case ')':
		return lex.emit(token.PAREN_R, ")", loc)
	case '\'':
		return lex.emit(token.QUOTE, "'", loc)
	case ';':
		return lex.readComment(loc)
	case '"':
		return lex.readString(loc)
	default:
		return lex.readWord(loc)
	}
}

func (lex *Lexer) emit(typ token.Type, text string, loc *token.Location) *token.Token {
	return &token.Token{
		Type:   typ,
		Text:   text,
		Source: loc,
	}
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if errors.Is(err, io.EOF) {
		if expectEOF {
			return lex.emit(token.EOF, "", lex.scanner.Loc())
		}
		return lex.emit(token.ERROR, "unexpected EOF", lex.scanner.Loc())
	}
	return lex.emit(token.ERROR, err.Error(), lex.scanner.Loc())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) readComment(loc *token.Location) *token.Token {
	lex.strbuf.reset()
	lex.strbuf.appendRune(lex.ch)
	for {
		c, err := lex.scanner.Peek()
		if errors.Is(err, io.EOF) || c == '\n' {
			return lex.emit(token.COMMENT, string(lex.strbuf.b), loc)
		}
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
		lex.strbuf.appendRune(lex.ch)
	}
}

// readString scans a string literal.  The token text includes the enclosing
// quotes and any escape sequences, which are decoded by the parser.  A
// literal newline terminates the string with an error.
func (lex *Lexer) readString(loc *token.Location) *token.Token {
	lex.strbuf.reset()
	lex.strbuf.appendRune(lex.ch)
	for {
		err := lex.readChar()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lex.errorf("unterminated string literal")
			}
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '\n':
			return lex.errorf("unterminated string literal")
		case '"':
			lex.strbuf.appendRune(lex.ch)
			return lex.emit(token.STRING, string(lex.strbuf.b), loc)
		case '\\':
			lex.strbuf.appendRune(lex.ch)
			err := lex.readChar()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return lex.errorf("unterminated string literal")
				}
				return lex.emitError(err, false)
			}
			if lex.ch == '\n' {
				return lex.errorf("unterminated string literal")
			}
		}
		lex.strbuf.appendRune(lex.ch)
	}
}

// readWord scans an integer or a symbol, a run of runes up to the next
// delimiter or whitespace.
func (lex *Lexer) readWord(loc *token.Location) *token.Token {
	lex.symbuf.reset()
	lex.symbuf.appendRune(lex.ch)
	for {
		c, err := lex.scanner.Peek()
		if errors.Is(err, io.EOF) || (err == nil && isDelimiter(c)) {
			break
		}
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
		lex.symbuf.appendRune(lex.ch)
	}
	if isInteger(lex.symbuf.b) {
		return lex.emit(token.INT, string(lex.symbuf.b), loc)
	}
	return lex.emit(token.SYMBOL, lex.intern.GetBytes(lex.symbuf.b), loc)
}

func (lex *Lexer) skipWhitespace() error {
	for {
		c, err := lex.scanner.Peek()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return lex.readChar()
		}
		if !unicode.IsSpace(c) {
			return nil
		}
		err = lex.readChar()
		if err != nil {
			return err
		}
	}
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		var utf8err *token.InvalidUTF8Error
		if !errors.Is(err, io.EOF) && !errors.As(err, &utf8err) {
			lex.readErr = err
		}
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

// SkipLine discards input up to and including the next newline unless the
// last rune scanned was a newline.
func (lex *Lexer) SkipLine() {
	if lex.ch == '\n' {
		return
	}
	for {
		c, err := lex.scanner.Peek()
		if err != nil {
			var utf8err *token.InvalidUTF8Error
			if errors.As(err, &utf8err) {
				lex.readChar()
				continue
			}
			return
		}
		lex.readChar()
		if c == '\n' {
			return
		}
	}
}

// ReadErr returns the error, other than EOF, that stopped the lexer from
// reading its source, if any.
func (lex *Lexer) ReadErr() error {
	return lex.readErr
}

// SymbolBufCap returns the capacity of the scratch buffer used for symbols.
func (lex *Lexer) SymbolBufCap() int {
	return cap(lex.symbuf.b)
}

// StringBufCap returns the capacity of the scratch buffer used for strings.
func (lex *Lexer) StringBufCap() int {
	return cap(lex.strbuf.b)
}

// buffer is a scratch buffer for token text.  Its capacity doubles whenever
// it fills.
type buffer struct {
	b []byte
}

func newBuffer(n int) *buffer {
	return &buffer{b: make([]byte, 0, n)}
}

func (buf *buffer) reset() {
	buf.b = buf.b[:0]
}

func (buf *buffer) appendRune(c rune) {
	n := utf8.RuneLen(c)
	if n < 0 {
		n = utf8.UTFMax
	}
	if len(buf.b)+n > cap(buf.b) {
		size := cap(buf.b)
		if size == 0 {
			size = 1
		}
		for len(buf.b)+n > size {
			size *= 2
		}
		grown := make([]byte, len(buf.b), size)
		copy(grown, buf.b)
		buf.b = grown
	}
	buf.b = utf8.AppendRune(buf.b, c)
}

func isDelimiter(c rune) bool {
	if unicode.IsSpace(c) {
		return true
	}
	for _, d := range delimiters {
		if c == d {
			return true
		}
	}
	return false
}

// isInteger reports whether text matches [+-]?[0-9]+.
func isInteger(text []byte) bool {
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	if len(text) == 0 {
		return false
	}
	for _, c := range text {
		if !isDigit(rune(c)) {
			return false
		}
	}
	return true
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
