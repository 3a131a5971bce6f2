package token

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner reads unicode runes from a byte stream (io.Reader) and tracks their
// location.  A Scanner never reads more from its source than is needed to
// produce the rune being peeked, so it may be used on interactive streams.
type Scanner struct {
	file string
	r    *bufio.Reader

	pos  int // byte offset of c
	line int // line number of c
	col  int // column of c
	c    Rune

	peeked  bool
	peek    Rune
	peekErr error
	readErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
	}
}

// Rune returns the unicode rune most recently scanned by ScanRune.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// Peek returns the next rune to be scanned without consuming it.  If an
// invalid utf-8 sequence, a read error or EOF prevents a rune from being
// scanned Peek returns the cause.  The next call to ScanRune will return the
// same error.
func (s *Scanner) Peek() (rune, error) {
	if !s.peeked {
		s.peek, s.peekErr = s.read()
		s.peeked = true
	}
	return s.peek.C, s.peekErr
}

// ScanRune consumes the next rune from the input.  An invalid utf-8 sequence
// is consumed and reported as an *InvalidUTF8Error so that scanning may
// continue.  A read error is reported once, after which the input is treated
// as exhausted.  EOF is returned repeatedly.
func (s *Scanner) ScanRune() error {
	_, err := s.Peek()
	if err != nil {
		if _, ok := err.(*InvalidUTF8Error); ok {
			s.advance(s.peek)
			s.peeked = false
		} else if err != io.EOF {
			s.peeked = false
		}
		return err
	}
	s.advance(s.peek)
	s.peeked = false
	return nil
}

func (s *Scanner) advance(r Rune) {
	old := s.c
	s.pos += old.N
	s.col++
	if old.C == '\n' {
		s.line++
		s.col = 1
	}
	s.c = r
}

func (s *Scanner) read() (Rune, error) {
	if s.readErr != nil {
		return Rune{}, io.EOF
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.readErr = err
		}
		return Rune{}, err
	}
	r := Rune{c, n}
	if r.IsRuneError() {
		loc := s.next()
		return r, &InvalidUTF8Error{File: loc.File, Pos: loc.Pos, Line: loc.Line}
	}
	return r, nil
}

// next returns the location of the rune following the current one.
func (s *Scanner) next() *Location {
	loc := &Location{File: s.file, Pos: s.pos + s.c.N, Line: s.line, Col: s.col + 1}
	if s.c.C == '\n' {
		loc.Line++
		loc.Col = 1
	}
	return loc
}

// Loc returns a Location referencing the current scanner position, the last
// rune scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Rune contains a rune read by Scanner and its encoded length.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}

// InvalidUTF8Error is returned when source text is not valid utf-8.
type InvalidUTF8Error struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
}

func (err *InvalidUTF8Error) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s:%d: invalid utf-8 sequence at byte %d", err.File, err.Line, err.Pos)
	}
	return fmt.Sprintf("%s: invalid utf-8 sequence at byte %d", err.File, err.Pos)
}
