package token

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	s := NewScanner("test", strings.NewReader("aé\nb"))

	c, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', c)

	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'a', s.Rune())
	assert.Equal(t, "test:1:1", s.Loc().String())

	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'é', s.Rune())
	assert.Equal(t, &Location{File: "test", Pos: 1, Line: 1, Col: 2}, s.Loc())

	require.NoError(t, s.ScanRune())
	assert.Equal(t, '\n', s.Rune())
	assert.Equal(t, 3, s.Loc().Pos)

	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'b', s.Rune())
	assert.Equal(t, &Location{File: "test", Pos: 4, Line: 2, Col: 1}, s.Loc())

	_, err = s.Peek()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, io.EOF, s.ScanRune())
	assert.Equal(t, io.EOF, s.ScanRune())
}

func TestScanner_invalidUTF8(t *testing.T) {
	s := NewScanner("test", strings.NewReader("a\xffb"))
	require.NoError(t, s.ScanRune())

	err := s.ScanRune()
	var utf8err *InvalidUTF8Error
	if assert.True(t, errors.As(err, &utf8err)) {
		assert.Equal(t, 1, utf8err.Pos)
		assert.Equal(t, "test:1: invalid utf-8 sequence at byte 1", err.Error())
	}

	// The invalid byte is consumed.
	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'b', s.Rune())
}

type failReader struct {
	data string
	err  error
	done bool
}

func (r *failReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestScanner_readError(t *testing.T) {
	errBroken := errors.New("broken pipe")
	s := NewScanner("test", &failReader{data: "x", err: errBroken})
	require.NoError(t, s.ScanRune())
	assert.Equal(t, errBroken, s.ScanRune())
	// After a read error the input is treated as exhausted.
	assert.Equal(t, io.EOF, s.ScanRune())
	_, err := s.Peek()
	assert.Equal(t, io.EOF, err)
}

func TestToken_String(t *testing.T) {
	tok := &Token{Type: SYMBOL, Text: "abc"}
	assert.Equal(t, `symbol "abc"`, tok.String())
	assert.Equal(t, "EOF", (&Token{Type: EOF}).String())
	assert.Equal(t, "invalid", Type(100).String())

	assert.Equal(t, "f[3]", (&Location{File: "f", Pos: 3}).String())
	assert.Equal(t, "f:2", (&Location{File: "f", Line: 2}).String())
}
