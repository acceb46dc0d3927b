// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer implements the byte-level scanner that turns raw SQL text
// into a token stream. Keywords are matched by exact case, whitespace is
// ASCII space only, and any byte outside the recognized token set is a
// fatal LexError.
package lexer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/ebobrow/sequel/internal/token"
)

// LexError is returned when the scanner encounters a byte it cannot
// classify, or an unterminated string literal.
type LexError struct {
	Byte   byte
	Reason string
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("unexpected byte %q", e.Byte)
}

const eof = byte(0)

// Scanner turns a byte stream into a sequence of tokens.
type Scanner struct {
	r *bufio.Reader
	b []byte // bytes read so far, available for undo
	a []byte // bytes pushed back via undo, read again before the reader
}

// New returns a scanner reading from r.
func New(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// NewFromBytes returns a scanner over an in-memory byte slice.
func NewFromBytes(src []byte) *Scanner {
	return New(bytes.NewReader(src))
}

// next reads the next byte, returning eof at end of input.
func (s *Scanner) next() byte {
	if n := len(s.a); n > 0 {
		var c byte
		c, s.a = s.a[n-1], s.a[:n-1]
		s.b = append(s.b, c)
		return c
	}
	c, err := s.r.ReadByte()
	if err != nil {
		return eof
	}
	s.b = append(s.b, c)
	return c
}

// undo pushes the most recently read byte back onto the scanner.
func (s *Scanner) undo() {
	if n := len(s.b); n > 0 {
		var c byte
		c, s.b = s.b[n-1], s.b[:n-1]
		s.a = append(s.a, c)
	}
}

func isSpace(c byte) bool { return c == ' ' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Scan returns the next token. It never returns a whitespace token;
// whitespace is consumed silently between tokens.
func (s *Scanner) Scan() (token.Token, error) {
	for {
		c := s.next()

		switch {
		case c == eof:
			return token.Token{Kind: token.EOF}, nil
		case isSpace(c):
			continue
		case isAlpha(c):
			return s.scanIdent(c)
		case isDigit(c):
			return s.scanNumber(c)
		}

		switch c {
		case '*':
			return token.Token{Kind: token.STAR, Lit: "*"}, nil
		case '(':
			return token.Token{Kind: token.LPAREN, Lit: "("}, nil
		case ')':
			return token.Token{Kind: token.RPAREN, Lit: ")"}, nil
		case ',':
			return token.Token{Kind: token.COMMA, Lit: ","}, nil
		case '=':
			return token.Token{Kind: token.EQ, Lit: "="}, nil
		case '>':
			if n := s.next(); n == '=' {
				return token.Token{Kind: token.GTE, Lit: ">="}, nil
			} else {
				s.undo()
			}
			return token.Token{Kind: token.GT, Lit: ">"}, nil
		case '<':
			if n := s.next(); n == '=' {
				return token.Token{Kind: token.LTE, Lit: "<="}, nil
			} else {
				s.undo()
			}
			return token.Token{Kind: token.LT, Lit: "<"}, nil
		case '"':
			return s.scanString()
		}

		return token.Token{Kind: token.ILLEGAL}, &LexError{Byte: c}
	}
}

// scanIdent consumes an identifier or keyword starting at the already-read
// byte c. Identifiers continue through ASCII alphabetics only.
func (s *Scanner) scanIdent(c byte) (token.Token, error) {
	var buf bytes.Buffer
	buf.WriteByte(c)

	for {
		n := s.next()
		if n == eof {
			break
		}
		if !isAlpha(n) {
			s.undo()
			break
		}
		buf.WriteByte(n)
	}

	lit := buf.String()
	return token.Token{Kind: token.Lookup(lit), Lit: lit}, nil
}

// scanNumber consumes a number: \d+ optionally followed by '.' \d+, where
// the fractional digit is mandatory once a '.' is seen.
func (s *Scanner) scanNumber(c byte) (token.Token, error) {
	var buf bytes.Buffer
	buf.WriteByte(c)

	for {
		n := s.next()
		if n == eof || !isDigit(n) {
			if n != eof {
				s.undo()
			}
			break
		}
		buf.WriteByte(n)
	}

	if n := s.next(); n == '.' {
		frac := s.next()
		if !isDigit(frac) {
			return token.Token{Kind: token.ILLEGAL}, &LexError{Reason: "expected a digit after '.' in number literal"}
		}
		buf.WriteByte('.')
		buf.WriteByte(frac)
		for {
			d := s.next()
			if d == eof || !isDigit(d) {
				if d != eof {
					s.undo()
				}
				break
			}
			buf.WriteByte(d)
		}
	} else if n != eof {
		s.undo()
	}

	return token.Token{Kind: token.NUMBER, Lit: buf.String()}, nil
}

// scanString consumes a "-delimited string literal with no escape
// sequences; reaching end of input before the closing quote is an error.
func (s *Scanner) scanString() (token.Token, error) {
	var buf bytes.Buffer

	for {
		c := s.next()
		if c == eof {
			return token.Token{Kind: token.ILLEGAL}, &LexError{Reason: "unterminated string literal"}
		}
		if c == '"' {
			break
		}
		buf.WriteByte(c)
	}

	return token.Token{Kind: token.STRING, Lit: buf.String()}, nil
}
