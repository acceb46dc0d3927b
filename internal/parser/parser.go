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

package parser

import (
	"strconv"

	"github.com/ebobrow/sequel/internal/check"
	"github.com/ebobrow/sequel/internal/lexer"
	"github.com/ebobrow/sequel/internal/token"
	"github.com/ebobrow/sequel/internal/value"
)

// Parser is a recursive-descent parser over a token stream, with a single
// token of pushback.
type Parser struct {
	s   *lexer.Scanner
	buf struct {
		tok      token.Token
		buffered bool
	}
}

// New returns a parser reading tokens from s.
func New(s *lexer.Scanner) *Parser {
	return &Parser{s: s}
}

// Parse parses src as a single SQL statement.
func Parse(src []byte) (Command, error) {
	p := New(lexer.NewFromBytes(src))
	return p.ParseCommand()
}

// scan returns the next token, consuming it.
func (p *Parser) scan() (token.Token, error) {
	if p.buf.buffered {
		p.buf.buffered = false
		return p.buf.tok, nil
	}
	tok, err := p.s.Scan()
	if err != nil {
		return token.Token{}, err
	}
	p.buf.tok = tok
	return tok, nil
}

// unscan pushes the last-scanned token back onto the parser.
func (p *Parser) unscan() {
	p.buf.buffered = true
}

// shouldBe scans the next token and requires it to be one of expected,
// returning a structured error otherwise.
func (p *Parser) shouldBe(expected ...token.Kind) (token.Token, error) {
	tok, err := p.scan()
	if err != nil {
		return token.Token{}, err
	}
	if in(tok.Kind, expected) {
		return tok, nil
	}
	p.unscan()
	if tok.Kind == token.EOF {
		return token.Token{}, &UnexpectedEndError{Expected: expectedNames(expected)}
	}
	return token.Token{}, &UnexpectedError{Got: tok.Lit, Expected: expectedNames(expected)}
}

// mightBe scans the next token; if it matches one of expected it is
// consumed and returned, otherwise it is pushed back. A lex error is
// propagated rather than treated as a non-match.
func (p *Parser) mightBe(expected ...token.Kind) (token.Token, bool, error) {
	tok, err := p.scan()
	if err != nil {
		return token.Token{}, false, err
	}
	if !in(tok.Kind, expected) {
		p.unscan()
		return token.Token{}, false, nil
	}
	return tok, true, nil
}

func in(k token.Kind, kinds []token.Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// ParseCommand parses a single statement: insert | select | create |
// describe.
func (p *Parser) ParseCommand() (Command, error) {
	tok, err := p.shouldBe(token.INSERT, token.SELECT, token.CREATE, token.DESCRIBE)
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case token.INSERT:
		return p.parseInsert()
	case token.SELECT:
		return p.parseSelect()
	case token.CREATE:
		return p.parseCreate()
	case token.DESCRIBE:
		return p.parseDescribe()
	default:
		return nil, &UnexpectedError{Got: tok.Lit}
	}
}

func (p *Parser) parseIdent() (string, error) {
	tok, err := p.shouldBe(token.IDENT)
	if err != nil {
		return "", err
	}
	return tok.Lit, nil
}

// parseSelect parses `SELECT key FROM ident`, with SELECT already
// consumed.
func (p *Parser) parseSelect() (*SelectCmd, error) {
	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}
	if _, err := p.shouldBe(token.FROM); err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &SelectCmd{Key: key, Table: table}, nil
}

// parseKey parses `'*' | ident (, ident)*`.
func (p *Parser) parseKey() (Key, error) {
	if _, ok, err := p.mightBe(token.STAR); err != nil {
		return Key{}, err
	} else if ok {
		return Key{Glob: true}, nil
	}

	name, err := p.parseIdent()
	if err != nil {
		return Key{}, err
	}
	names := []string{name}
	for {
		if _, ok, err := p.mightBe(token.COMMA); err != nil {
			return Key{}, err
		} else if !ok {
			break
		}
		name, err := p.parseIdent()
		if err != nil {
			return Key{}, err
		}
		names = append(names, name)
	}
	return Key{Cols: names}, nil
}

// parseInsert parses `INSERT INTO ident cols? VALUES row (, row)*`, with
// INSERT already consumed.
func (p *Parser) parseInsert() (*InsertCmd, error) {
	if _, err := p.shouldBe(token.INTO); err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	cols := Cols{Omitted: true}
	if _, ok, err := p.mightBe(token.LPAREN); err != nil {
		return nil, err
	} else if ok {
		p.unscan()
		names, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		cols = Cols{Names: names}
	}

	if _, err := p.shouldBe(token.VALUES); err != nil {
		return nil, err
	}

	var rows [][]value.Value
	row, err := p.parseRow()
	if err != nil {
		return nil, err
	}
	rows = append(rows, row)
	for {
		if _, ok, err := p.mightBe(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		row, err := p.parseRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &InsertCmd{Table: table, Cols: cols, Rows: rows}, nil
}

// parseParenIdentList parses `'(' ident (, ident)* ')'`, allowing the
// empty list `()`.
func (p *Parser) parseParenIdentList() ([]string, error) {
	if _, err := p.shouldBe(token.LPAREN); err != nil {
		return nil, err
	}
	if _, ok, err := p.mightBe(token.RPAREN); err != nil {
		return nil, err
	} else if ok {
		return []string{}, nil
	}
	var names []string
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	names = append(names, name)
	for {
		if _, ok, err := p.mightBe(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if _, err := p.shouldBe(token.RPAREN); err != nil {
		return nil, err
	}
	return names, nil
}

// parseRow parses `'(' literal (, literal)* ')'`, allowing the empty row
// `()`.
func (p *Parser) parseRow() ([]value.Value, error) {
	if _, err := p.shouldBe(token.LPAREN); err != nil {
		return nil, err
	}
	if _, ok, err := p.mightBe(token.RPAREN); err != nil {
		return nil, err
	} else if ok {
		return []value.Value{}, nil
	}
	var vals []value.Value
	v, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	vals = append(vals, v)
	for {
		if _, ok, err := p.mightBe(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if _, err := p.shouldBe(token.RPAREN); err != nil {
		return nil, err
	}
	return vals, nil
}

// parseLiteral parses `number | string | true | false`.
func (p *Parser) parseLiteral() (value.Value, error) {
	tok, err := p.shouldBe(token.NUMBER, token.STRING, token.TRUE, token.FALSE)
	if err != nil {
		return value.Value{}, err
	}
	return literalValue(tok)
}

func literalValue(tok token.Token) (value.Value, error) {
	switch tok.Kind {
	case token.NUMBER:
		n, err := strconv.ParseFloat(tok.Lit, 64)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewNumber(n), nil
	case token.STRING:
		return value.NewString(tok.Lit), nil
	case token.TRUE:
		return value.NewBoolean(true), nil
	case token.FALSE:
		return value.NewBoolean(false), nil
	default:
		return value.Value{}, &UnexpectedError{Got: tok.Lit}
	}
}

// parseCreate parses `CREATE TABLE ident ( '(' coldecl,* ')' | AS select
// )`, with CREATE already consumed.
func (p *Parser) parseCreate() (*CreateTableCmd, error) {
	if _, err := p.shouldBe(token.TABLE); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if _, ok, err := p.mightBe(token.AS); err != nil {
		return nil, err
	} else if ok {
		if _, err := p.shouldBe(token.SELECT); err != nil {
			return nil, err
		}
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		return &CreateTableCmd{Name: name, Def: TableDef{AsSelect: sel}}, nil
	}

	if _, err := p.shouldBe(token.LPAREN); err != nil {
		return nil, err
	}
	var decls []ColDecl
	decl, err := p.parseColDecl()
	if err != nil {
		return nil, err
	}
	decls = append(decls, decl)
	for {
		if _, ok, err := p.mightBe(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		decl, err := p.parseColDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	if _, err := p.shouldBe(token.RPAREN); err != nil {
		return nil, err
	}

	return &CreateTableCmd{Name: name, Def: TableDef{Cols: decls}}, nil
}

// parseColDecl parses `ident typename constraint*`.
func (p *Parser) parseColDecl() (ColDecl, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ColDecl{}, err
	}

	typeTok, err := p.shouldBe(token.IDENT)
	if err != nil {
		return ColDecl{}, err
	}
	var ty value.Kind
	switch typeTok.Lit {
	case "string":
		ty = value.String
	case "number":
		ty = value.Number
	default:
		return ColDecl{}, &UnknownTypeError{Name: typeTok.Lit}
	}

	decl := ColDecl{Name: name, Type: ty}

	for {
		if err := p.parseConstraint(&decl); err != nil {
			if !errIsNoMoreConstraints(err) {
				return ColDecl{}, err
			}
			break
		}
	}

	return decl, nil
}

// noMoreConstraints is a sentinel used internally to signal that the next
// token does not start a constraint.
type noMoreConstraints struct{}

func (noMoreConstraints) Error() string { return "no more constraints" }

func errIsNoMoreConstraints(err error) bool {
	_, ok := err.(noMoreConstraints)
	return ok
}

// parseConstraint parses a single `constraint`, mutating decl, or pushes
// the next token back and returns noMoreConstraints if it does not start
// a constraint.
func (p *Parser) parseConstraint(decl *ColDecl) error {
	tok, err := p.scan()
	if err != nil {
		return err
	}

	switch tok.Kind {
	case token.NOT:
		if _, err := p.shouldBe(token.NULL); err != nil {
			return err
		}
		decl.NotNull = true
		return nil

	case token.UNIQUE:
		decl.Unique = true
		return nil

	case token.PRIMARY:
		if _, err := p.shouldBe(token.KEY); err != nil {
			return err
		}
		decl.PrimaryKey = true
		return nil

	case token.FOREIGN:
		if _, err := p.shouldBe(token.KEY); err != nil {
			return err
		}
		decl.ForeignKey = true
		return nil

	case token.CHECK:
		if _, err := p.shouldBe(token.LPAREN); err != nil {
			return err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return err
		}
		if _, err := p.shouldBe(token.RPAREN); err != nil {
			return err
		}
		decl.Check = expr
		return nil

	case token.DEFAULT:
		lit, err := p.shouldBe(token.NUMBER, token.STRING, token.TRUE, token.FALSE)
		if err != nil {
			return err
		}
		v, err := literalValue(lit)
		if err != nil {
			return err
		}
		decl.HasDefault = true
		decl.Default = v
		return nil

	case token.CREATE:
		if _, err := p.shouldBe(token.INDEX); err != nil {
			return err
		}
		decl.CreateIdx = true
		return nil

	default:
		p.unscan()
		return noMoreConstraints{}
	}
}

// parseExpr parses `operand relop operand`.
func (p *Parser) parseExpr() (*check.Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	opTok, err := p.shouldBe(token.EQ, token.LT, token.LTE, token.GT, token.GTE)
	if err != nil {
		return nil, err
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &check.Expr{Left: left, Op: opTok.Kind, Right: right}, nil
}

// parseOperand parses `ident | number | string | true | false`.
func (p *Parser) parseOperand() (check.Operand, error) {
	tok, err := p.shouldBe(token.IDENT, token.NUMBER, token.STRING, token.TRUE, token.FALSE)
	if err != nil {
		return check.Operand{}, err
	}
	if tok.Kind == token.IDENT {
		return check.IdentOperand(tok.Lit), nil
	}
	v, err := literalValue(tok)
	if err != nil {
		return check.Operand{}, err
	}
	return check.LiteralOperand(v), nil
}

// parseDescribe parses `DESCRIBE ident`, with DESCRIBE already consumed.
func (p *Parser) parseDescribe() (*DescribeCmd, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &DescribeCmd{Table: name}, nil
}
