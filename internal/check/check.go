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

// Package check implements the binary comparison expression used by
// CREATE TABLE's CHECK constraint: a single (operand, operator, operand)
// node evaluated against a candidate row.
package check

import (
	"fmt"

	"github.com/ebobrow/sequel/internal/token"
	"github.com/ebobrow/sequel/internal/value"
)

// Operand is either an identifier reference, resolved against the row
// being validated, or a literal value.
type Operand struct {
	Ident   string
	Literal value.Value
	IsIdent bool
}

// IdentOperand builds an operand that resolves against a column name.
func IdentOperand(name string) Operand {
	return Operand{Ident: name, IsIdent: true}
}

// LiteralOperand builds an operand holding a fixed value.
func LiteralOperand(v value.Value) Operand {
	return Operand{Literal: v}
}

// String renders the operand in its source form: the identifier itself,
// or the literal with strings quoted.
func (o Operand) String() string {
	if o.IsIdent {
		return o.Ident
	}
	if o.Literal.Kind() == value.String {
		return `"` + o.Literal.Str() + `"`
	}
	return o.Literal.Render()
}

func (o Operand) resolve(row map[string]value.Value) (value.Value, error) {
	if !o.IsIdent {
		return o.Literal, nil
	}
	v, ok := row[o.Ident]
	if !ok {
		return value.Value{}, fmt.Errorf("unknown column %q in CHECK expression", o.Ident)
	}
	return v, nil
}

// Expr is a binary comparison: left <op> right.
type Expr struct {
	Left  Operand
	Op    token.Kind
	Right Operand
}

// String renders the expression in its source form, e.g. "age >= 18".
func (e Expr) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

// Eval evaluates the expression against a candidate row, given as a map
// from column name to resolved cell value. A null operand satisfies the
// check, since null is not comparable. A kind mismatch between two
// non-null operands is a type error.
func (e Expr) Eval(row map[string]value.Value) (bool, error) {
	left, err := e.Left.resolve(row)
	if err != nil {
		return false, err
	}
	right, err := e.Right.resolve(row)
	if err != nil {
		return false, err
	}

	if left.IsNull() || right.IsNull() {
		return true, nil
	}

	if left.Kind() != right.Kind() {
		return false, fmt.Errorf("CHECK: cannot compare %s with %s", left.Kind(), right.Kind())
	}

	cmp := left.Compare(right)

	switch e.Op {
	case token.EQ:
		return cmp == 0, nil
	case token.LT:
		return cmp < 0, nil
	case token.LTE:
		return cmp <= 0, nil
	case token.GT:
		return cmp > 0, nil
	case token.GTE:
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("CHECK: unsupported operator %s", e.Op)
	}
}
