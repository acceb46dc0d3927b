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

// Package table implements the in-memory table engine: column headers
// with constraints and defaults, and primary-key-ordered row storage.
package table

import (
	"github.com/ebobrow/sequel/internal/check"
	"github.com/ebobrow/sequel/internal/value"
)

// DefaultKind identifies a column's default policy.
type DefaultKind int

const (
	DefaultNone DefaultKind = iota
	DefaultLiteral
	DefaultIncrementing
)

// Default describes how an omitted cell is filled at insert time.
type Default struct {
	Kind    DefaultKind
	Literal value.Value
	counter float64
}

// NoDefault returns the absent default policy.
func NoDefault() Default { return Default{Kind: DefaultNone} }

// LiteralDefault returns a fixed-value default policy.
func LiteralDefault(v value.Value) Default {
	return Default{Kind: DefaultLiteral, Literal: v}
}

// IncrementingDefault returns a monotonically incrementing default policy
// starting at start.
func IncrementingDefault(start float64) Default {
	return Default{Kind: DefaultIncrementing, counter: start}
}

// peek returns the value the counter would supply next, without
// consuming it.
func (d *Default) peek() value.Value {
	return value.NewNumber(d.counter)
}

// advance consumes the peeked value. It must only be called once the row
// it was used for is known to succeed.
func (d *Default) advance() {
	d.counter++
}

// Header describes one column of a table: its name, declared type, and
// constraints.
type Header struct {
	Name       string
	Type       value.Kind
	PrimaryKey bool
	Hidden     bool
	NotNull    bool
	Unique     bool
	Default    Default
	Check      *check.Expr
}

// NewHeader builds a header, enforcing the default-policy invariants from
// the data model: a literal default's type must match the declared type,
// and an incrementing default requires a number column.
func NewHeader(h Header) (Header, error) {
	switch h.Default.Kind {
	case DefaultLiteral:
		if h.Default.Literal.Kind() != h.Type {
			return Header{}, &DefaultTypeMismatchError{Column: h.Name, Declared: h.Type, Default: h.Default.Literal.Kind()}
		}
	case DefaultIncrementing:
		if h.Type != value.Number {
			return Header{}, &DefaultTypeMismatchError{Column: h.Name, Declared: h.Type, Default: value.Number}
		}
	}
	return h, nil
}

// ImplicitID builds the synthetic hidden primary-key column appended to
// any table whose CREATE TABLE statement declared no primary key.
func ImplicitID() Header {
	return Header{
		Name:       "ID",
		Type:       value.Number,
		PrimaryKey: true,
		Hidden:     true,
		NotNull:    true,
		Unique:     true,
		Default:    IncrementingDefault(0),
	}
}
