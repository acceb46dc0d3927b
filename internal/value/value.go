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

// Package value implements the tagged cell value used throughout the
// table engine: a closed sum over string, number, boolean and null.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// Null is the absence of a value. It is distinct from the empty string.
	Null Kind = iota
	String
	Number
	Boolean
)

// String returns the human name of a Kind, as used in type-mismatch
// diagnostics and CREATE TABLE column declarations.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is a single cell value: one of string, number, boolean, or null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// NewNull returns the null value.
func NewNull() Value { return Value{kind: Null} }

// NewString wraps s as a string value.
func NewString(s string) Value { return Value{kind: String, str: s} }

// NewNumber wraps n as a number value.
func NewNumber(n float64) Value { return Value{kind: Number, num: n} }

// NewBoolean wraps b as a boolean value.
func NewBoolean(b bool) Value { return Value{kind: Boolean, b: b} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == Null }

// Str returns the underlying string, valid only when Kind() == String.
func (v Value) Str() string { return v.str }

// Num returns the underlying number, valid only when Kind() == Number.
func (v Value) Num() float64 { return v.num }

// Bool returns the underlying boolean, valid only when Kind() == Boolean.
func (v Value) Bool() bool { return v.b }

// Render renders the value as the textual form used in Table frame cells.
// Null renders as the empty string; numbers use Go's default float
// formatting, which prints integral values without a trailing ".0".
func (v Value) Render() string {
	switch v.kind {
	case Null:
		return ""
	case String:
		return v.str
	case Boolean:
		return strconv.FormatBool(v.b)
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return ""
	}
}

// Equal reports whether two values are the same kind and hold the same
// data. Two null values are never considered equal to each other for the
// purposes of a uniqueness check (see Table.Append).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return false
	case String:
		return v.str == o.str
	case Number:
		return v.num == o.num
	case Boolean:
		return v.b == o.b
	default:
		return false
	}
}

// Compare orders two values of the same kind; it panics if the kinds
// differ, since ordering across kinds is never required by the primary
// key or CHECK comparison rules.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		panic(fmt.Sprintf("value: cannot compare %s with %s", v.kind, o.kind))
	}
	switch v.kind {
	case Number:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		default:
			return 0
		}
	case String:
		switch {
		case v.str < o.str:
			return -1
		case v.str > o.str:
			return 1
		default:
			return 0
		}
	case Boolean:
		if v.b == o.b {
			return 0
		}
		if !v.b && o.b {
			return -1
		}
		return 1
	default:
		return 0
	}
}
