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

package table

import (
	"fmt"

	"github.com/ebobrow/sequel/internal/value"
)

// DuplicateColumnError is returned when a CREATE TABLE declares the same
// column name twice.
type DuplicateColumnError struct{ Name string }

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Name)
}

// MultiplePrimaryKeysError is returned when more than one column carries
// the PRIMARY KEY constraint.
type MultiplePrimaryKeysError struct{ Count int }

func (e *MultiplePrimaryKeysError) Error() string {
	return fmt.Sprintf("table declares %d primary key columns, at most one is allowed", e.Count)
}

// DefaultTypeMismatchError is returned when a column's default value does
// not agree with its declared type.
type DefaultTypeMismatchError struct {
	Column   string
	Declared value.Kind
	Default  value.Kind
}

func (e *DefaultTypeMismatchError) Error() string {
	return fmt.Sprintf("column %q declared %s but default is %s", e.Column, e.Declared, e.Default)
}

// ColumnNotFoundError is returned when a cell or projection references a
// column the table does not have.
type ColumnNotFoundError struct{ Name string }

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no such column %q", e.Name)
}

// NotNullViolationError is returned when a null is supplied for a
// NOT NULL column.
type NotNullViolationError struct{ Column string }

func (e *NotNullViolationError) Error() string {
	return fmt.Sprintf("column %q may not be null", e.Column)
}

// UniqueViolationError is returned when a non-null value collides with an
// existing value in a UNIQUE (or PRIMARY KEY) column.
type UniqueViolationError struct {
	Column string
	Value  value.Value
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("duplicate value %s for unique column %q", e.Value.Render(), e.Column)
}

// TypeMismatchError is returned when a supplied cell's kind does not
// match its column's declared type.
type TypeMismatchError struct {
	Column   string
	Expected value.Kind
	Got      value.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %q expects %s, got %s", e.Column, e.Expected, e.Got)
}

// CheckViolationError is returned when a row fails a column's CHECK
// expression, or when the expression itself cannot be evaluated.
type CheckViolationError struct {
	Column string
	Err    error
}

func (e *CheckViolationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CHECK constraint on %q: %s", e.Column, e.Err)
	}
	return fmt.Sprintf("CHECK constraint on %q violated", e.Column)
}

func (e *CheckViolationError) Unwrap() error { return e.Err }

// PrimaryKeyRequiredError is returned when a row omits the primary key and
// the table has no incrementing default to fill it with.
type PrimaryKeyRequiredError struct{ Column string }

func (e *PrimaryKeyRequiredError) Error() string {
	return fmt.Sprintf("must specify primary key %q", e.Column)
}
