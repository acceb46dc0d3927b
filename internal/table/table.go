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
	"sort"

	"github.com/ebobrow/sequel/internal/value"
)

// Table is an in-memory, primary-key-ordered collection of rows sharing a
// fixed set of column headers.
type Table struct {
	headers []Header
	pkIndex int
	rows    []Row
}

// New builds a table from a set of headers. Column names must be unique
// and at most one column may carry PRIMARY KEY; a table declaring none
// gets a synthetic hidden "ID" primary key appended. The primary-key
// column is always not-null and unique, whether declared or implicit.
func New(headers []Header) (*Table, error) {
	hs := make([]Header, len(headers))
	copy(hs, headers)

	seen := make(map[string]bool, len(hs))
	pkCount := 0
	for _, h := range hs {
		if seen[h.Name] {
			return nil, &DuplicateColumnError{Name: h.Name}
		}
		seen[h.Name] = true
		if h.PrimaryKey {
			pkCount++
		}
	}
	if pkCount > 1 {
		return nil, &MultiplePrimaryKeysError{Count: pkCount}
	}
	if pkCount == 0 {
		hs = append(hs, ImplicitID())
	}

	pkIndex := -1
	for i, h := range hs {
		if h.PrimaryKey {
			pkIndex = i
			break
		}
	}
	hs[pkIndex].NotNull = true
	hs[pkIndex].Unique = true

	return &Table{headers: hs, pkIndex: pkIndex}, nil
}

// Headers returns every column header, in declared order; an implicit
// "ID" primary key comes last, a declared primary key keeps its position.
func (t *Table) Headers() []Header {
	out := make([]Header, len(t.headers))
	copy(out, t.headers)
	return out
}

// VisibleHeaders returns the headers with the Hidden flag unset, in
// declared order. This is the column set used to align an INSERT whose
// column list was omitted.
func (t *Table) VisibleHeaders() []Header {
	out := make([]Header, 0, len(t.headers))
	for _, h := range t.headers {
		if !h.Hidden {
			out = append(out, h)
		}
	}
	return out
}

// HeaderByName looks up a header by column name.
func (t *Table) HeaderByName(name string) (Header, bool) {
	for _, h := range t.headers {
		if h.Name == name {
			return h, true
		}
	}
	return Header{}, false
}

// Rows returns every row, ascending by primary key value.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Append validates and inserts one row, given the cells explicitly
// supplied by the caller (an INSERT statement, or a projected row from a
// CREATE TABLE AS SELECT). Each supplied cell is checked for column
// existence, not-null, uniqueness and type agreement; then the primary
// key is resolved, every default-bearing omitted column is synthesized,
// and CHECK expressions are evaluated against the fully-assembled
// candidate row. No counter advances until the whole row is known to
// succeed, so a rejected row never leaves a gap in an incrementing
// default.
func (t *Table) Append(cells []Cell) error {
	supplied, err := t.validateSupplied(cells)
	if err != nil {
		return err
	}

	// Assemble the candidate row, peeking counters rather than
	// consuming them.
	var counters []int
	final := make([]Cell, len(t.headers))
	for i := range t.headers {
		h := &t.headers[i]
		if v, ok := supplied[h.Name]; ok {
			final[i] = Cell{Name: h.Name, Value: v}
			continue
		}
		if i == t.pkIndex {
			if h.Default.Kind != DefaultIncrementing {
				return &PrimaryKeyRequiredError{Column: h.Name}
			}
			final[i] = Cell{Name: h.Name, Value: h.Default.peek()}
			counters = append(counters, i)
			continue
		}
		switch h.Default.Kind {
		case DefaultLiteral:
			final[i] = Cell{Name: h.Name, Value: h.Default.Literal}
		case DefaultIncrementing:
			final[i] = Cell{Name: h.Name, Value: h.Default.peek()}
			counters = append(counters, i)
		default:
			if h.NotNull {
				return &NotNullViolationError{Column: h.Name}
			}
			final[i] = Cell{Name: h.Name, Value: value.NewNull()}
		}
	}

	candidate := make(map[string]value.Value, len(final))
	for _, c := range final {
		candidate[c.Name] = c.Value
	}
	for i := range t.headers {
		h := &t.headers[i]
		if h.Check == nil {
			continue
		}
		ok, err := h.Check.Eval(candidate)
		if err != nil {
			return &CheckViolationError{Column: h.Name, Err: err}
		}
		if !ok {
			return &CheckViolationError{Column: h.Name}
		}
	}

	for _, i := range counters {
		t.headers[i].Default.advance()
	}
	t.insertSorted(Row{cells: final})
	return nil
}

// validateSupplied runs the per-cell validation steps (column existence,
// not-null, uniqueness, type) over exactly the cells the caller
// supplied, and returns them keyed by column name for the caller to
// continue primary-key resolution and default synthesis.
func (t *Table) validateSupplied(cells []Cell) (map[string]value.Value, error) {
	supplied := make(map[string]value.Value, len(cells))
	for _, c := range cells {
		supplied[c.Name] = c.Value
	}

	for _, c := range cells {
		h, ok := t.HeaderByName(c.Name)
		if !ok {
			return nil, &ColumnNotFoundError{Name: c.Name}
		}

		if c.Value.IsNull() {
			if h.NotNull {
				return nil, &NotNullViolationError{Column: c.Name}
			}
		} else {
			if c.Value.Kind() != h.Type {
				return nil, &TypeMismatchError{Column: c.Name, Expected: h.Type, Got: c.Value.Kind()}
			}
			if h.Unique && t.hasMatchingValue(h.Name, c.Value) {
				return nil, &UniqueViolationError{Column: c.Name, Value: c.Value}
			}
		}
	}

	return supplied, nil
}

func (t *Table) insertSorted(row Row) {
	pk := row.cells[t.pkIndex].Value
	i := sort.Search(len(t.rows), func(i int) bool {
		return t.rows[i].cells[t.pkIndex].Value.Compare(pk) >= 0
	})
	t.rows = append(t.rows, Row{})
	copy(t.rows[i+1:], t.rows[i:])
	t.rows[i] = row
}

func (t *Table) hasMatchingValue(name string, v value.Value) bool {
	idx := -1
	for i, h := range t.headers {
		if h.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	for _, r := range t.rows {
		existing := r.cells[idx].Value
		if existing.IsNull() {
			continue
		}
		if existing.Equal(v) {
			return true
		}
	}
	return false
}
