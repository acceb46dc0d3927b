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

import "github.com/ebobrow/sequel/internal/value"

// Cell is a single named value within a row.
type Cell struct {
	Name  string
	Value value.Value
}

// Row holds one cell per table header, in the table's header order.
type Row struct {
	cells []Cell
}

// Cells projects the row onto the given column names, in the order
// requested. It returns ColumnNotFoundError if any name is not a column
// of the row.
func (r Row) Cells(names []string) ([]value.Value, error) {
	out := make([]value.Value, len(names))
	for i, name := range names {
		v, ok := r.cell(name)
		if !ok {
			return nil, &ColumnNotFoundError{Name: name}
		}
		out[i] = v
	}
	return out, nil
}

// All returns every cell of the row, in header order.
func (r Row) All() []Cell {
	return r.cells
}

func (r Row) cell(name string) (value.Value, bool) {
	for _, c := range r.cells {
		if c.Name == name {
			return c.Value, true
		}
	}
	return value.Value{}, false
}
