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

package dbexec

import "fmt"

// UnknownColumnError is returned when a SELECT/INSERT column list names
// a column the target table does not have.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
}

// TooManyValuesError is returned when an INSERT row supplies more values
// than the target column list has slots for.
type TooManyValuesError struct {
	Table    string
	Expected int
	Got      int
}

func (e *TooManyValuesError) Error() string {
	return fmt.Sprintf("too many values supplied for table %q: expected at most %d, got %d", e.Table, e.Expected, e.Got)
}

// UnimplementedError is returned for grammar the parser accepts but the
// engine does not execute: FOREIGN KEY and CREATE INDEX. A CREATE TABLE
// AS source other than SELECT is rejected by the parser instead.
type UnimplementedError struct{ Feature string }

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}
