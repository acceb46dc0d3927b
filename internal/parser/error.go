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
	"fmt"
	"strings"

	"github.com/ebobrow/sequel/internal/token"
)

// UnexpectedError is returned when the next token does not match any of
// the alternatives the grammar allows at that point.
type UnexpectedError struct {
	Got      string
	Expected []string
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected token %q, expected one of: %s", e.Got, strings.Join(e.Expected, ", "))
}

// UnexpectedEndError is returned when the token stream ends in the middle
// of a production.
type UnexpectedEndError struct {
	Expected []string
}

func (e *UnexpectedEndError) Error() string {
	if len(e.Expected) == 0 {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected end of input, expected one of: %s", strings.Join(e.Expected, ", "))
}

// UnknownTypeError is returned when a column declaration names a type
// other than "string" or "number".
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %s", e.Name)
}

func expectedNames(kinds []token.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
