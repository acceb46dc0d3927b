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

// Package parser implements the recursive-descent parser that turns a
// token stream into a typed Command AST. Every Command renders back to
// SQL via String, and re-parsing that rendering yields an equivalent
// Command.
package parser

import (
	"strings"

	"github.com/ebobrow/sequel/internal/check"
	"github.com/ebobrow/sequel/internal/value"
)

// Command is the sum type produced by parsing a single SQL statement.
type Command interface {
	isCommand()
	String() string
}

// sqlLiteral renders v in its source form: strings quoted, numbers and
// booleans as written.
func sqlLiteral(v value.Value) string {
	if v.Kind() == value.String {
		return `"` + v.Str() + `"`
	}
	return v.Render()
}

// Key is a SELECT projection: either a glob (every column in declared
// order, including a hidden implicit ID) or an explicit, ordered list of
// column names.
type Key struct {
	Glob bool
	Cols []string
}

func (k Key) String() string {
	if k.Glob {
		return "*"
	}
	return strings.Join(k.Cols, ", ")
}

// SelectCmd is `SELECT <key> FROM <table>`.
type SelectCmd struct {
	Key   Key
	Table string
}

func (*SelectCmd) isCommand() {}

func (c *SelectCmd) String() string {
	return "SELECT " + c.Key.String() + " FROM " + c.Table
}

// Cols is an INSERT column list: either omitted (use the table's visible
// columns in declared order) or an explicit, ordered list.
type Cols struct {
	Omitted bool
	Names   []string
}

// InsertCmd is `INSERT INTO <table> [(cols)] VALUES (row), (row), ...`.
type InsertCmd struct {
	Table string
	Cols  Cols
	Rows  [][]value.Value
}

func (*InsertCmd) isCommand() {}

func (c *InsertCmd) String() string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(c.Table)
	if !c.Cols.Omitted {
		b.WriteString(" (")
		b.WriteString(strings.Join(c.Cols.Names, ", "))
		b.WriteString(")")
	}
	b.WriteString(" VALUES ")
	for i, row := range c.Rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(sqlLiteral(v))
		}
		b.WriteString(")")
	}
	return b.String()
}

// ColDecl is a single column declaration inside `CREATE TABLE (...)`.
type ColDecl struct {
	Name       string
	Type       value.Kind
	NotNull    bool
	Unique     bool
	PrimaryKey bool
	ForeignKey bool
	CreateIdx  bool
	Check      *check.Expr
	HasDefault bool
	Default    value.Value
}

func (d ColDecl) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteString(" ")
	b.WriteString(d.Type.String())
	if d.NotNull {
		b.WriteString(" NOT NULL")
	}
	if d.Unique {
		b.WriteString(" UNIQUE")
	}
	if d.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if d.ForeignKey {
		b.WriteString(" FOREIGN KEY")
	}
	if d.Check != nil {
		b.WriteString(" CHECK (")
		b.WriteString(d.Check.String())
		b.WriteString(")")
	}
	if d.HasDefault {
		b.WriteString(" DEFAULT ")
		b.WriteString(sqlLiteral(d.Default))
	}
	if d.CreateIdx {
		b.WriteString(" CREATE INDEX")
	}
	return b.String()
}

// TableDef is the body of a CREATE TABLE statement: either an explicit
// column-declaration list, or an embedded `AS SELECT ...` source.
type TableDef struct {
	Cols     []ColDecl
	AsSelect *SelectCmd
}

// CreateTableCmd is `CREATE TABLE <name> (...)` or `CREATE TABLE <name> AS
// SELECT ...`.
type CreateTableCmd struct {
	Name string
	Def  TableDef
}

func (*CreateTableCmd) isCommand() {}

func (c *CreateTableCmd) String() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(c.Name)
	if c.Def.AsSelect != nil {
		b.WriteString(" AS ")
		b.WriteString(c.Def.AsSelect.String())
		return b.String()
	}
	b.WriteString(" (")
	for i, d := range c.Def.Cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.String())
	}
	b.WriteString(")")
	return b.String()
}

// DescribeCmd is the `DESCRIBE <table>` schema-introspection statement.
type DescribeCmd struct {
	Table string
}

func (*DescribeCmd) isCommand() {}

func (c *DescribeCmd) String() string { return "DESCRIBE " + c.Table }
