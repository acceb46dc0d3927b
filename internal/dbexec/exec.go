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

// Package dbexec implements the statement executor: dispatch on the
// parsed Command, catalog locking, and per-statement semantics.
package dbexec

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ebobrow/sequel/internal/catalog"
	"github.com/ebobrow/sequel/internal/frame"
	"github.com/ebobrow/sequel/internal/parser"
	"github.com/ebobrow/sequel/internal/slog"
	"github.com/ebobrow/sequel/internal/table"
	"github.com/ebobrow/sequel/internal/value"
)

// Run lexes, parses, and executes one statement against cat, returning
// the Frame to send back to the client. It never panics on malformed
// client input: every failure is packaged into an Error frame and the
// connection stays open.
func Run(cat *catalog.Catalog, remote string, raw []byte) frame.Frame {
	cmd, err := parser.Parse(raw)
	if err != nil {
		slog.WithPrefix("dbexec").WithFields(logrus.Fields{"remote": remote}).Debugf("parse error: %s", err)
		return frame.NewError(err.Error())
	}

	var tableName string
	var result frame.Frame
	switch c := cmd.(type) {
	case *parser.SelectCmd:
		tableName = c.Table
		result = executeSelect(cat, c)
	case *parser.InsertCmd:
		tableName = c.Table
		result = executeInsert(cat, c)
	case *parser.CreateTableCmd:
		tableName = c.Name
		result = executeCreateTable(cat, c)
	case *parser.DescribeCmd:
		tableName = c.Table
		result = executeDescribe(cat, c)
	default:
		result = frame.NewError(fmt.Sprintf("unsupported command %T", cmd))
	}

	slog.WithPrefix("dbexec").WithFields(logrus.Fields{
		"remote": remote,
		"table":  tableName,
	}).Debugln(string(raw))

	return result
}

func executeSelect(cat *catalog.Catalog, cmd *parser.SelectCmd) frame.Frame {
	var header []string
	var rows [][]value.Value

	err := cat.View(func(tables map[string]*table.Table) error {
		tbl, err := catalog.Lookup(tables, cmd.Table)
		if err != nil {
			return err
		}
		names, err := resolveKey(tbl, cmd.Table, cmd.Key)
		if err != nil {
			return err
		}
		header = names
		for _, r := range tbl.Rows() {
			cells, err := r.Cells(names)
			if err != nil {
				return err
			}
			rows = append(rows, cells)
		}
		return nil
	})
	if err != nil {
		return frame.NewError(err.Error())
	}

	return frame.RenderTable(header, renderRows(rows)...)
}

func executeDescribe(cat *catalog.Catalog, cmd *parser.DescribeCmd) frame.Frame {
	var snap table.Snapshot

	err := cat.View(func(tables map[string]*table.Table) error {
		tbl, err := catalog.Lookup(tables, cmd.Table)
		if err != nil {
			return err
		}
		snap = tbl.Snapshot()
		return nil
	})
	if err != nil {
		return frame.NewError(err.Error())
	}

	header := []string{"name", "type", "primary_key", "not_null", "unique", "default"}
	rows := make([][]string, len(snap.Columns))
	for i, c := range snap.Columns {
		def := "none"
		if c.HasDefault {
			def = c.DefaultKey
		}
		rows[i] = []string{
			c.Name,
			c.Type,
			boolCell(c.PrimaryKey),
			boolCell(c.NotNull),
			boolCell(c.Unique),
			def,
		}
	}
	return frame.RenderTable(header, rows...)
}

func executeInsert(cat *catalog.Catalog, cmd *parser.InsertCmd) frame.Frame {
	err := cat.Update(func(tables map[string]*table.Table) error {
		tbl, err := catalog.Lookup(tables, cmd.Table)
		if err != nil {
			return err
		}

		var names []string
		if cmd.Cols.Omitted {
			vis := tbl.VisibleHeaders()
			names = make([]string, len(vis))
			for i, h := range vis {
				names[i] = h.Name
			}
		} else {
			names = cmd.Cols.Names
			for _, n := range names {
				if _, ok := tbl.HeaderByName(n); !ok {
					return &UnknownColumnError{Table: cmd.Table, Column: n}
				}
			}
		}

		for _, row := range cmd.Rows {
			if len(row) > len(names) {
				return &TooManyValuesError{Table: cmd.Table, Expected: len(names), Got: len(row)}
			}
			cells := make([]table.Cell, len(row))
			for i, v := range row {
				cells[i] = table.Cell{Name: names[i], Value: v}
			}
			if err := tbl.Append(cells); err != nil {
				return errors.Wrapf(err, "insert into %q", cmd.Table)
			}
		}
		return nil
	})
	if err != nil {
		return frame.NewError(err.Error())
	}
	return frame.NewNull()
}

func executeCreateTable(cat *catalog.Catalog, cmd *parser.CreateTableCmd) frame.Frame {
	err := cat.Update(func(tables map[string]*table.Table) error {
		if cmd.Def.AsSelect != nil {
			return createTableAsSelect(tables, cmd.Name, cmd.Def.AsSelect)
		}
		return createTableFromCols(tables, cmd.Name, cmd.Def.Cols)
	})
	if err != nil {
		return frame.NewError(err.Error())
	}
	return frame.NewNull()
}

func createTableFromCols(tables map[string]*table.Table, name string, decls []parser.ColDecl) error {
	headers := make([]table.Header, 0, len(decls))
	for _, d := range decls {
		if d.ForeignKey {
			return &UnimplementedError{Feature: "FOREIGN KEY"}
		}
		if d.CreateIdx {
			return &UnimplementedError{Feature: "CREATE INDEX"}
		}

		def := table.NoDefault()
		if d.HasDefault {
			def = table.LiteralDefault(d.Default)
		}

		h, err := table.NewHeader(table.Header{
			Name:       d.Name,
			Type:       d.Type,
			PrimaryKey: d.PrimaryKey,
			NotNull:    d.NotNull,
			Unique:     d.Unique,
			Default:    def,
			Check:      d.Check,
		})
		if err != nil {
			return errors.Wrapf(err, "column %q", d.Name)
		}
		headers = append(headers, h)
	}

	tbl, err := table.New(headers)
	if err != nil {
		return errors.Wrapf(err, "create table %q", name)
	}
	tables[name] = tbl
	return nil
}

func createTableAsSelect(tables map[string]*table.Table, name string, sel *parser.SelectCmd) error {
	src, err := catalog.Lookup(tables, sel.Table)
	if err != nil {
		return err
	}
	names, err := resolveKey(src, sel.Table, sel.Key)
	if err != nil {
		return err
	}

	headers := make([]table.Header, len(names))
	for i, n := range names {
		h, ok := src.HeaderByName(n)
		if !ok {
			return &UnknownColumnError{Table: sel.Table, Column: n}
		}
		headers[i] = h
	}

	newTbl, err := table.New(headers)
	if err != nil {
		return errors.Wrapf(err, "create table %q as select", name)
	}

	for _, r := range src.Rows() {
		vals, err := r.Cells(names)
		if err != nil {
			return err
		}
		cells := make([]table.Cell, len(names))
		for i, n := range names {
			cells[i] = table.Cell{Name: n, Value: vals[i]}
		}
		if err := newTbl.Append(cells); err != nil {
			return errors.Wrapf(err, "create table %q as select", name)
		}
	}

	tables[name] = newTbl
	return nil
}

func resolveKey(tbl *table.Table, tableName string, key parser.Key) ([]string, error) {
	if key.Glob {
		hs := tbl.Headers()
		names := make([]string, len(hs))
		for i, h := range hs {
			names[i] = h.Name
		}
		return names, nil
	}
	for _, n := range key.Cols {
		if _, ok := tbl.HeaderByName(n); !ok {
			return nil, &UnknownColumnError{Table: tableName, Column: n}
		}
	}
	return key.Cols, nil
}

func renderRows(rows [][]value.Value) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Render()
		}
		out[i] = cells
	}
	return out
}

func boolCell(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
