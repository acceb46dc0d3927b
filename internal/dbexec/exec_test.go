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

import (
	"testing"

	"github.com/ebobrow/sequel/internal/catalog"
	"github.com/ebobrow/sequel/internal/frame"
	. "github.com/smartystreets/goconvey/convey"
)

func run(cat *catalog.Catalog, stmt string) frame.Frame {
	return Run(cat, "test", []byte(stmt))
}

func TestStatementPipeline(t *testing.T) {

	Convey("CREATE TABLE then SELECT * shows declared columns plus the implicit ID", t, func() {
		cat := catalog.New()
		So(run(cat, `CREATE TABLE people (name string, age number)`).Kind, ShouldEqual, frame.KindNull)

		res := run(cat, `SELECT * FROM people`)
		So(res.Kind, ShouldEqual, frame.KindTable)
		So(res.Rows, ShouldResemble, [][]string{{"name", "age", "ID"}})
	})

	Convey("Inserting a full row fills the implicit ID starting at 0", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE people (name string, age number)`)

		So(run(cat, `INSERT INTO people VALUES ("Elliot", 16)`).Kind, ShouldEqual, frame.KindNull)

		res := run(cat, `SELECT * FROM people`)
		So(res.Rows, ShouldResemble, [][]string{
			{"name", "age", "ID"},
			{"Elliot", "16", "0"},
		})
	})

	Convey("An explicit column list defaults the rest, ID keeps incrementing", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE people (name string, age number)`)
		run(cat, `INSERT INTO people VALUES ("Elliot", 16)`)

		So(run(cat, `INSERT INTO people (name) VALUES ("Joe")`).Kind, ShouldEqual, frame.KindNull)

		res := run(cat, `SELECT name,ID FROM people`)
		So(res.Rows, ShouldResemble, [][]string{
			{"name", "ID"},
			{"Elliot", "0"},
			{"Joe", "1"},
		})
	})

	Convey("More values than visible columns is rejected", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE people (name string, age number)`)
		run(cat, `INSERT INTO people VALUES ("Elliot", 16)`)

		res := run(cat, `INSERT INTO people VALUES (1, 2, 3, 4)`)
		So(res.Kind, ShouldEqual, frame.KindError)
		So(res.Err, ShouldContainSubstring, "too many values")
	})

	Convey("A literal DEFAULT fills an omitted value; a plain column with no default stays null", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE t (three number DEFAULT 3, inc number)`)
		run(cat, `INSERT INTO t VALUES ()`)
		run(cat, `INSERT INTO t (three) VALUES (4)`)

		res := run(cat, `SELECT three,inc FROM t`)
		So(res.Rows, ShouldResemble, [][]string{
			{"three", "inc"},
			{"3", ""},
			{"4", ""},
		})
	})

	Convey("A CHECK failure surfaces as an Error frame naming the column", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE people (age number CHECK (age >= 18))`)

		res := run(cat, `INSERT INTO people VALUES (17)`)
		So(res.Kind, ShouldEqual, frame.KindError)
		So(res.Err, ShouldContainSubstring, "age")
	})

	Convey("CREATE TABLE AS SELECT derives headers and projects existing rows", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE people (name string, age number)`)
		run(cat, `INSERT INTO people VALUES ("Elliot", 16)`)

		So(run(cat, `CREATE TABLE names AS SELECT name FROM people`).Kind, ShouldEqual, frame.KindNull)

		res := run(cat, `SELECT * FROM names`)
		So(res.Rows, ShouldResemble, [][]string{
			{"name", "ID"},
			{"Elliot", "0"},
		})
	})

	Convey("Boundary: an empty VALUES row is accepted when every column can default or go null", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE t (name string)`)

		res := run(cat, `INSERT INTO t VALUES ()`)
		So(res.Kind, ShouldEqual, frame.KindNull)

		sel := run(cat, `SELECT * FROM t`)
		So(sel.Rows, ShouldResemble, [][]string{{"name", "ID"}, {"", "0"}})
	})

	Convey("Boundary: selecting from a missing table is an Error frame", t, func() {
		cat := catalog.New()
		res := run(cat, `SELECT * FROM missing`)
		So(res.Kind, ShouldEqual, frame.KindError)
		So(res.Err, ShouldContainSubstring, "missing")
	})

	Convey("Boundary: two nulls in a unique column never collide", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE t (email string UNIQUE)`)

		So(run(cat, `INSERT INTO t VALUES ()`).Kind, ShouldEqual, frame.KindNull)
		So(run(cat, `INSERT INTO t VALUES ()`).Kind, ShouldEqual, frame.KindNull)
	})
}

func TestDescribe(t *testing.T) {

	Convey("DESCRIBE lists every column including the implicit ID", t, func() {
		cat := catalog.New()
		run(cat, `CREATE TABLE people (name string NOT NULL, age number)`)

		res := run(cat, `DESCRIBE people`)
		So(res.Kind, ShouldEqual, frame.KindTable)
		So(res.Rows[0], ShouldResemble, []string{"name", "type", "primary_key", "not_null", "unique", "default"})
		So(len(res.Rows), ShouldEqual, 4) // header + name + age + ID
	})
}
