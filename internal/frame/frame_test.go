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

package frame

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFrameRoundTrip(t *testing.T) {

	Convey("A Cmd frame encodes and decodes losslessly", t, func() {
		f := NewCmd([]byte("SELECT * FROM people"))
		wire := Encode(f)

		n, err := Check(wire)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, len(wire))

		got, consumed, err := Parse(wire)
		So(err, ShouldBeNil)
		So(consumed, ShouldEqual, len(wire))
		So(got.Kind, ShouldEqual, KindCmd)
		So(string(got.Cmd), ShouldEqual, "SELECT * FROM people")
	})

	Convey("A Table frame encodes and decodes losslessly", t, func() {
		f := RenderTable([]string{"name", "age"}, []string{"Elliot", "16"})
		wire := Encode(f)

		got, consumed, err := Parse(wire)
		So(err, ShouldBeNil)
		So(consumed, ShouldEqual, len(wire))
		So(got.Kind, ShouldEqual, KindTable)
		So(got.Rows, ShouldResemble, [][]string{{"name", "age"}, {"Elliot", "16"}})
	})

	Convey("An Error frame round-trips its message", t, func() {
		f := NewError("no such table: people")
		wire := Encode(f)

		got, _, err := Parse(wire)
		So(err, ShouldBeNil)
		So(got.Kind, ShouldEqual, KindError)
		So(got.Err, ShouldEqual, "no such table: people")
	})

	Convey("The Null frame encodes as the literal body 1", t, func() {
		f := NewNull()
		wire := Encode(f)
		So(string(wire), ShouldEqual, "-1\r\n")

		got, _, err := Parse(wire)
		So(err, ShouldBeNil)
		So(got.Kind, ShouldEqual, KindNull)
	})

	Convey("Check reports Incomplete on a partial buffer", t, func() {
		f := NewCmd([]byte("SELECT * FROM people"))
		wire := Encode(f)

		_, err := Check(wire[:len(wire)-3])
		So(err, ShouldEqual, ErrIncomplete)
	})

	Convey("Check reports a ProtocolError on an unrecognized tag", t, func() {
		_, err := Check([]byte("?oops\r\n"))
		So(err, ShouldNotBeNil)
		So(err, ShouldHaveSameTypeAs, &ProtocolError{})
	})

	Convey("Two buffered frames parse one at a time, consuming exactly their own length", t, func() {
		wire := append(Encode(NewCmd([]byte("SELECT * FROM t"))), Encode(NewNull())...)

		first, n1, err := Parse(wire)
		So(err, ShouldBeNil)
		So(first.Kind, ShouldEqual, KindCmd)

		second, n2, err := Parse(wire[n1:])
		So(err, ShouldBeNil)
		So(second.Kind, ShouldEqual, KindNull)
		So(n1+n2, ShouldEqual, len(wire))
	})
}

func TestFrameString(t *testing.T) {

	Convey("A Table frame renders as a bordered, column-aligned grid", t, func() {
		f := RenderTable([]string{"name", "age"}, []string{"Elliot", "16"}, []string{"Joe", "9"})
		s := f.String()
		So(s, ShouldContainSubstring, "name")
		So(s, ShouldContainSubstring, "+")
		So(s, ShouldContainSubstring, "Elliot")
	})
}
