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

package server

import (
	"net"
	"testing"
	"time"

	"github.com/ebobrow/sequel/internal/cnf"
	"github.com/ebobrow/sequel/internal/frame"
	"github.com/ebobrow/sequel/internal/wire"
)

func startTestServer(t *testing.T) (addr string, stop func()) {
	t.Helper()
	opts := cnf.Defaults()
	opts.Conn.Bind = "127.0.0.1:0"

	s := New(opts)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s.ln = ln

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.handle(conn)
		}
	}()

	return ln.Addr().String(), func() { s.Close() }
}

func TestServerEndToEnd(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	nc, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer nc.Close()

	c := wire.New(nc)

	send := func(sql string) frame.Frame {
		if err := c.WriteFrame(frame.NewCmd([]byte(sql))); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
		f, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		return f
	}

	if got := send(`CREATE TABLE people (name string, age number)`); got.Kind != frame.KindNull {
		t.Fatalf("CREATE TABLE: got %+v", got)
	}
	if got := send(`INSERT INTO people VALUES ("Elliot", 16)`); got.Kind != frame.KindNull {
		t.Fatalf("INSERT: got %+v", got)
	}

	got := send(`SELECT * FROM people`)
	if got.Kind != frame.KindTable {
		t.Fatalf("SELECT: got %+v", got)
	}
	want := [][]string{{"name", "age", "ID"}, {"Elliot", "16", "0"}}
	if len(got.Rows) != len(want) {
		t.Fatalf("rows = %v, want %v", got.Rows, want)
	}
	for i := range want {
		for j := range want[i] {
			if got.Rows[i][j] != want[i][j] {
				t.Fatalf("rows = %v, want %v", got.Rows, want)
			}
		}
	}
}
