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
	"bytes"

	"github.com/ugorji/go/codec"
)

// ColumnSnapshot is the wire-safe projection of a Header used for schema
// introspection (DESCRIBE) and for round-tripping through the binary
// codec in tests, independent of the network layer.
type ColumnSnapshot struct {
	Name       string
	Type       string
	PrimaryKey bool
	Hidden     bool
	NotNull    bool
	Unique     bool
	HasDefault bool
	DefaultKey string // "none", "literal", or "incrementing"
}

// Snapshot is the codec-encodable schema of a table at a point in time.
type Snapshot struct {
	Columns []ColumnSnapshot
}

func defaultKey(d Default) string {
	switch d.Kind {
	case DefaultLiteral:
		return "literal"
	case DefaultIncrementing:
		return "incrementing"
	default:
		return "none"
	}
}

// Snapshot captures the table's current schema for introspection.
func (t *Table) Snapshot() Snapshot {
	cols := make([]ColumnSnapshot, len(t.headers))
	for i, h := range t.headers {
		cols[i] = ColumnSnapshot{
			Name:       h.Name,
			Type:       h.Type.String(),
			PrimaryKey: h.PrimaryKey,
			Hidden:     h.Hidden,
			NotNull:    h.NotNull,
			Unique:     h.Unique,
			HasDefault: h.Default.Kind != DefaultNone,
			DefaultKey: defaultKey(h.Default),
		}
	}
	return Snapshot{Columns: cols}
}

var handle codec.CborHandle

// EncodeSnapshot serializes a Snapshot with the CBOR handle.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, &handle)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	dec := codec.NewDecoder(bytes.NewReader(data), &handle)
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
