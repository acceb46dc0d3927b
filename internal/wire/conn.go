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

// Package wire wraps a net.Conn with the frame codec: a growable read
// buffer and a buffered writer, single-owner, single-reader.
package wire

import (
	"bufio"
	"errors"
	"io"
	"net"

	"github.com/ebobrow/sequel/internal/frame"
)

// ErrReset is returned by ReadFrame when the peer closes mid-frame.
var ErrReset = errors.New("wire: connection reset by peer")

const initialBufCap = 4096

// Conn is a single connection's frame-level reader/writer.
type Conn struct {
	nc  net.Conn
	w   *bufio.Writer
	buf []byte
}

// New wraps nc for frame-level I/O.
func New(nc net.Conn) *Conn {
	return &Conn{
		nc:  nc,
		w:   bufio.NewWriter(nc),
		buf: make([]byte, 0, initialBufCap),
	}
}

// ReadFrame returns the next frame, growing the internal buffer as
// needed. It returns io.EOF when the peer closes cleanly between frames,
// and ErrReset when the peer closes mid-frame.
func (c *Conn) ReadFrame() (frame.Frame, error) {
	for {
		if _, err := frame.Check(c.buf); err == nil {
			f, consumed, perr := frame.Parse(c.buf)
			if perr != nil {
				return frame.Frame{}, perr
			}
			rest := make([]byte, len(c.buf)-consumed)
			copy(rest, c.buf[consumed:])
			c.buf = rest
			return f, nil
		} else if !errors.Is(err, frame.ErrIncomplete) {
			return frame.Frame{}, err
		}

		chunk := make([]byte, initialBufCap)
		n, rerr := c.nc.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				if len(c.buf) == 0 {
					return frame.Frame{}, io.EOF
				}
				return frame.Frame{}, ErrReset
			}
			return frame.Frame{}, rerr
		}
	}
}

// WriteFrame encodes and flushes f.
func (c *Conn) WriteFrame(f frame.Frame) error {
	if _, err := c.w.Write(frame.Encode(f)); err != nil {
		return err
	}
	return c.w.Flush()
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.nc.Close() }
