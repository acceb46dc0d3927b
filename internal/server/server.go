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

// Package server implements the TCP accept loop: one goroutine per
// connection, every connection sharing the same catalog.
package server

import (
	"io"
	"net"

	"github.com/rs/xid"

	"github.com/ebobrow/sequel/internal/catalog"
	"github.com/ebobrow/sequel/internal/cnf"
	"github.com/ebobrow/sequel/internal/dbexec"
	"github.com/ebobrow/sequel/internal/frame"
	"github.com/ebobrow/sequel/internal/slog"
	"github.com/ebobrow/sequel/internal/wire"
)

// Server owns the shared catalog and accepts SQL connections on the
// configured bind address.
type Server struct {
	opts *cnf.Options
	cat  *catalog.Catalog
	ln   net.Listener
}

// New builds a Server with a fresh, empty catalog.
func New(opts *cnf.Options) *Server {
	return &Server{opts: opts, cat: catalog.New()}
}

// ListenAndServe binds the configured address and serves connections
// until Accept fails (typically because Close was called).
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.opts.Conn.Bind)
	if err != nil {
		return err
	}
	s.ln = ln

	slog.WithPrefix("server").Infof("listening on %s", s.opts.Conn.Bind)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handle(nc net.Conn) {
	id := xid.New().String()
	log := slog.WithPrefix("server").WithField("remote", id)
	log.Infof("accepted connection from %s", nc.RemoteAddr())
	defer nc.Close()

	conn := wire.New(nc)
	for {
		f, err := conn.ReadFrame()
		if err != nil {
			if err == io.EOF || err == wire.ErrReset {
				log.Infof("client disconnected")
			} else {
				log.Errorf("connection error: %s", err)
			}
			return
		}

		if f.Kind != frame.KindCmd {
			if werr := conn.WriteFrame(frame.NewError("expected a Cmd frame")); werr != nil {
				log.Errorf("write error: %s", werr)
				return
			}
			continue
		}

		resp := dbexec.Run(s.cat, id, f.Cmd)
		if err := conn.WriteFrame(resp); err != nil {
			log.Errorf("write error: %s", err)
			return
		}
	}
}
