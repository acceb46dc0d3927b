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

// Package cnf defines the server's global configuration options, the way
// they are assembled from CLI flags in cmd/sequeld.
package cnf

// Options defines global configuration options for the server.
type Options struct {
	Conn struct {
		Bind string // Address to bind the TCP listener on, e.g. "127.0.0.1:3000"
	}

	Logging struct {
		Level  string // Stores the configured logging level
		Output string // Stores the configured logging output
		Format string // Stores the configured logging format
	}
}

// Defaults returns an Options populated with the documented defaults.
func Defaults() *Options {
	opts := &Options{}
	opts.Conn.Bind = "127.0.0.1:3000"
	opts.Logging.Level = "info"
	opts.Logging.Output = "stderr"
	opts.Logging.Format = "text"
	return opts
}
