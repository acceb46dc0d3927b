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

// Package slog wraps logrus with the small, prefix-oriented API the rest
// of this repository uses for structured logging.
package slog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Instance returns the underlying logrus logger, for callers that need
// direct access (e.g. to install a hook).
func Instance() *logrus.Logger {
	return log
}

// SetLevel sets the logging level by name; unrecognised names are ignored.
func SetLevel(v string) {
	if lvl, err := logrus.ParseLevel(v); err == nil {
		log.SetLevel(lvl)
	}
}

// SetFormat selects the "json" or "text" log formatter.
func SetFormat(v string) {
	switch v {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects log output; "stdout", "stderr" and "none" are
// recognised, anything else is treated as "stderr".
func SetOutput(v string) {
	switch v {
	case "stdout":
		log.SetOutput(os.Stdout)
	case "none":
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
}

// WithPrefix prepares a log entry tagged with a component prefix, e.g.
// "server" or "sql".
func WithPrefix(prefix string) *logrus.Entry {
	return log.WithField("prefix", prefix)
}

// WithField prepares a log entry with a single data field.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields prepares a log entry with multiple data fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// Infof logs a message at level Info on the standard logger.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs a message at level Error on the standard logger.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Fatalf logs a message at level Fatal on the standard logger, then exits.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}
