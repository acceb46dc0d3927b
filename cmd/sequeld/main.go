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

// Command sequeld runs the networked table-engine server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebobrow/sequel/internal/cnf"
	"github.com/ebobrow/sequel/internal/server"
	"github.com/ebobrow/sequel/internal/slog"
)

const version = "0.1.0"

func main() {
	opts := cnf.Defaults()

	root := &cobra.Command{
		Use:   "sequeld",
		Short: "sequeld starts the table-engine server",
	}

	var logLevel, logFormat, logOutput string

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the server and listen for connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetLevel(logLevel)
			slog.SetFormat(logFormat)
			slog.SetOutput(logOutput)

			s := server.New(opts)
			return s.ListenAndServe()
		},
	}
	startCmd.Flags().StringVarP(&opts.Conn.Bind, "bind", "b", opts.Conn.Bind, "The host:port to listen for connections on")
	startCmd.Flags().StringVar(&logLevel, "log-level", opts.Logging.Level, "Logging level (debug, info, warn, error)")
	startCmd.Flags().StringVar(&logFormat, "log-format", opts.Logging.Format, "Logging format (text, json)")
	startCmd.Flags().StringVar(&logOutput, "log-output", opts.Logging.Output, "Logging destination (stdout, stderr, none)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("sequeld", version)
		},
	}

	root.AddCommand(startCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
