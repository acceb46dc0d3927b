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

// Command sequel is an interactive SQL console that dials a running
// sequeld server, sends each typed statement as a Cmd frame, and renders
// the response.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebobrow/sequel/internal/frame"
	"github.com/ebobrow/sequel/internal/wire"
)

const version = "0.1.0"

func main() {
	var host string
	var timeout time.Duration

	root := &cobra.Command{
		Use:   "sequel",
		Short: "sequel is an interactive console for a sequeld server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(host, timeout)
		},
	}
	root.PersistentFlags().StringVarP(&host, "host", "H", "127.0.0.1:3000", "The host:port of the sequeld server to connect to")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Dial timeout when connecting to the server")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the console version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("sequel", version)
		},
	}
	root.AddCommand(versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRepl dials host, then reads newline-terminated statements from
// stdin, sending each as a Cmd frame and printing the server's response
// until stdin closes or the connection drops.
func runRepl(host string, timeout time.Duration) error {
	nc, err := net.DialTimeout("tcp", host, timeout)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", host, err)
	}
	defer nc.Close()

	conn := wire.New(nc)

	fmt.Printf("connected to %s\n", host)
	fmt.Println(`type a statement terminated by a newline, or "exit" to quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("SQL> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if err := conn.WriteFrame(frame.NewCmd([]byte(line))); err != nil {
			return fmt.Errorf("send statement: %w", err)
		}

		resp, err := conn.ReadFrame()
		if err != nil {
			if err == io.EOF || err == wire.ErrReset {
				fmt.Fprintln(os.Stderr, "server closed the connection")
				return nil
			}
			return fmt.Errorf("read response: %w", err)
		}

		fmt.Println(resp.String())
	}

	return scanner.Err()
}
