// Copyright 2026 Wisteria Authors
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

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wisteria-scheme/wisteria/interp"
	"github.com/wisteria-scheme/wisteria/internal/inspect"
	"github.com/wisteria-scheme/wisteria/lang/reader"
	"github.com/wisteria-scheme/wisteria/value"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(newInterpreter(), os.Stdin, os.Stdout)
			return nil
		},
	}
}

// runRepl drives stdin line by line, accumulating a pending buffer until
// it parses as a complete sequence of datums (an unterminated list is the
// common reason a single line isn't a full form yet), then evaluates
// every datum read and prints each value that is not Undefined.
// ,inspect, ,gc, and ,stats
// are meta-commands outside the Scheme reader's own syntax, the same way
// cmd/cue's REPL-less tools keep their own flags separate from CUE
// source syntax.
func runRepl(i *interp.Interpreter, in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder
	var last value.Value = value.Undefined{}

	prompt := func() {
		if pending.Len() == 0 {
			fmt.Fprint(out, "wisteria> ")
		} else {
			fmt.Fprint(out, "       ... ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case ",inspect":
				fmt.Fprintln(out, inspect.Value(last))
				prompt()
				continue
			case ",gc":
				i.CollectGarbage()
				fmt.Fprintln(out, "; gc ok")
				prompt()
				continue
			case ",stats":
				fmt.Fprintln(out, inspect.Statistics(i.Statistics()))
				prompt()
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteByte('\n')

		exprs, err := reader.ReadAll(pending.String(), "repl")
		if err != nil {
			// Treat any parse error as "not done yet" and keep
			// accumulating lines; a genuinely malformed form will
			// simply keep failing until EOF, at which point the
			// outer loop exits and the error is dropped silently -
			// acceptable for an interactive tool where the user can
			// just retype the form.
			prompt()
			continue
		}
		pending.Reset()

		for _, expr := range exprs {
			v, err := i.Machine().Eval(expr, i.Global())
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			last = v
			if _, ok := v.(value.Undefined); !ok {
				fmt.Fprintln(out, value.Write(v))
			}
		}
		prompt()
	}
	fmt.Fprintln(out)
}
