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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wisteria-scheme/wisteria/interp"
	"github.com/wisteria-scheme/wisteria/value"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "evaluate a Scheme source file and print its last value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			i := newInterpreter()
			v, err := i.EvalSource(string(src), args[0])
			if err != nil {
				return err
			}
			if _, ok := v.(value.Undefined); !ok {
				fmt.Println(value.Write(v))
			}
			return nil
		},
	}
}

func newInterpreter() *interp.Interpreter {
	if memoryLimit > 0 {
		return interp.NewWithMemoryLimit(memoryLimit)
	}
	return interp.New()
}
