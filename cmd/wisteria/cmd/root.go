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

// Package cmd implements the wisteria command-tree, built the way
// cmd/cue/cmd/root.go builds the cue binary: one cobra.Command root with
// subcommands added in newRootCmd and a Main entry point translating a
// returned error into a process exit code.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var memoryLimit int

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wisteria",
		Short:         "wisteria evaluates R7RS Scheme source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&memoryLimit, "memory-limit", 0, "store memory limit in bytes (0 = unlimited)")
	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())
	return root
}

// Main runs the wisteria CLI and returns a process exit code, the same
// contract cmd/cue/cmd.Main gives cmd/cue/main.go.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
