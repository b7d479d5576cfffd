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

// Package inspect renders interpreter-internal state (values, frames,
// store statistics) as readable diagnostic text, generalizing the
// teacher's internal/cuetest golden-diagnostic convention
// (internal/cuetest/sim.go renders command output for test comparison
// via github.com/kylelemons/godebug's diff subpackage) from test-only use
// to a first-class package backing the REPL's ,inspect meta-command and
// test failure messages.
package inspect

import (
	"github.com/kylelemons/godebug/pretty"

	"github.com/wisteria-scheme/wisteria/store"
	"github.com/wisteria-scheme/wisteria/value"
)

var printer = &pretty.Config{
	Compact: false,
	IncludeUnexported: false,
}

// Value renders v as a pretty-printed Go representation of its internal
// shape, not its Scheme external representation (value.Write already
// does that) — useful for telling apart e.g. two distinct *Pair chains
// that Display equally.
func Value(v value.Value) string {
	return printer.Sprint(v)
}

// Statistics renders a store.Statistics snapshot for the REPL's ,stats
// meta-command.
func Statistics(s store.Statistics) string {
	return printer.Sprint(s)
}
