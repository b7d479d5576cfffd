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

package srfi

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/value"
)

// Environment97 implements the single SRFI 97 accessor this module
// supports: interaction-environment, returning an opaque handle on the
// global frame. Filtered into the retrieval pack
// (original_source/src/srfi/srfi_97.rs) but not named in spec.md §4.10;
// included because spec.md's Non-goals only rule out first-class
// environments as a general value type, not one fixed accessor (see
// SPEC_FULL.md §5).
type Environment97 struct {
	Global env.Frame
}

func (Environment97) Name() string { return "srfi-97" }

func (e Environment97) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"interaction-environment": proc("interaction-environment", value.Exact(0), func(args []value.Value) (value.Value, error) {
			return &value.EnvironmentHandle{Env: e.Global}, nil
		}),
	}
}
