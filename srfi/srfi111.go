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
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Box111 implements SRFI 111's single-mutable-cell container on top of
// value.Box, which interp/builtin has no package of its own for (no
// core R7RS form touches it).
type Box111 struct{}

func (Box111) Name() string { return "srfi-111" }

func (Box111) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"box": proc("box", value.Exact(1), func(args []value.Value) (value.Value, error) {
			return &value.Box{Val: args[0]}, nil
		}),
		"unbox": proc("unbox", value.Exact(1), func(args []value.Value) (value.Value, error) {
			b, ok := args[0].(*value.Box)
			if !ok {
				return nil, errors.WrongType(token.NoSpan, "unbox", "box", args[0])
			}
			return b.Val, nil
		}),
		"set-box!": proc("set-box!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			b, ok := args[0].(*value.Box)
			if !ok {
				return nil, errors.WrongType(token.NoSpan, "set-box!", "box", args[0])
			}
			b.Val = args[1]
			return value.Undefined{}, nil
		}),
		"box?": proc("box?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Box)
			return value.Boolean(ok), nil
		}),
	}
}
