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

package builtin

import (
	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/interp/promise"
	"github.com/wisteria-scheme/wisteria/value"
)

// Control bundles the procedures that need access to the evaluator
// itself rather than just the value model: apply, map, for-each, and
// force all call back into a user or Scheme-level procedure, which
// special forms handle via a pushed Frame but a builtin can only do
// through Machine.ApplyProcedure (see interp/eval/apply.go's note on its
// one-Go-stack-frame-per-call cost).
type Control struct {
	M *eval.Machine
}

func (Control) Name() string { return "control" }

func (c Control) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"apply": proc("apply", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			head := args[:len(args)-1]
			tail, ok := value.ToSlice(args[len(args)-1])
			if !ok {
				return nil, typeErr("apply", "proper list", args[len(args)-1])
			}
			callArgs := append(append([]value.Value{}, head[1:]...), tail...)
			return c.M.ApplyProcedure(head[0], callArgs)
		}),
		"map": proc("map", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			callee := args[0]
			lists, n, err := sameLengthLists("map", args[1:])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, n)
			for i := 0; i < n; i++ {
				row := make([]value.Value, len(lists))
				for j, l := range lists {
					row[j] = l[i]
				}
				v, err := c.M.ApplyProcedure(callee, row)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return value.FromSlice(out), nil
		}),
		"for-each": proc("for-each", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			callee := args[0]
			lists, n, err := sameLengthLists("for-each", args[1:])
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				row := make([]value.Value, len(lists))
				for j, l := range lists {
					row[j] = l[i]
				}
				if _, err := c.M.ApplyProcedure(callee, row); err != nil {
					return nil, err
				}
			}
			return value.Undefined{}, nil
		}),
		"force": proc("force", value.Exact(1), func(args []value.Value) (value.Value, error) {
			p, ok := args[0].(*value.Promise)
			if !ok {
				return args[0], nil
			}
			return promise.Force(c.M, p)
		}),
		"make-promise": proc("make-promise", value.Exact(1), func(args []value.Value) (value.Value, error) {
			if p, ok := args[0].(*value.Promise); ok {
				return p, nil
			}
			return value.NewEager(args[0]), nil
		}),
	}
}

func sameLengthLists(op string, args []value.Value) ([][]value.Value, int, error) {
	lists := make([][]value.Value, len(args))
	n := -1
	for i, a := range args {
		s, ok := value.ToSlice(a)
		if !ok {
			return nil, 0, typeErr(op, "proper list", a)
		}
		lists[i] = s
		if n < 0 || len(s) < n {
			n = len(s)
		}
	}
	if n < 0 {
		n = 0
	}
	return lists, n, nil
}
