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
	"golang.org/x/exp/slices"

	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/value"
)

// Vectors133 implements SRFI 133's additional vector library beyond the
// R7RS-core set interp/builtin.Vectors already installs. Grounded on
// original_source/src/srfi/srfi_133.rs, which stubs vector-count,
// vector-index, and vector-cumulate to ignore their predicate/combiner
// argument entirely (truthy-count, first-truthy-index, fixed numeric
// add); here every such procedure actually invokes the Scheme-level
// argument via Machine.ApplyProcedure, the same bridge srfi132.go's
// comparator calls use.
type Vectors133 struct {
	M *eval.Machine
}

func (Vectors133) Name() string { return "srfi-133" }

func (v Vectors133) call1(pred value.Value, a value.Value) (bool, error) {
	r, err := v.M.ApplyProcedure(pred, []value.Value{a})
	if err != nil {
		return false, err
	}
	return !isFalseValue(r), nil
}

func (v Vectors133) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"vector-empty?": proc("vector-empty?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-empty?", args[0])
			if err != nil {
				return nil, err
			}
			return value.Boolean(len(vec.Elems) == 0), nil
		}),
		"vector-count": proc("vector-count", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			pred := args[0]
			vec, err := asVector("vector-count", args[1])
			if err != nil {
				return nil, err
			}
			n := 0
			for _, e := range vec.Elems {
				ok, err := v.call1(pred, e)
				if err != nil {
					return nil, err
				}
				if ok {
					n++
				}
			}
			return value.NewInt(int64(n)), nil
		}),
		"vector-index": proc("vector-index", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			pred := args[0]
			vec, err := asVector("vector-index", args[1])
			if err != nil {
				return nil, err
			}
			idx := slices.IndexFunc(vec.Elems, func(e value.Value) bool {
				ok, callErr := v.call1(pred, e)
				if callErr != nil {
					err = callErr
				}
				return ok
			})
			if err != nil {
				return nil, err
			}
			if idx < 0 {
				return value.Boolean(false), nil
			}
			return value.NewInt(int64(idx)), nil
		}),
		"vector-any": proc("vector-any", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			pred := args[0]
			vec, err := asVector("vector-any", args[1])
			if err != nil {
				return nil, err
			}
			for _, e := range vec.Elems {
				r, err := v.M.ApplyProcedure(pred, []value.Value{e})
				if err != nil {
					return nil, err
				}
				if !isFalseValue(r) {
					return r, nil
				}
			}
			return value.Boolean(false), nil
		}),
		"vector-every": proc("vector-every", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			pred := args[0]
			vec, err := asVector("vector-every", args[1])
			if err != nil {
				return nil, err
			}
			var last value.Value = value.Boolean(true)
			for _, e := range vec.Elems {
				r, err := v.M.ApplyProcedure(pred, []value.Value{e})
				if err != nil {
					return nil, err
				}
				if isFalseValue(r) {
					return value.Boolean(false), nil
				}
				last = r
			}
			return last, nil
		}),
		"vector-cumulate": proc("vector-cumulate", value.Exact(3), func(args []value.Value) (value.Value, error) {
			combiner, acc := args[0], args[1]
			vec, err := asVector("vector-cumulate", args[2])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(vec.Elems))
			for i, e := range vec.Elems {
				r, err := v.M.ApplyProcedure(combiner, []value.Value{acc, e})
				if err != nil {
					return nil, err
				}
				acc = r
				out[i] = acc
			}
			return value.NewVector(out), nil
		}),
		"vector-swap!": proc("vector-swap!", value.Exact(3), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-swap!", args[0])
			if err != nil {
				return nil, err
			}
			i, err := asIndexN("vector-swap!", args[1])
			if err != nil {
				return nil, err
			}
			j, err := asIndexN("vector-swap!", args[2])
			if err != nil {
				return nil, err
			}
			vec.Elems[i], vec.Elems[j] = vec.Elems[j], vec.Elems[i]
			return value.Undefined{}, nil
		}),
		"vector-reverse": proc("vector-reverse", value.Exact(1), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-reverse", args[0])
			if err != nil {
				return nil, err
			}
			out := append([]value.Value{}, vec.Elems...)
			slices.Reverse(out)
			return value.NewVector(out), nil
		}),
		"vector-reverse!": proc("vector-reverse!", value.Exact(1), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-reverse!", args[0])
			if err != nil {
				return nil, err
			}
			slices.Reverse(vec.Elems)
			return value.Undefined{}, nil
		}),
		"vector-concatenate": proc("vector-concatenate", value.Exact(1), func(args []value.Value) (value.Value, error) {
			elems, err := asList("vector-concatenate", args[0])
			if err != nil {
				return nil, err
			}
			var out []value.Value
			for _, e := range elems {
				vec, err := asVector("vector-concatenate", e)
				if err != nil {
					return nil, err
				}
				out = append(out, vec.Elems...)
			}
			return value.NewVector(out), nil
		}),
	}
}
