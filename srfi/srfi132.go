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

	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Sort132 implements SRFI 132's list/vector sort procedures, grounded on
// original_source/src/srfi/srfi_132.rs — but where that stub ignores its
// comparator argument and always falls back to numeric-only comparison,
// this implementation actually calls the supplied less? procedure via
// Machine.ApplyProcedure (the same bridge srfi128.go's make-comparator
// uses), and sorts with golang.org/x/exp/slices.SortFunc instead of
// hand-rolling a merge sort.
type Sort132 struct {
	M *eval.Machine
}

func (Sort132) Name() string { return "srfi-132" }

func (s Sort132) lessFn(less value.Value) func(a, b value.Value) bool {
	return func(a, b value.Value) bool {
		r, err := s.M.ApplyProcedure(less, []value.Value{a, b})
		return err == nil && !isFalseValue(r)
	}
}

func (s Sort132) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"list-sort": proc("list-sort", value.Exact(2), func(args []value.Value) (value.Value, error) {
			elems, err := asList("list-sort", args[1])
			if err != nil {
				return nil, err
			}
			sorted := append([]value.Value{}, elems...)
			less := s.lessFn(args[0])
			slices.SortFunc(sorted, less)
			return value.FromSlice(sorted), nil
		}),
		"vector-sort": proc("vector-sort", value.Exact(2), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-sort", args[1])
			if err != nil {
				return nil, err
			}
			sorted := append([]value.Value{}, vec.Elems...)
			less := s.lessFn(args[0])
			slices.SortFunc(sorted, less)
			return value.NewVector(sorted), nil
		}),
		"vector-sort!": proc("vector-sort!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-sort!", args[1])
			if err != nil {
				return nil, err
			}
			less := s.lessFn(args[0])
			slices.SortFunc(vec.Elems, less)
			return value.Undefined{}, nil
		}),
		"list-sorted?": proc("list-sorted?", value.Exact(2), func(args []value.Value) (value.Value, error) {
			elems, err := asList("list-sorted?", args[1])
			if err != nil {
				return nil, err
			}
			return value.Boolean(isSorted(elems, s.lessFn(args[0]))), nil
		}),
		"vector-sorted?": proc("vector-sorted?", value.Exact(2), func(args []value.Value) (value.Value, error) {
			vec, err := asVector("vector-sorted?", args[1])
			if err != nil {
				return nil, err
			}
			return value.Boolean(isSorted(vec.Elems, s.lessFn(args[0]))), nil
		}),
	}
}

func isSorted(elems []value.Value, less func(a, b value.Value) bool) bool {
	for i := 1; i < len(elems); i++ {
		if less(elems[i], elems[i-1]) {
			return false
		}
	}
	return true
}

func asVector(op string, v value.Value) (*value.Vector, error) {
	vec, ok := v.(*value.Vector)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "vector", v)
	}
	return vec, nil
}
