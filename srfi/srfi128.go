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
	"hash/fnv"

	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Comparator128 builds and inspects value.Comparator bundles (SRFI 128),
// the foundation srfi69 hash tables and a sorted container would build
// on. A type test, equality, and ordering predicate are each ordinary
// Scheme procedures, so constructing one closes over Machine the same
// way interp/builtin.Control does for apply/map.
type Comparator128 struct {
	M *eval.Machine
}

func (Comparator128) Name() string { return "srfi-128" }

// defaultHash hashes a Value by its external (write) representation; no
// structural hash exists on the value model itself (equal? is defined
// recursively with cycle detection, but a matching incremental hash was
// never added — see DESIGN.md), so this is the pragmatic stand-in used
// wherever a Hash function is required and the caller didn't supply one.
func defaultHash(v value.Value) uint64 {
	h := fnv.New64a()
	h.Write([]byte(value.Write(v)))
	return h.Sum64()
}

func (c Comparator128) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"comparator?": proc("comparator?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Comparator)
			return value.Boolean(ok), nil
		}),
		"make-comparator": proc("make-comparator", value.Exact(4), func(args []value.Value) (value.Value, error) {
			typeTest, equal, less, hash := args[0], args[1], args[2], args[3]
			cmp := &value.Comparator{Name: "user-comparator"}
			cmp.TypeTest = func(v value.Value) bool {
				r, err := c.M.ApplyProcedure(typeTest, []value.Value{v})
				return err == nil && !isFalseValue(r)
			}
			cmp.Equal = func(a, b value.Value) bool {
				r, err := c.M.ApplyProcedure(equal, []value.Value{a, b})
				return err == nil && !isFalseValue(r)
			}
			if !isFalseValue(less) {
				cmp.Less = func(a, b value.Value) bool {
					r, err := c.M.ApplyProcedure(less, []value.Value{a, b})
					return err == nil && !isFalseValue(r)
				}
			}
			if isFalseValue(hash) {
				cmp.Hash = defaultHash
			} else {
				cmp.Hash = func(v value.Value) uint64 {
					r, err := c.M.ApplyProcedure(hash, []value.Value{v})
					if err != nil {
						return 0
					}
					n, ok := r.(*value.Number)
					if !ok {
						return 0
					}
					return uint64(n.Float64())
				}
			}
			return cmp, nil
		}),
		"comparator-equality-predicate": proc("comparator-equality-predicate", value.Exact(1), func(args []value.Value) (value.Value, error) {
			cmp, err := asComparator("comparator-equality-predicate", args[0])
			if err != nil {
				return nil, err
			}
			return &value.Procedure{Name: "comparator-equal", Builtin: proc("comparator-equal", value.Exact(2), func(a []value.Value) (value.Value, error) {
				return value.Boolean(cmp.Equal(a[0], a[1])), nil
			})}, nil
		}),
		"comparator-ordering-predicate": proc("comparator-ordering-predicate", value.Exact(1), func(args []value.Value) (value.Value, error) {
			cmp, err := asComparator("comparator-ordering-predicate", args[0])
			if err != nil {
				return nil, err
			}
			if cmp.Less == nil {
				return nil, errors.New(errors.Type, token.NoSpan, "comparator-ordering-predicate: comparator has no ordering")
			}
			return &value.Procedure{Name: "comparator-less", Builtin: proc("comparator-less", value.Exact(2), func(a []value.Value) (value.Value, error) {
				return value.Boolean(cmp.Less(a[0], a[1])), nil
			})}, nil
		}),
		"comparator-hash-function": proc("comparator-hash-function", value.Exact(1), func(args []value.Value) (value.Value, error) {
			cmp, err := asComparator("comparator-hash-function", args[0])
			if err != nil {
				return nil, err
			}
			return &value.Procedure{Name: "comparator-hash", Builtin: proc("comparator-hash", value.Exact(1), func(a []value.Value) (value.Value, error) {
				return value.NewInt(int64(cmp.Hash(a[0]))), nil
			})}, nil
		}),
	}
}

func asComparator(op string, v value.Value) (*value.Comparator, error) {
	c, ok := v.(*value.Comparator)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "comparator", v)
	}
	return c, nil
}

func isFalseValue(v value.Value) bool {
	b, ok := v.(value.Boolean)
	return ok && !bool(b)
}

// equalComparator is the default comparator srfi69's make-hash-table
// uses when the caller doesn't supply one, built on value.Equal the same
// way equal-hash-table in most Scheme implementations defaults to
// structural equality.
var equalComparator = &value.Comparator{
	Name:     "equal-comparator",
	TypeTest: func(value.Value) bool { return true },
	Equal:    value.Equal,
	Hash:      defaultHash,
}
