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
	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// HashTable69 implements the SRFI 69/125 procedural hash table interface
// over value.HashTable, defaulting to equalComparator (srfi128.go) when
// no comparator argument is given — the common case for make-hash-table
// with no arguments in SRFI 69 code.
type HashTable69 struct {
	M *eval.Machine
}

func (HashTable69) Name() string { return "srfi-69" }

func asHashTable(op string, v value.Value) (*value.HashTable, error) {
	h, ok := v.(*value.HashTable)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "hash-table", v)
	}
	return h, nil
}

func (ht HashTable69) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"make-hash-table": proc("make-hash-table", value.Range(0, 1), func(args []value.Value) (value.Value, error) {
			cmp := equalComparator
			if len(args) == 1 {
				c, err := asComparator("make-hash-table", args[0])
				if err != nil {
					return nil, err
				}
				cmp = c
			}
			return value.NewHashTable(cmp.Equal, cmp.Hash), nil
		}),
		"hash-table?": proc("hash-table?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.HashTable)
			return value.Boolean(ok), nil
		}),
		"hash-table-set!": proc("hash-table-set!", value.Exact(3), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-set!", args[0])
			if err != nil {
				return nil, err
			}
			h.Set(args[1], args[2])
			return value.Undefined{}, nil
		}),
		"hash-table-ref": proc("hash-table-ref", value.Range(2, 3), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-ref", args[0])
			if err != nil {
				return nil, err
			}
			if v, ok := h.Get(args[1]); ok {
				return v, nil
			}
			if len(args) == 3 {
				return ht.M.ApplyProcedure(args[2], nil)
			}
			return nil, errors.New(errors.Runtime, token.NoSpan, "hash-table-ref: key not found")
		}),
		"hash-table-ref/default": proc("hash-table-ref/default", value.Exact(3), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-ref/default", args[0])
			if err != nil {
				return nil, err
			}
			if v, ok := h.Get(args[1]); ok {
				return v, nil
			}
			return args[2], nil
		}),
		"hash-table-delete!": proc("hash-table-delete!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-delete!", args[0])
			if err != nil {
				return nil, err
			}
			h.Delete(args[1])
			return value.Undefined{}, nil
		}),
		"hash-table-contains?": proc("hash-table-contains?", value.Exact(2), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-contains?", args[0])
			if err != nil {
				return nil, err
			}
			_, ok := h.Get(args[1])
			return value.Boolean(ok), nil
		}),
		"hash-table-size": proc("hash-table-size", value.Exact(1), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-size", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(h.Size())), nil
		}),
		"hash-table-keys": proc("hash-table-keys", value.Exact(1), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-keys", args[0])
			if err != nil {
				return nil, err
			}
			var keys []value.Value
			h.Each(func(k, _ value.Value) bool { keys = append(keys, k); return true })
			return value.FromSlice(keys), nil
		}),
		"hash-table-values": proc("hash-table-values", value.Exact(1), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-values", args[0])
			if err != nil {
				return nil, err
			}
			var vals []value.Value
			h.Each(func(_, v value.Value) bool { vals = append(vals, v); return true })
			return value.FromSlice(vals), nil
		}),
		"hash-table->alist": proc("hash-table->alist", value.Exact(1), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table->alist", args[0])
			if err != nil {
				return nil, err
			}
			var pairs []value.Value
			h.Each(func(k, v value.Value) bool { pairs = append(pairs, value.Cons(k, v)); return true })
			return value.FromSlice(pairs), nil
		}),
		"hash-table-walk": proc("hash-table-walk", value.Exact(2), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-walk", args[0])
			if err != nil {
				return nil, err
			}
			var callErr error
			h.Each(func(k, v value.Value) bool {
				_, callErr = ht.M.ApplyProcedure(args[1], []value.Value{k, v})
				return callErr == nil
			})
			return value.Undefined{}, callErr
		}),
		"hash-table-update!": proc("hash-table-update!", value.Range(3, 4), func(args []value.Value) (value.Value, error) {
			h, err := asHashTable("hash-table-update!", args[0])
			if err != nil {
				return nil, err
			}
			cur, ok := h.Get(args[1])
			if !ok {
				if len(args) == 4 {
					cur, err = ht.M.ApplyProcedure(args[3], nil)
					if err != nil {
						return nil, err
					}
				} else {
					return nil, errors.New(errors.Runtime, token.NoSpan, "hash-table-update!: key not found")
				}
			}
			updated, err := ht.M.ApplyProcedure(args[2], []value.Value{cur})
			if err != nil {
				return nil, err
			}
			h.Set(args[1], updated)
			return value.Undefined{}, nil
		}),
	}
}
