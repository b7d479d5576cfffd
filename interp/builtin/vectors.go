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

import "github.com/wisteria-scheme/wisteria/value"

// Vectors is the vector procedure set of spec.md §4.9.
type Vectors struct{}

func (Vectors) Name() string { return "vectors" }

func asVector(op string, v value.Value) (*value.Vector, error) {
	vec, ok := v.(*value.Vector)
	if !ok {
		return nil, typeErr(op, "vector", v)
	}
	return vec, nil
}

func (Vectors) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"vector": proc("vector", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			elems := make([]value.Value, len(args))
			copy(elems, args)
			return value.NewVector(elems), nil
		}),
		"make-vector": proc("make-vector", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			n, err := asIndex("make-vector", args[0])
			if err != nil {
				return nil, err
			}
			var fill value.Value = value.Boolean(false)
			if len(args) == 2 {
				fill = args[1]
			}
			elems := make([]value.Value, n)
			for i := range elems {
				elems[i] = fill
			}
			return value.NewVector(elems), nil
		}),
		"vector-length": proc("vector-length", value.Exact(1), func(args []value.Value) (value.Value, error) {
			v, err := asVector("vector-length", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(len(v.Elems))), nil
		}),
		"vector-ref": proc("vector-ref", value.Exact(2), func(args []value.Value) (value.Value, error) {
			v, err := asVector("vector-ref", args[0])
			if err != nil {
				return nil, err
			}
			i, err := asIndex("vector-ref", args[1])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(v.Elems) {
				return nil, typeErr("vector-ref", "in-range index", args[1])
			}
			return v.Elems[i], nil
		}),
		"vector-set!": proc("vector-set!", value.Exact(3), func(args []value.Value) (value.Value, error) {
			v, err := asVector("vector-set!", args[0])
			if err != nil {
				return nil, err
			}
			i, err := asIndex("vector-set!", args[1])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(v.Elems) {
				return nil, typeErr("vector-set!", "in-range index", args[1])
			}
			v.Elems[i] = args[2]
			return value.Undefined{}, nil
		}),
		"vector->list": proc("vector->list", value.Range(1, 3), func(args []value.Value) (value.Value, error) {
			v, err := asVector("vector->list", args[0])
			if err != nil {
				return nil, err
			}
			start, end := 0, len(v.Elems)
			if len(args) >= 2 {
				start, err = asIndex("vector->list", args[1])
				if err != nil {
					return nil, err
				}
			}
			if len(args) == 3 {
				end, err = asIndex("vector->list", args[2])
				if err != nil {
					return nil, err
				}
			}
			return value.FromSlice(v.Elems[start:end]), nil
		}),
		"list->vector": proc("list->vector", value.Exact(1), func(args []value.Value) (value.Value, error) {
			elems, err := asList("list->vector", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewVector(elems), nil
		}),
		"vector-fill!": proc("vector-fill!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			v, err := asVector("vector-fill!", args[0])
			if err != nil {
				return nil, err
			}
			for i := range v.Elems {
				v.Elems[i] = args[1]
			}
			return value.Undefined{}, nil
		}),
		"vector-copy": proc("vector-copy", value.Range(1, 3), func(args []value.Value) (value.Value, error) {
			v, err := asVector("vector-copy", args[0])
			if err != nil {
				return nil, err
			}
			start, end := 0, len(v.Elems)
			if len(args) >= 2 {
				start, err = asIndex("vector-copy", args[1])
				if err != nil {
					return nil, err
				}
			}
			if len(args) == 3 {
				end, err = asIndex("vector-copy", args[2])
				if err != nil {
					return nil, err
				}
			}
			out := make([]value.Value, end-start)
			copy(out, v.Elems[start:end])
			return value.NewVector(out), nil
		}),
		"vector-copy!": proc("vector-copy!", value.Range(3, 5), func(args []value.Value) (value.Value, error) {
			to, err := asVector("vector-copy!", args[0])
			if err != nil {
				return nil, err
			}
			at, err := asIndex("vector-copy!", args[1])
			if err != nil {
				return nil, err
			}
			from, err := asVector("vector-copy!", args[2])
			if err != nil {
				return nil, err
			}
			start, end := 0, len(from.Elems)
			if len(args) >= 4 {
				start, err = asIndex("vector-copy!", args[3])
				if err != nil {
					return nil, err
				}
			}
			if len(args) == 5 {
				end, err = asIndex("vector-copy!", args[4])
				if err != nil {
					return nil, err
				}
			}
			copy(to.Elems[at:], from.Elems[start:end])
			return value.Undefined{}, nil
		}),
		"vector-append": proc("vector-append", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			var out []value.Value
			for _, a := range args {
				v, err := asVector("vector-append", a)
				if err != nil {
					return nil, err
				}
				out = append(out, v.Elems...)
			}
			return value.NewVector(out), nil
		}),
	}
}
