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
	"sort"

	"github.com/mpvl/unique"

	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Containers113 implements SRFI 113 (Sets and Bags) over value.Set and
// value.Bag, following original_source/src/srfi/srfi_113.rs's choice of
// a string-keyed representation (there, `format!("{}", value)`; here,
// value.Write, the same pragmatic structural key srfi128.go's
// defaultHash already builds on). Every procedure uses the default
// equal?-based comparator; SRFI 113's optional custom-comparator forms
// (e.g. (set comparator elem ...)) are not named in spec.md §4.10's
// export list and are left for a future pass.
type Containers113 struct{}

func (Containers113) Name() string { return "srfi-113" }

// sortableValues implements mpvl/unique's sort+compact interface over a
// []value.Value, ordered by write-representation. dedupValues uses it
// for set, list->set and set->list (bags keep their duplicates and do
// not use it) to deduplicate input in one sort pass rather
// than an O(n^2) linear-scan insert loop, the reason this package pulls
// in mpvl/unique at all (go.mod carries it as a direct dependency
// inherited from CUE, which never actually imports it).
type sortableValues struct {
	vals []value.Value
	keys []string
}

func newSortableValues(vals []value.Value) *sortableValues {
	keys := make([]string, len(vals))
	for i, v := range vals {
		keys[i] = value.Write(v)
	}
	return &sortableValues{vals: vals, keys: keys}
}

func (s *sortableValues) Len() int { return len(s.vals) }
func (s *sortableValues) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s *sortableValues) Swap(i, j int) {
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

// RemoveAt satisfies unique.Interface; idx is ascending, so removing
// from the tail first keeps earlier indices valid.
func (s *sortableValues) RemoveAt(idx []int) {
	for k := len(idx) - 1; k >= 0; k-- {
		i := idx[k]
		s.vals = append(s.vals[:i], s.vals[i+1:]...)
		s.keys = append(s.keys[:i], s.keys[i+1:]...)
	}
}

// dedupValues sorts and removes equal?-duplicate elements, returning the
// unique survivors. Order among survivors is the write-representation
// sort order, not input order — fine for set/bag construction, which has
// no defined element order to begin with.
func dedupValues(vals []value.Value) []value.Value {
	s := newSortableValues(append([]value.Value{}, vals...))
	unique.Sort(s)
	return s.vals
}

var _ sort.Interface = (*sortableValues)(nil)

func asSet(op string, v value.Value) (*value.Set, error) {
	s, ok := v.(*value.Set)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "set", v)
	}
	return s, nil
}

func asBag(op string, v value.Value) (*value.Bag, error) {
	b, ok := v.(*value.Bag)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "bag", v)
	}
	return b, nil
}

func newEqualSet() *value.Set { return value.NewSet(equalComparator.Equal, equalComparator.Hash) }
func newEqualBag() *value.Bag { return value.NewBag(equalComparator.Equal, equalComparator.Hash) }

func (Containers113) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"set": proc("set", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			s := newEqualSet()
			for _, v := range dedupValues(args) {
				s.Add(v)
			}
			return s, nil
		}),
		"set?": proc("set?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Set)
			return value.Boolean(ok), nil
		}),
		"set-contains?": proc("set-contains?", value.Exact(2), func(args []value.Value) (value.Value, error) {
			s, err := asSet("set-contains?", args[0])
			if err != nil {
				return nil, err
			}
			return value.Boolean(s.Contains(args[1])), nil
		}),
		"set-adjoin!": proc("set-adjoin!", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			s, err := asSet("set-adjoin!", args[0])
			if err != nil {
				return nil, err
			}
			for _, v := range args[1:] {
				s.Add(v)
			}
			return s, nil
		}),
		"set-delete!": proc("set-delete!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			s, err := asSet("set-delete!", args[0])
			if err != nil {
				return nil, err
			}
			s.Remove(args[1])
			return s, nil
		}),
		"set-size": proc("set-size", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asSet("set-size", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(s.Size())), nil
		}),
		"set-empty?": proc("set-empty?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asSet("set-empty?", args[0])
			if err != nil {
				return nil, err
			}
			return value.Boolean(s.Size() == 0), nil
		}),
		"set->list": proc("set->list", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asSet("set->list", args[0])
			if err != nil {
				return nil, err
			}
			var out []value.Value
			s.Each(func(v value.Value) bool { out = append(out, v); return true })
			return value.FromSlice(dedupValues(out)), nil
		}),
		"list->set": proc("list->set", value.Exact(1), func(args []value.Value) (value.Value, error) {
			elems, err := asList("list->set", args[0])
			if err != nil {
				return nil, err
			}
			s := newEqualSet()
			for _, v := range dedupValues(elems) {
				s.Add(v)
			}
			return s, nil
		}),
		"set-union": proc("set-union", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			return setCombine("set-union", args, func(seenIn, total int) bool { return seenIn >= 1 })
		}),
		"set-intersection": proc("set-intersection", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			return setCombine("set-intersection", args, func(seenIn, total int) bool { return seenIn == total })
		}),
		"set-difference": proc("set-difference", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			return setDifference(args)
		}),

		"bag": proc("bag", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			b := newEqualBag()
			for _, v := range args {
				b.Add(v)
			}
			return b, nil
		}),
		"bag?": proc("bag?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Bag)
			return value.Boolean(ok), nil
		}),
		"bag-count": proc("bag-count", value.Exact(2), func(args []value.Value) (value.Value, error) {
			b, err := asBag("bag-count", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(b.Count(args[1]))), nil
		}),
		"bag-adjoin!": proc("bag-adjoin!", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			b, err := asBag("bag-adjoin!", args[0])
			if err != nil {
				return nil, err
			}
			for _, v := range args[1:] {
				b.Add(v)
			}
			return b, nil
		}),
		"bag-delete-one!": proc("bag-delete-one!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			b, err := asBag("bag-delete-one!", args[0])
			if err != nil {
				return nil, err
			}
			b.RemoveOne(args[1])
			return b, nil
		}),
		"bag-size": proc("bag-size", value.Exact(1), func(args []value.Value) (value.Value, error) {
			b, err := asBag("bag-size", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(b.Size())), nil
		}),
		"bag->list": proc("bag->list", value.Exact(1), func(args []value.Value) (value.Value, error) {
			b, err := asBag("bag->list", args[0])
			if err != nil {
				return nil, err
			}
			var out []value.Value
			b.Each(func(v value.Value, count int) bool {
				for i := 0; i < count; i++ {
					out = append(out, v)
				}
				return true
			})
			return value.FromSlice(out), nil
		}),
	}
}

// toSets resolves each of args as a *value.Set under op's name, failing
// with a WrongType on the first non-set argument.
func toSets(op string, args []value.Value) ([]*value.Set, error) {
	sets := make([]*value.Set, len(args))
	for i, a := range args {
		s, err := asSet(op, a)
		if err != nil {
			return nil, err
		}
		sets[i] = s
	}
	return sets, nil
}

// setCombine implements set-union/set-intersection uniformly: every
// distinct (equal?) element appearing in any argument set is kept when
// keep(seenIn, total) holds, where seenIn counts how many of the total
// argument sets contain it.
func setCombine(op string, args []value.Value, keep func(seenIn, total int) bool) (value.Value, error) {
	sets, err := toSets(op, args)
	if err != nil {
		return nil, err
	}
	seen := map[string]value.Value{}
	for _, s := range sets {
		s.Each(func(v value.Value) bool {
			seen[value.Write(v)] = v
			return true
		})
	}
	result := newEqualSet()
	for _, v := range seen {
		n := 0
		for _, s := range sets {
			if s.Contains(v) {
				n++
			}
		}
		if keep(n, len(sets)) {
			result.Add(v)
		}
	}
	return result, nil
}

// setDifference keeps only elements of the first set absent from every
// other set, the asymmetric definition setCombine's symmetric "count how
// many sets contain it" shape doesn't fit.
func setDifference(args []value.Value) (value.Value, error) {
	sets, err := toSets("set-difference", args)
	if err != nil {
		return nil, err
	}
	result := newEqualSet()
	rest := sets[1:]
	sets[0].Each(func(v value.Value) bool {
		for _, r := range rest {
			if r.Contains(v) {
				return true
			}
		}
		result.Add(v)
		return true
	})
	return result, nil
}
