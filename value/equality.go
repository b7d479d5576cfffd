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

package value

// Eq implements eq?: reference identity for heap-allocated variants,
// bit/value identity for the rest.
func Eq(a, b Value) bool {
	switch x := a.(type) {
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Character:
		y, ok := b.(Character)
		return ok && x == y
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x == y // interned, so pointer equality suffices
	case *Pair:
		y, ok := b.(*Pair)
		return ok && x == y
	case *Vector:
		y, ok := b.(*Vector)
		return ok && x == y
	case *String:
		y, ok := b.(*String)
		return ok && x == y
	case *Procedure:
		y, ok := b.(*Procedure)
		return ok && x == y
	case *Record:
		y, ok := b.(*Record)
		return ok && x == y
	case *Box:
		y, ok := b.(*Box)
		return ok && x == y
	case *Promise:
		y, ok := b.(*Promise)
		return ok && x == y
	case *Port:
		y, ok := b.(*Port)
		return ok && x == y
	case *HashTable:
		y, ok := b.(*HashTable)
		return ok && x == y
	case *Comparator:
		y, ok := b.(*Comparator)
		return ok && x == y
	case *StringCursor:
		y, ok := b.(*StringCursor)
		return ok && x == y
	case *Number:
		y, ok := b.(*Number)
		return ok && x == y // eq? on numbers is identity; see Eqv for value equality
	default:
		return a == b
	}
}

// Eqv implements eqv?: Eq, plus numbers of the same exactness compared
// by value and characters compared by code point (already covered by Eq).
func Eqv(a, b Value) bool {
	if na, ok := a.(*Number); ok {
		nb, ok := b.(*Number)
		return ok && NumEqExact(na, nb)
	}
	return Eq(a, b)
}

// Equal implements equal?: structural recursion over pairs, vectors, and
// strings, bounded against cycles by a visited-pair set so that a
// self-referential list compares in finite time rather than diverging.
func Equal(a, b Value) bool {
	return equalRec(a, b, map[pairKey]bool{})
}

type pairKey struct{ a, b *Pair }

func equalRec(a, b Value, seen map[pairKey]bool) bool {
	switch x := a.(type) {
	case *Pair:
		y, ok := b.(*Pair)
		if !ok {
			return false
		}
		k := pairKey{x, y}
		if seen[k] {
			return true // already comparing this pair on the current path: assume equal, bounding the cycle
		}
		seen[k] = true
		return equalRec(x.Car, y.Car, seen) && equalRec(x.Cdr, y.Cdr, seen)
	case *Vector:
		y, ok := b.(*Vector)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !equalRec(x.Elems[i], y.Elems[i], seen) {
				return false
			}
		}
		return true
	case *String:
		y, ok := b.(*String)
		return ok && string(x.Runes) == string(y.Runes)
	case *Record:
		y, ok := b.(*Record)
		if !ok || x.Type != y.Type || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !equalRec(x.Fields[i], y.Fields[i], seen) {
				return false
			}
		}
		return true
	case *Number:
		y, ok := b.(*Number)
		return ok && NumEqExact(x, y)
	default:
		return Eqv(a, b)
	}
}

// ListLength returns the length of a proper list, or ok=false if v is
// improper or cyclic. Cycle detection uses Floyd's tortoise-and-hare so
// that a circular list terminates this check instead of looping forever.
func ListLength(v Value) (n int, ok bool) {
	slow, fast := v, v
	for {
		switch fp := fast.(type) {
		case Nil:
			return n, true
		case *Pair:
			fast = fp.Cdr
			n++
			if _, isNil := fast.(Nil); isNil {
				return n, true
			}
			fp2, isPair := fast.(*Pair)
			if !isPair {
				return 0, false
			}
			fast = fp2.Cdr
			n++
			sp, _ := slow.(*Pair)
			if sp == nil {
				return 0, false
			}
			slow = sp.Cdr
			if fast == slow {
				return 0, false // cycle detected
			}
		default:
			return 0, false
		}
	}
}

// IsList reports whether v is Nil or a proper list.
func IsList(v Value) bool {
	if _, ok := v.(Nil); ok {
		return true
	}
	_, ok := ListLength(v)
	return ok
}

// ToSlice converts a proper list to a slice in order, or ok=false if v
// is not a proper list.
func ToSlice(v Value) (out []Value, ok bool) {
	for {
		switch x := v.(type) {
		case Nil:
			return out, true
		case *Pair:
			out = append(out, x.Car)
			v = x.Cdr
		default:
			return nil, false
		}
	}
}

// FromSlice builds a proper list from elems, preserving order.
func FromSlice(elems []Value) Value {
	var result Value = Nil{}
	for i := len(elems) - 1; i >= 0; i-- {
		result = Cons(elems[i], result)
	}
	return result
}
