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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// cmpValue is a cycle-safe go-cmp Comparer for Value: go-cmp's default
// reflection-based walk would recurse into *Pair's Car/Cdr fields and
// hang on a self-referential list the same way a naive equal? without
// TestCyclicListDetected's fast/slow pointer walk would. Registering
// Equal as the Comparer for the Value interface intercepts comparison
// before cmp ever descends into a Pair's fields, so cmp.Diff is safe to
// use on any Value, cyclic or not.
var cmpValue = cmp.Comparer(func(a, b Value) bool { return Equal(a, b) })

func TestEqualityTriad(t *testing.T) {
	p := Cons(NewInt(1), NewInt(2))
	assert.True(t, Eq(p, p))
	assert.True(t, Eqv(p, p))
	assert.True(t, Equal(p, p))

	a := Cons(NewInt(1), Cons(NewInt(2), Nil{}))
	b := Cons(NewInt(1), Cons(NewInt(2), Nil{}))
	assert.False(t, Eq(a, b))
	assert.True(t, Equal(a, b))
}

func TestPairSharing(t *testing.T) {
	p := Cons(NewInt(1), NewInt(2))
	alias := p
	p.Car = NewInt(9)
	n, ok := alias.Car.(*Number)
	assert.True(t, ok)
	assert.Equal(t, int64(9), n.I)
}

func TestListRoundTrip(t *testing.T) {
	elems := []Value{NewInt(1), NewInt(2), NewInt(3)}
	l := FromSlice(elems)
	n, ok := ListLength(l)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	out, ok := ToSlice(l)
	assert.True(t, ok)
	assert.Equal(t, len(elems), len(out))
	for i := range elems {
		assert.True(t, Equal(elems[i], out[i]))
	}
}

func TestCyclicListDetected(t *testing.T) {
	p := Cons(NewInt(1), Nil{})
	p.Cdr = p
	_, ok := ListLength(p)
	assert.False(t, ok)
}

func TestGoCmpStructuralEquality(t *testing.T) {
	a := Cons(NewInt(1), Cons(NewInt(2), Nil{}))
	b := Cons(NewInt(1), Cons(NewInt(2), Nil{}))
	if diff := cmp.Diff(Value(a), Value(b), cmpValue); diff != "" {
		t.Fatalf("expected equal lists, got diff (-a +b):\n%s", diff)
	}

	c := Cons(NewInt(1), Cons(NewInt(3), Nil{}))
	if diff := cmp.Diff(Value(a), Value(c), cmpValue); diff == "" {
		t.Fatalf("expected a diff between (1 2) and (1 3)")
	}
}

func TestGoCmpCyclicPairsDoNotHang(t *testing.T) {
	p := Cons(NewInt(1), Nil{})
	p.Cdr = p
	q := Cons(NewInt(1), Nil{})
	q.Cdr = q
	if diff := cmp.Diff(Value(p), Value(q), cmpValue); diff != "" {
		t.Fatalf("expected cyclic pairs of equal shape to compare equal, got diff:\n%s", diff)
	}
}

func TestNumberArith(t *testing.T) {
	r, err := NumAdd(NewInt(2), NewInt(3))
	assert.NoError(t, err)
	assert.Equal(t, "5", r.String())

	div, err := NumDiv(NewInt(1), NewInt(3))
	assert.NoError(t, err)
	assert.Equal(t, KindRational, div.Kind)

	_, err = NumDiv(NewInt(1), NewInt(0))
	assert.ErrorIs(t, err, ErrDivByZero())
}
