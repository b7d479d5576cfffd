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

package srfi_test

import (
	"testing"

	"github.com/wisteria-scheme/wisteria/value"
)

func TestVectorCountIndex(t *testing.T) {
	v := evalOne(t, `
		(define (even? x) (= 0 (modulo x 2)))
		(list (vector-count even? (vector 1 2 3 4 5 6))
		      (vector-index even? (vector 1 3 5 6 7)))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	n, ok := elems[0].(*value.Number)
	if !ok || n.String() != "3" {
		t.Fatalf("expected count 3, got %#v", elems[0])
	}
	idx, ok := elems[1].(*value.Number)
	if !ok || idx.String() != "3" {
		t.Fatalf("expected index 3, got %#v", elems[1])
	}
}

func TestVectorAnyEvery(t *testing.T) {
	v := evalOne(t, `
		(define (even? x) (= 0 (modulo x 2)))
		(list (vector-any even? (vector 1 3 4)) (vector-every even? (vector 2 4 6)) (vector-every even? (vector 2 3 6)))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	if b, ok := elems[0].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected vector-any truthy, got %#v", elems[0])
	}
	if b, ok := elems[1].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected vector-every #t, got %#v", elems[1])
	}
	if b, ok := elems[2].(value.Boolean); !ok || bool(b) {
		t.Fatalf("expected vector-every #f, got %#v", elems[2])
	}
}

func TestVectorCumulateSwapReverse(t *testing.T) {
	v := evalOne(t, `
		(define vec (vector 1 2 3 4))
		(define cum (vector-cumulate + 0 vec))
		(vector-swap! vec 0 3)
		(list cum vec (vector-reverse vec))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	cum, ok := elems[0].(*value.Vector)
	if !ok {
		t.Fatalf("expected a vector, got %#v", elems[0])
	}
	wantCum := []string{"1", "3", "6", "10"}
	for i, w := range wantCum {
		n, ok := cum.Elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("cumulate[%d]: expected %s, got %#v", i, w, cum.Elems[i])
		}
	}
	swapped, ok := elems[1].(*value.Vector)
	if !ok {
		t.Fatalf("expected a vector, got %#v", elems[1])
	}
	wantSwapped := []string{"4", "2", "3", "1"}
	for i, w := range wantSwapped {
		n, ok := swapped.Elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("swapped[%d]: expected %s, got %#v", i, w, swapped.Elems[i])
		}
	}
	reversed, ok := elems[2].(*value.Vector)
	if !ok {
		t.Fatalf("expected a vector, got %#v", elems[2])
	}
	wantReversed := []string{"1", "3", "2", "4"}
	for i, w := range wantReversed {
		n, ok := reversed.Elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("reversed[%d]: expected %s, got %#v", i, w, reversed.Elems[i])
		}
	}
}

func TestVectorConcatenate(t *testing.T) {
	v := evalOne(t, `(vector-concatenate (list (vector 1 2) (vector 3) (vector 4 5)))`)
	vec, ok := v.(*value.Vector)
	if !ok || len(vec.Elems) != 5 {
		t.Fatalf("expected a 5-element vector, got %#v", v)
	}
	want := []string{"1", "2", "3", "4", "5"}
	for i, w := range want {
		n, ok := vec.Elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("element %d: expected %s, got %#v", i, w, vec.Elems[i])
		}
	}
}
