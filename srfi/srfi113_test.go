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

func TestSetBasics(t *testing.T) {
	v := evalOne(t, `
		(define s (set 1 2 3))
		(set-adjoin! s 3 4)
		(list (set-size s) (set-contains? s 4) (set-contains? s 99))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	n, ok := elems[0].(*value.Number)
	if !ok || n.String() != "4" {
		t.Fatalf("expected set-size 4, got %#v", elems[0])
	}
	if b, ok := elems[1].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected set-contains? s 4 => #t, got %#v", elems[1])
	}
	if b, ok := elems[2].(value.Boolean); !ok || bool(b) {
		t.Fatalf("expected set-contains? s 99 => #f, got %#v", elems[2])
	}
}

func TestSetDuplicatesCollapse(t *testing.T) {
	v := evalOne(t, `(set-size (list->set '(1 1 2 2 3)))`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "3" {
		t.Fatalf("expected 3 distinct elements, got %#v", v)
	}
}

func TestSetUnionIntersectionDifference(t *testing.T) {
	v := evalOne(t, `
		(define a (set 1 2 3))
		(define b (set 2 3 4))
		(list (set-size (set-union a b))
		      (set-size (set-intersection a b))
		      (set-size (set-difference a b)))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	want := []string{"4", "2", "1"}
	for i, w := range want {
		n, ok := elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("element %d: expected %s, got %#v", i, w, elems[i])
		}
	}
}

func TestBagCounts(t *testing.T) {
	v := evalOne(t, `
		(define b (bag 1 1 2))
		(bag-adjoin! b 1)
		(list (bag-count b 1) (bag-count b 2) (bag-size b))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	want := []string{"3", "1", "4"}
	for i, w := range want {
		n, ok := elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("element %d: expected %s, got %#v", i, w, elems[i])
		}
	}
}
