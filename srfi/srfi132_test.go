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

func TestListSort(t *testing.T) {
	v := evalOne(t, `(list-sort < '(3 1 4 1 5 9 2 6))`)
	elems, ok := value.ToSlice(v)
	if !ok {
		t.Fatalf("expected a list, got %#v", v)
	}
	want := []string{"1", "1", "2", "3", "4", "5", "6", "9"}
	if len(elems) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(elems))
	}
	for i, w := range want {
		n, ok := elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("element %d: expected %s, got %#v", i, w, elems[i])
		}
	}
}

func TestVectorSortBang(t *testing.T) {
	v := evalOne(t, `
		(define vec (vector 5 3 1 4 2))
		(vector-sort! < vec)
		vec
	`)
	vec, ok := v.(*value.Vector)
	if !ok {
		t.Fatalf("expected a vector, got %#v", v)
	}
	want := []string{"1", "2", "3", "4", "5"}
	for i, w := range want {
		n, ok := vec.Elems[i].(*value.Number)
		if !ok || n.String() != w {
			t.Fatalf("element %d: expected %s, got %#v", i, w, vec.Elems[i])
		}
	}
}

func TestListSortedPredicate(t *testing.T) {
	v := evalOne(t, `(list (list-sorted? < '(1 2 3)) (list-sorted? < '(3 2 1)))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	if b, ok := elems[0].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected (1 2 3) sorted, got %#v", elems[0])
	}
	if b, ok := elems[1].(value.Boolean); !ok || bool(b) {
		t.Fatalf("expected (3 2 1) not sorted, got %#v", elems[1])
	}
}
