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

func TestHashTable(t *testing.T) {
	v := evalOne(t, `
		(define h (make-hash-table))
		(hash-table-set! h 'a 1)
		(hash-table-set! h 'b 2)
		(hash-table-update! h 'a (lambda (x) (+ x 10)) (lambda () 0))
		(list (hash-table-ref h 'a (lambda () 'missing))
		      (hash-table-ref/default h 'c 'none)
		      (hash-table-size h))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	if n, ok := elems[0].(*value.Number); !ok || n.String() != "11" {
		t.Fatalf("expected updated a = 11, got %#v", elems[0])
	}
	if s, ok := elems[1].(*value.Symbol); !ok || s.Name != "none" {
		t.Fatalf("expected default 'none for missing key, got %#v", elems[1])
	}
	if n, ok := elems[2].(*value.Number); !ok || n.String() != "2" {
		t.Fatalf("expected size 2, got %#v", elems[2])
	}
}

func TestBox(t *testing.T) {
	v := evalOne(t, `
		(define b (box 1))
		(set-box! b (+ (unbox b) 41))
		(unbox b)
	`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "42" {
		t.Fatalf("expected 42, got %#v", v)
	}
}
