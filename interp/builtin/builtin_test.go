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

package builtin_test

import (
	"testing"

	"github.com/wisteria-scheme/wisteria/interp"
	"github.com/wisteria-scheme/wisteria/value"
)

func evalOne(t *testing.T, src string) value.Value {
	t.Helper()
	i := interp.New()
	v, err := i.EvalSource(src, "test")
	if err != nil {
		t.Fatalf("EvalSource(%q): %v", src, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	cases := map[string]string{
		`(+ 1 2 3)`:          "6",
		`(- 10 1 2)`:         "7",
		`(* 2 3 4)`:          "24",
		`(/ 1 2)`:            "1/2",
		`(quotient 7 2)`:     "3",
		`(remainder 7 2)`:    "1",
		`(modulo -7 2)`:      "1",
		`(abs -5)`:           "5",
		`(min 3 1 2)`:        "1",
		`(max 3 1 2)`:        "3",
	}
	for src, want := range cases {
		v := evalOne(t, src)
		n, ok := v.(*value.Number)
		if !ok {
			t.Fatalf("%s: expected number, got %#v", src, v)
		}
		if n.String() != want {
			t.Fatalf("%s: expected %s, got %s", src, want, n.String())
		}
	}
}

func TestComparisons(t *testing.T) {
	v := evalOne(t, `(list (< 1 2 3) (> 3 2 1) (= 1 1) (<= 1 1 2) (>= 2 2 1))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 5 {
		t.Fatalf("expected 5 results, got %#v", v)
	}
	for i, e := range elems {
		if b, ok := e.(value.Boolean); !ok || !bool(b) {
			t.Fatalf("result %d expected #t, got %#v", i, e)
		}
	}
}

func TestPairsAndLists(t *testing.T) {
	v := evalOne(t, `(append (list 1 2) (list 3 4))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 4 {
		t.Fatalf("expected 4-element list, got %#v", v)
	}
	v = evalOne(t, `(cadr (list 1 2 3))`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "2" {
		t.Fatalf("expected 2, got %#v", v)
	}
}

func TestStrings(t *testing.T) {
	v := evalOne(t, `(string-append "foo" "bar")`)
	s, ok := v.(*value.String)
	if !ok || s.String() != "foobar" {
		t.Fatalf("expected foobar, got %#v", v)
	}
	v = evalOne(t, `(string->list "ab")`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2 chars, got %#v", v)
	}
}

func TestVectors(t *testing.T) {
	v := evalOne(t, `
		(define v (make-vector 3 0))
		(vector-set! v 1 99)
		(vector-ref v 1)
	`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "99" {
		t.Fatalf("expected 99, got %#v", v)
	}
}

func TestApplyMapForEach(t *testing.T) {
	v := evalOne(t, `(apply + (list 1 2 3))`)
	if n, ok := v.(*value.Number); !ok || n.String() != "6" {
		t.Fatalf("expected 6, got %#v", v)
	}
	v = evalOne(t, `(map (lambda (x) (* x x)) (list 1 2 3))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	if n, ok := elems[2].(*value.Number); !ok || n.String() != "9" {
		t.Fatalf("expected 9, got %#v", elems[2])
	}
}

func TestErrorObject(t *testing.T) {
	v := evalOne(t, `
		(guard (e (#t (list (error-object? e) (error-object-message e))))
		  (raise (error "boom" 1 2)))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	if b, ok := elems[0].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected error-object? #t, got %#v", elems[0])
	}
	if s, ok := elems[1].(*value.String); !ok || s.String() != "boom" {
		t.Fatalf("expected message boom, got %#v", elems[1])
	}
}

func TestStringPorts(t *testing.T) {
	v := evalOne(t, `
		(define p (open-output-string))
		(write-string "hi" p)
		(get-output-string p)
	`)
	s, ok := v.(*value.String)
	if !ok || s.String() != "hi" {
		t.Fatalf("expected hi, got %#v", v)
	}
}
