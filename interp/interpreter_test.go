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

package interp

import (
	"testing"

	"github.com/wisteria-scheme/wisteria/value"
)

func evalOne(t *testing.T, src string) value.Value {
	t.Helper()
	i := New()
	v, err := i.EvalSource(src, "test")
	if err != nil {
		t.Fatalf("EvalSource(%q): %v", src, err)
	}
	return v
}

func TestArithmeticAndTailLoop(t *testing.T) {
	v := evalOne(t, `
		(define (loop n acc)
		  (if (= n 0) acc (loop (- n 1) (+ acc 1))))
		(loop 100000 0)
	`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "100000" {
		t.Fatalf("expected 100000, got %#v", v)
	}
}

func TestFactorial(t *testing.T) {
	v := evalOne(t, `
		(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 10)
	`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "3628800" {
		t.Fatalf("expected 3628800, got %#v", v)
	}
}

func TestPairMutationAliasing(t *testing.T) {
	v := evalOne(t, `
		(define a (list 1 2 3))
		(define b a)
		(set-car! b 99)
		(car a)
	`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "99" {
		t.Fatalf("expected mutation through aliasing to be visible, got %#v", v)
	}
}

func TestDefineRecordType(t *testing.T) {
	v := evalOne(t, `
		(define-record-type point
		  (make-point x y)
		  point?
		  (x point-x set-point-x!)
		  (y point-y))
		(define p (make-point 3 4))
		(set-point-x! p 10)
		(list (point? p) (point-x p) (point-y p))
	`)
	l, ok := v.(*value.Pair)
	if !ok {
		t.Fatalf("expected a pair, got %#v", v)
	}
	elems, ok := value.ToSlice(l)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	if b, ok := elems[0].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected point? to be true, got %#v", elems[0])
	}
	if n, ok := elems[1].(*value.Number); !ok || n.String() != "10" {
		t.Fatalf("expected mutated x = 10, got %#v", elems[1])
	}
}

func TestSyntaxRulesCond(t *testing.T) {
	v := evalOne(t, `
		(define-syntax my-if
		  (syntax-rules ()
		    ((_ c t e) (cond (c t) (else e)))))
		(my-if #t 'yes 'no)
	`)
	s, ok := v.(*value.Symbol)
	if !ok || s.Name != "yes" {
		t.Fatalf("expected 'yes, got %#v", v)
	}
}

func TestMacroHygiene(t *testing.T) {
	v := evalOne(t, `
		(define-syntax swap!
		  (syntax-rules ()
		    ((_ a b) (let ((t a)) (set! a b) (set! b t)))))
		(let ((t 1) (x 2))
		  (swap! t x)
		  (list t x))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	if n, ok := elems[0].(*value.Number); !ok || n.String() != "2" {
		t.Fatalf("expected t = 2 (not captured by swap!'s own t), got %#v", elems[0])
	}
	if n, ok := elems[1].(*value.Number); !ok || n.String() != "1" {
		t.Fatalf("expected x = 1, got %#v", elems[1])
	}
}

func TestPromiseMemoization(t *testing.T) {
	v := evalOne(t, `
		(define calls 0)
		(define p (delay (begin (set! calls (+ calls 1)) calls)))
		(force p)
		(force p)
		calls
	`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "1" {
		t.Fatalf("expected promise body to run exactly once, got %#v", v)
	}
}
