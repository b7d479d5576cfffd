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

func TestFold(t *testing.T) {
	v := evalOne(t, `(fold + 0 '(1 2 3 4 5))`)
	n, ok := v.(*value.Number)
	if !ok || n.String() != "15" {
		t.Fatalf("expected 15, got %#v", v)
	}
}

func TestTakeWhileDropWhile(t *testing.T) {
	v := evalOne(t, `
		(define (even? x) (= 0 (modulo x 2)))
		(list (take-while even? '(2 4 6 7 8)) (drop-while even? '(2 4 6 7 8)))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
}

func TestIota(t *testing.T) {
	v := evalOne(t, `(iota 5)`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 5 {
		t.Fatalf("expected 5 elements, got %#v", v)
	}
	n, ok := elems[4].(*value.Number)
	if !ok || n.String() != "4" {
		t.Fatalf("expected last element 4, got %#v", elems[4])
	}
}

func TestInteractionEnvironment(t *testing.T) {
	v := evalOne(t, `(interaction-environment)`)
	if _, ok := v.(*value.EnvironmentHandle); !ok {
		t.Fatalf("expected an EnvironmentHandle, got %#v", v)
	}
}
