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

func expectInt(t *testing.T, v value.Value, want string) {
	t.Helper()
	n, ok := v.(*value.Number)
	if !ok || n.String() != want {
		t.Fatalf("expected %s, got %#v", want, v)
	}
}

func TestFloorCeilingQuotientRemainder(t *testing.T) {
	v := evalOne(t, `(list (floor-quotient 7 2) (floor-remainder 7 2) (floor-quotient -7 2) (floor-remainder -7 2))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 4 {
		t.Fatalf("expected 4-element list, got %#v", v)
	}
	expectInt(t, elems[0], "3")
	expectInt(t, elems[1], "1")
	expectInt(t, elems[2], "-4")
	expectInt(t, elems[3], "1")
}

func TestTruncateDivisionMatchesGoSemantics(t *testing.T) {
	v := evalOne(t, `(list (truncate-quotient -7 2) (truncate-remainder -7 2))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	expectInt(t, elems[0], "-3")
	expectInt(t, elems[1], "-1")
}

func TestEuclideanDivisionRemainderNonNegative(t *testing.T) {
	v := evalOne(t, `(list (euclidean-quotient -7 2) (euclidean-remainder -7 2) (euclidean-quotient -7 -2) (euclidean-remainder -7 -2))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 4 {
		t.Fatalf("expected 4-element list, got %#v", v)
	}
	expectInt(t, elems[0], "-4")
	expectInt(t, elems[1], "1")
	expectInt(t, elems[2], "4")
	expectInt(t, elems[3], "1")
}

func TestBalancedDivisionRemainderBounded(t *testing.T) {
	v := evalOne(t, `(list (balanced-quotient 8 3) (balanced-remainder 8 3))`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	// 8 = 3*3 + (-1), remainder in (-1.5, 1.5] rather than euclidean's [0, 3)
	expectInt(t, elems[0], "3")
	expectInt(t, elems[1], "-1")
}

func TestDivisionFamilyTwoValued(t *testing.T) {
	v := evalOne(t, `(call-with-values (lambda () (floor/ 7 2)) list)`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2-element list, got %#v", v)
	}
	expectInt(t, elems[0], "3")
	expectInt(t, elems[1], "1")
}
