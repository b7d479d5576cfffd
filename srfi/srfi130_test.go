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

func TestStringCursorWalk(t *testing.T) {
	v := evalOne(t, `
		(define s "abc")
		(define start (string-cursor-start s))
		(define end (string-cursor-end s))
		(list (string-cursor-ref start)
		      (string-cursor-ref (string-cursor-next start))
		      (string-cursor=? (string-cursor-next (string-cursor-next (string-cursor-next start))) end))
	`)
	elems, ok := value.ToSlice(v)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", v)
	}
	if c, ok := elems[0].(value.Character); !ok || rune(c) != 'a' {
		t.Fatalf("expected #\\a, got %#v", elems[0])
	}
	if c, ok := elems[1].(value.Character); !ok || rune(c) != 'b' {
		t.Fatalf("expected #\\b, got %#v", elems[1])
	}
	if b, ok := elems[2].(value.Boolean); !ok || !bool(b) {
		t.Fatalf("expected cursor at end, got %#v", elems[2])
	}
}

func TestSubstringCursors(t *testing.T) {
	v := evalOne(t, `
		(define s "hello world")
		(define start (string-cursor-next (string-cursor-next (string-cursor-next (string-cursor-next (string-cursor-next (string-cursor-start s)))))))
		(substring/cursors start (string-cursor-end s))
	`)
	str, ok := v.(*value.String)
	if !ok || str.String() != " world" {
		t.Fatalf("expected \" world\", got %#v", v)
	}
}

func TestStringFoldcase(t *testing.T) {
	v := evalOne(t, `(string-foldcase "StraBe")`)
	str, ok := v.(*value.String)
	if !ok {
		t.Fatalf("expected a string, got %#v", v)
	}
	if str.String() == "StraBe" {
		t.Fatalf("expected case folding to change the string, got %q", str.String())
	}
}

func TestCharFoldcase(t *testing.T) {
	v := evalOne(t, `(char-foldcase #\A)`)
	c, ok := v.(value.Character)
	if !ok || rune(c) != 'a' {
		t.Fatalf("expected #\\a, got %#v", v)
	}
}
