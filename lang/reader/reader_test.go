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

package reader

import (
	"testing"

	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/value"
)

func TestReadAllAtoms(t *testing.T) {
	exprs, err := ReadAll(`42 3.5 1/2 "hi" #t #f #\a foo`, "test")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(exprs) != 8 {
		t.Fatalf("expected 8 datums, got %d", len(exprs))
	}
	lit, ok := exprs[0].(*ast.Literal)
	if !ok || lit.Kind != ast.LitNumber {
		t.Fatalf("expected number literal, got %#v", exprs[0])
	}
	n := lit.Value.(*value.Number)
	if n.String() != "42" {
		t.Fatalf("expected 42, got %s", n.String())
	}
}

func TestReadAllList(t *testing.T) {
	exprs, err := ReadAll(`(+ 1 2)`, "test")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected 1 datum, got %d", len(exprs))
	}
	l, ok := exprs[0].(*ast.List)
	if !ok || len(l.Elems) != 3 {
		t.Fatalf("expected 3-element list, got %#v", exprs[0])
	}
}

func TestReadDottedList(t *testing.T) {
	exprs, err := ReadAll(`(a . b)`, "test")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	dl, ok := exprs[0].(*ast.DottedList)
	if !ok {
		t.Fatalf("expected dotted list, got %#v", exprs[0])
	}
	if _, ok := dl.Tail.(*ast.Variable); !ok {
		t.Fatalf("expected tail to be a variable")
	}
}

func TestReadQuoteForms(t *testing.T) {
	exprs, err := ReadAll("'a `(,b ,@c)", "test")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if _, ok := exprs[0].(*ast.Quote); !ok {
		t.Fatalf("expected quote, got %#v", exprs[0])
	}
	qq, ok := exprs[1].(*ast.Quasiquote)
	if !ok {
		t.Fatalf("expected quasiquote, got %#v", exprs[1])
	}
	l, ok := qq.Expr.(*ast.List)
	if !ok || len(l.Elems) != 2 {
		t.Fatalf("expected 2-element list inside quasiquote")
	}
	if _, ok := l.Elems[0].(*ast.Unquote); !ok {
		t.Fatalf("expected unquote as first element")
	}
	if _, ok := l.Elems[1].(*ast.UnquoteSplicing); !ok {
		t.Fatalf("expected unquote-splicing as second element")
	}
}

func TestReadVectorAndComments(t *testing.T) {
	exprs, err := ReadAll("#(1 2 3) ; trailing comment\n#;(ignored) 99 #| block |# 100", "test")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(exprs) != 3 {
		t.Fatalf("expected 3 datums (vector, 99, 100), got %d", len(exprs))
	}
	if _, ok := exprs[0].(*ast.Vector); !ok {
		t.Fatalf("expected vector literal")
	}
}

func TestParseErrorRecovery(t *testing.T) {
	_, err := ReadAll(`(+ 1 2`, "test")
	if err == nil {
		t.Fatalf("expected error for unterminated list")
	}
}
