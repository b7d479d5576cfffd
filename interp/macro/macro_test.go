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

package macro

import (
	"testing"

	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/lang/reader"
)

func readOne(t *testing.T, src string) ast.Expr {
	t.Helper()
	exprs, err := reader.ReadAll(src, "test")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected exactly one datum, got %d", len(exprs))
	}
	return exprs[0]
}

func TestSwapMacro(t *testing.T) {
	x := NewExpander()
	frame := env.NewGlobal()
	transformer := readOne(t, `(syntax-rules () ((_ a b) (list b a)))`)
	if err := x.DefineSyntax("swap", transformer, frame); err != nil {
		t.Fatalf("DefineSyntax: %v", err)
	}
	if !x.IsMacro("swap", frame) {
		t.Fatalf("expected swap to be registered")
	}
	use := readOne(t, `(swap 1 2)`).(*ast.List)
	expanded, err := x.Expand("swap", use, frame)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	l, ok := expanded.(*ast.List)
	if !ok || len(l.Elems) != 3 {
		t.Fatalf("expected (list 2 1), got %#v", expanded)
	}
}

func TestEllipsisMacro(t *testing.T) {
	x := NewExpander()
	frame := env.NewGlobal()
	transformer := readOne(t, `(syntax-rules () ((_ a ...) (list a ...)))`)
	if err := x.DefineSyntax("my-list", transformer, frame); err != nil {
		t.Fatalf("DefineSyntax: %v", err)
	}
	use := readOne(t, `(my-list 1 2 3)`).(*ast.List)
	expanded, err := x.Expand("my-list", use, frame)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	l, ok := expanded.(*ast.List)
	if !ok || len(l.Elems) != 4 {
		t.Fatalf("expected (list 1 2 3), got %#v", expanded)
	}
}

func TestHygienicRename(t *testing.T) {
	x := NewExpander()
	frame := env.NewGlobal()
	transformer := readOne(t, `(syntax-rules () ((_ a b) (let ((t a)) (set! a b) (set! b t))))`)
	if err := x.DefineSyntax("swap!", transformer, frame); err != nil {
		t.Fatalf("DefineSyntax: %v", err)
	}
	use := readOne(t, `(swap! x y)`).(*ast.List)
	expanded, err := x.Expand("swap!", use, frame)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	let, ok := expanded.(*ast.List)
	if !ok || len(let.Elems) != 4 {
		t.Fatalf("expected (let ((t%%N a)) (set! a b) (set! b t%%N)), got %#v", expanded)
	}
	bindings, ok := let.Elems[1].(*ast.List)
	if !ok || len(bindings.Elems) != 1 {
		t.Fatalf("expected one let binding, got %#v", let.Elems[1])
	}
	binding, ok := bindings.Elems[0].(*ast.List)
	if !ok || len(binding.Elems) != 2 {
		t.Fatalf("expected (name init) binding, got %#v", bindings.Elems[0])
	}
	boundName, ok := binding.Elems[0].(*ast.Variable)
	if !ok {
		t.Fatalf("expected an identifier in binding position, got %#v", binding.Elems[0])
	}
	if boundName.Name == "t" {
		t.Fatalf("template-introduced \"t\" must be hygiene-renamed, got literal %q", boundName.Name)
	}
	if _, marked := env.StripMark(boundName.Name); !marked {
		t.Fatalf("expected a marked identifier, got %q", boundName.Name)
	}
}

func TestNestedEllipsisMacro(t *testing.T) {
	x := NewExpander()
	frame := env.NewGlobal()
	transformer := readOne(t, `(syntax-rules () ((_ (a b ...) ...) (list (list a b ...) ...)))`)
	if err := x.DefineSyntax("flatten-ish", transformer, frame); err != nil {
		t.Fatalf("DefineSyntax: %v", err)
	}
	use := readOne(t, `(flatten-ish (1 2 3) (4 5))`).(*ast.List)
	expanded, err := x.Expand("flatten-ish", use, frame)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	l, ok := expanded.(*ast.List)
	if !ok || len(l.Elems) != 3 {
		t.Fatalf("expected (list (list 1 2 3) (list 4 5)), got %#v", expanded)
	}
}
