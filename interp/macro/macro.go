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

// Package macro implements syntax-rules (spec.md §4.10, Macro Expander):
// pattern matching with ellipsis (including nested ellipses), template
// instantiation, and a registry that shadows like nested lexical scopes
// so let-syntax/letrec-syntax can locally override a keyword the same
// way a nested env.Frame shadows a variable.
package macro

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/ast"
)

// Expander implements interp/eval.Expander. Its registry is keyed by the
// env.Frame a define-syntax/let-syntax was evaluated in, overlaying the
// frame chain the exact way env.Frame.Parent already does for ordinary
// bindings: a lookup walks outward from the use site's frame until it
// finds a frame with that keyword registered.
type Expander struct {
	byFrame map[env.Frame]map[string]*Transformer
}

func NewExpander() *Expander {
	return &Expander{byFrame: map[env.Frame]map[string]*Transformer{}}
}

func (x *Expander) DefineSyntax(name string, transformer ast.Expr, e env.Frame) error {
	t, err := parseSyntaxRules(transformer)
	if err != nil {
		return err
	}
	m := x.byFrame[e]
	if m == nil {
		m = map[string]*Transformer{}
		x.byFrame[e] = m
	}
	m[name] = t
	return nil
}

func (x *Expander) lookup(name string, e env.Frame) *Transformer {
	for f := e; f != nil; f = f.Parent() {
		if m, ok := x.byFrame[f]; ok {
			if t, ok := m[name]; ok {
				return t
			}
		}
	}
	return nil
}

func (x *Expander) IsMacro(name string, e env.Frame) bool {
	return x.lookup(name, e) != nil
}

func (x *Expander) Expand(name string, use *ast.List, e env.Frame) (ast.Expr, error) {
	t := x.lookup(name, e)
	if t == nil {
		return nil, errors.New(errors.Macro, use.Sp, "unbound syntax keyword: %s", name)
	}
	return t.Expand(use)
}

// Transformer is one compiled syntax-rules form.
type Transformer struct {
	Ellipsis string
	Literals map[string]bool
	Rules    []rule
}

type rule struct {
	Pattern  ast.Expr
	Template ast.Expr
}

func parseSyntaxRules(e ast.Expr) (*Transformer, error) {
	l, ok := e.(*ast.List)
	if !ok || len(l.Elems) < 2 {
		return nil, errors.New(errors.Syntax, e.Span(), "syntax-rules: malformed transformer")
	}
	head, ok := ast.HeadSymbol(l)
	if !ok || head != "syntax-rules" {
		return nil, errors.New(errors.Syntax, e.Span(), "only syntax-rules transformers are supported")
	}
	rest := l.Elems[1:]
	ellipsis := "..."
	if sym, ok := rest[0].(*ast.Variable); ok {
		ellipsis = sym.Name
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, errors.New(errors.Syntax, e.Span(), "syntax-rules: missing literal list")
	}
	litList, ok := rest[0].(*ast.List)
	if !ok {
		return nil, errors.New(errors.Syntax, e.Span(), "syntax-rules: literals must be a list")
	}
	literals := map[string]bool{}
	for _, le := range litList.Elems {
		v, ok := le.(*ast.Variable)
		if !ok {
			return nil, errors.New(errors.Syntax, le.Span(), "syntax-rules: literal must be an identifier")
		}
		literals[v.Name] = true
	}
	t := &Transformer{Ellipsis: ellipsis, Literals: literals}
	for _, re := range rest[1:] {
		rl, ok := re.(*ast.List)
		if !ok || len(rl.Elems) != 2 {
			return nil, errors.New(errors.Syntax, re.Span(), "syntax-rules: malformed rule")
		}
		t.Rules = append(t.Rules, rule{Pattern: rl.Elems[0], Template: rl.Elems[1]})
	}
	return t, nil
}

// Expand finds the first rule whose pattern matches use and instantiates
// its template; syntax-rules requires at least one to match, same as a
// cond with no matching clause being an error in this position.
func (t *Transformer) Expand(use *ast.List) (ast.Expr, error) {
	for _, r := range t.Rules {
		b := newBindings()
		// The pattern's own leading keyword position is never matched
		// against the use's keyword (R7RS leaves it unconstrained); skip
		// element 0 of both sides.
		patElems, patRest, patTail := splitList(r.Pattern)
		if len(patElems) == 0 {
			continue
		}
		ok := matchSeq(patElems[1:], patRest, patTail, use.Elems[1:], nil, t, b)
		if !ok {
			continue
		}
		return instantiate(r.Template, t, b, nextColor()), nil
	}
	return nil, errors.New(errors.Macro, use.Sp, "no matching syntax-rules clause")
}

// splitList decomposes a pattern/use expression shaped like a list or
// dotted list into its fixed elements and an optional tail pattern/expr.
func splitList(e ast.Expr) (elems []ast.Expr, hasTail bool, tail ast.Expr) {
	switch x := e.(type) {
	case *ast.List:
		return x.Elems, false, nil
	case *ast.DottedList:
		return x.Elems, true, x.Tail
	default:
		return nil, true, e
	}
}

type binding struct {
	leaf ast.Expr   // depth 0
	seq  []*binding // depth > 0
}

type bindings struct {
	vars map[string]*binding
}

func newBindings() *bindings { return &bindings{vars: map[string]*binding{}} }

func (b *bindings) set(name string, v *binding) { b.vars[name] = v }
