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

package eval

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/value"
)

func formDefineSyntax(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 3 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-syntax: expected (define-syntax name transformer)")
	}
	name, ok := symbolName(l.Elems[1])
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-syntax: name must be an identifier")
	}
	if m.Macros == nil {
		return Outcome{}, errors.New(errors.Macro, l.Sp, "define-syntax: no macro expander installed")
	}
	if err := m.Macros.DefineSyntax(name, l.Elems[2], e); err != nil {
		return Outcome{}, err
	}
	return done(value.Undefined{})
}

// formLetSyntax covers both let-syntax and letrec-syntax, which are not
// distinguished here: both install their keywords in a fresh child frame
// of e and evaluate body as begin in that frame, so the keywords shadow
// outer ones only inside the body (see DESIGN.md).
func formLetSyntax(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "let-syntax: malformed form")
	}
	bindings, ok := l.Elems[1].(*ast.List)
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "let-syntax: malformed bindings")
	}
	if m.Macros == nil {
		return Outcome{}, errors.New(errors.Macro, l.Sp, "let-syntax: no macro expander installed")
	}
	scope, err := e.Extend(nil, "", nil)
	if err != nil {
		return Outcome{}, err
	}
	for _, be := range bindings.Elems {
		bl, ok := be.(*ast.List)
		if !ok || len(bl.Elems) != 2 {
			return Outcome{}, errors.New(errors.Syntax, be.Span(), "let-syntax: malformed binding")
		}
		name, ok := symbolName(bl.Elems[0])
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, be.Span(), "let-syntax: keyword must be an identifier")
		}
		if err := m.Macros.DefineSyntax(name, bl.Elems[1], scope); err != nil {
			return Outcome{}, err
		}
	}
	return evalBody(l.Elems[2:], scope)
}
