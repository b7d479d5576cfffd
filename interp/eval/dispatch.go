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
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// dispatch performs exactly one step of evaluation: atomic forms
// (literals, variables, quote) resolve immediately to a value; compound
// forms either push a Frame and descend into a sub-expression, or — for
// a tail application — produce the callee's body as the next expression
// with no push at all.
func (m *Machine) dispatch(expr ast.Expr, e env.Frame) (Outcome, error) {
	switch x := expr.(type) {
	case *ast.Literal:
		if v, ok := x.Value.(value.Value); ok {
			return done(v)
		}
		return done(value.Undefined{})

	case *ast.Variable:
		v, ok := e.Get(x.Name)
		if !ok {
			return doneErr(errors.Undefined(x.Sp, x.Name))
		}
		return done(v)

	case *ast.Quote:
		v, err := ToValue(x.Expr)
		if err != nil {
			return Outcome{}, err
		}
		return done(v)

	case *ast.Quasiquote:
		return m.dispatchQuasiquote(x.Expr, 1, e)

	case *ast.Vector:
		v, err := ToValue(x)
		if err != nil {
			return Outcome{}, err
		}
		return done(v)

	case *ast.DottedList:
		return doneErr(errors.New(errors.Syntax, x.Sp, "improper list is not a valid expression"))

	case *ast.Unquote, *ast.UnquoteSplicing:
		return doneErr(errors.New(errors.Syntax, expr.Span(), "unquote outside quasiquote"))

	case *ast.List:
		return m.dispatchList(x, e)

	default:
		return doneErr(errors.New(errors.Syntax, expr.Span(), "unrecognized expression"))
	}
}

func (m *Machine) dispatchList(l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) == 0 {
		return done(value.Nil{})
	}

	if name, ok := ast.HeadSymbol(l); ok {
		formName := name
		fn, isForm := specialForms[formName]
		if !isForm {
			// A macro template that introduces a keyword use (e.g. a
			// my-if macro whose template is (cond ...)) had that keyword
			// hygiene-marked along with every other template identifier
			// (interp/macro); special-form keywords are never subject to
			// use-site shadowing in this evaluator (see the comment
			// below), so the mark is stripped before the lookup instead
			// of being a real binding distinction.
			if base, marked := env.StripMark(formName); marked {
				fn, isForm = specialForms[base]
			}
		}
		if isForm {
			// A local binding of the same name as a special form keyword
			// shadows the keyword, per R7RS syntactic-keyword scoping —
			// but our flat global syntax environment does not track
			// per-scope keyword shadowing, so the form names below are
			// reserved. This matches spec.md's non-goal of a full module/
			// import system with shadowable syntactic keywords.
			return fn(m, l, e)
		}
		if m.Macros != nil {
			macroName := name
			if !m.Macros.IsMacro(macroName, e) {
				if base, marked := env.StripMark(macroName); marked && m.Macros.IsMacro(base, e) {
					macroName = base
				}
			}
			if m.Macros.IsMacro(macroName, e) {
				expanded, err := m.Macros.Expand(macroName, l, e)
				if err != nil {
					return Outcome{}, err
				}
				return step(expanded, e)
			}
		}
	}

	// Ordinary application: evaluate the operator, then each operand
	// left-to-right, then apply. Pushing the args-collection frame here
	// means the *application* (once all operands are ready) happens in
	// whatever position this dispatch call was itself reached from — tail
	// if this List was in tail position, non-tail otherwise — without
	// dispatch needing to know which.
	return stepPush(l.Elems[0], e, &collectArgsFrame{
		remaining: l.Elems[1:],
		evaluated: nil,
		env:       e,
		span:      l.Sp,
	})
}

// collectArgsFrame receives the callee value, then each argument value in
// turn, finally handing off to applyOutcome once all are collected.
type collectArgsFrame struct {
	callee    value.Value
	haveCalee bool
	remaining []ast.Expr
	evaluated []value.Value
	env       env.Frame
	span      token.Span
}

func (f *collectArgsFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	callee, evaluated := f.callee, f.evaluated
	if !f.haveCalee {
		callee = v
	} else {
		evaluated = append(evaluated[:len(evaluated):len(evaluated)], v)
	}
	if len(f.remaining) == 0 {
		return m.applyOutcome(callee, evaluated, f.env, f.span)
	}
	next := f.remaining[0]
	nf := &collectArgsFrame{
		callee:    callee,
		haveCalee: true,
		remaining: f.remaining[1:],
		evaluated: evaluated,
		env:       f.env,
		span:      f.span,
	}
	return stepPush(next, f.env, nf)
}
