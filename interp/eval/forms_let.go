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

// This file desugars the binding forms and conditionals that spec.md
// §4.5.2 lists alongside the evaluator's irreducible core (if, lambda,
// begin, set!, quote, application) into that core. Desugaring happens
// once per dispatch of the surface form, by building a fresh internal ast
// tree and handing it back to the same dispatch loop via step — the
// re-entry costs a little host-stack depth proportional to syntactic
// nesting, never to loop iteration, so it does not threaten the O(1)
// tail-loop guarantee.

func sym(name string) *ast.Variable { return ast.NewVariable(token.NoSpan, name) }

func lit(v value.Value) *ast.Literal { return ast.NewLiteral(token.NoSpan, ast.LitBoolean, v, "") }

func listOf(elems ...ast.Expr) *ast.List { return ast.NewList(token.NoSpan, elems) }

// --- cond ---

func formCond(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	desugared, err := desugarCond(l.Elems[1:])
	if err != nil {
		return Outcome{}, err
	}
	return step(desugared, e)
}

func desugarCond(clauses []ast.Expr) (ast.Expr, error) {
	if len(clauses) == 0 {
		return lit(value.Undefined{}), nil
	}
	clause, ok := clauses[0].(*ast.List)
	if !ok || len(clause.Elems) == 0 {
		return nil, errors.New(errors.Syntax, clauses[0].Span(), "cond: malformed clause")
	}

	rest, err := desugarCond(clauses[1:])
	if err != nil {
		return nil, err
	}

	if isAuxKeyword(clause.Elems[0], "else") {
		return listOf(append([]ast.Expr{sym("begin")}, clause.Elems[1:]...)...), nil
	}

	test := clause.Elems[0]
	if len(clause.Elems) >= 2 {
		if isAuxKeyword(clause.Elems[1], "=>") {
			proc := clause.Elems[2]
			return listOf(
				sym("let"),
				listOf(listOf(sym(" cond-test"), test)),
				listOf(sym("if"), sym(" cond-test"), listOf(proc, sym(" cond-test")), rest),
			), nil
		}
	}
	if len(clause.Elems) == 1 {
		return listOf(
			sym("let"),
			listOf(listOf(sym(" cond-test"), test)),
			listOf(sym("if"), sym(" cond-test"), sym(" cond-test"), rest),
		), nil
	}
	body := append([]ast.Expr{sym("begin")}, clause.Elems[1:]...)
	return listOf(sym("if"), test, listOf(body...), rest), nil
}

// --- case ---

func formCase(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "case: missing key expression")
	}
	desugaredClauses, err := desugarCase(l.Elems[2:])
	if err != nil {
		return Outcome{}, err
	}
	form := listOf(
		sym("let"),
		listOf(listOf(sym(" case-key"), l.Elems[1])),
		desugaredClauses,
	)
	return step(form, e)
}

func desugarCase(clauses []ast.Expr) (ast.Expr, error) {
	if len(clauses) == 0 {
		return lit(value.Undefined{}), nil
	}
	clause, ok := clauses[0].(*ast.List)
	if !ok || len(clause.Elems) == 0 {
		return nil, errors.New(errors.Syntax, clauses[0].Span(), "case: malformed clause")
	}
	rest, err := desugarCase(clauses[1:])
	if err != nil {
		return nil, err
	}

	isElse := isAuxKeyword(clause.Elems[0], "else")

	bodyElems := clause.Elems[1:]
	var body ast.Expr
	if len(bodyElems) >= 1 {
		if isAuxKeyword(bodyElems[0], "=>") {
			body = listOf(bodyElems[1], sym(" case-key"))
		}
	}
	if body == nil {
		body = listOf(append([]ast.Expr{sym("begin")}, bodyElems...)...)
	}

	if isElse {
		return body, nil
	}

	datumsExpr := listOf(append([]ast.Expr{sym("quote")}, clause.Elems[0])...)
	test := listOf(sym("memv"), sym(" case-key"), datumsExpr)
	return listOf(sym("if"), test, body, rest), nil
}

// --- let / let* / letrec / letrec* / named let ---

func formLet(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "let: malformed form")
	}
	if name, ok := symbolName(l.Elems[1]); ok {
		if len(l.Elems) < 3 {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "let: malformed named let")
		}
		bindings, ok := l.Elems[2].(*ast.List)
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "let: malformed bindings")
		}
		vars, inits, err := splitBindings(bindings.Elems)
		if err != nil {
			return Outcome{}, err
		}
		loopLambda := listOf(append([]ast.Expr{sym("lambda"), listOf(varExprs(vars)...)}, l.Elems[3:]...)...)
		letrecForm := listOf(
			sym("letrec"),
			listOf(listOf(sym(name), loopLambda)),
			sym(name),
		)
		call := listOf(append([]ast.Expr{letrecForm}, inits...)...)
		return step(call, e)
	}

	bindings, ok := l.Elems[1].(*ast.List)
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "let: malformed bindings")
	}
	vars, inits, err := splitBindings(bindings.Elems)
	if err != nil {
		return Outcome{}, err
	}
	lambdaExpr := listOf(append([]ast.Expr{sym("lambda"), listOf(varExprs(vars)...)}, l.Elems[2:]...)...)
	call := listOf(append([]ast.Expr{lambdaExpr}, inits...)...)
	return step(call, e)
}

func formLetStar(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "let*: malformed form")
	}
	bindings, ok := l.Elems[1].(*ast.List)
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "let*: malformed bindings")
	}
	if len(bindings.Elems) == 0 {
		form := listOf(append([]ast.Expr{sym("let"), listOf()}, l.Elems[2:]...)...)
		return step(form, e)
	}
	inner := listOf(append([]ast.Expr{sym("let*"), listOf(bindings.Elems[1:]...)}, l.Elems[2:]...)...)
	form := listOf(sym("let"), listOf(bindings.Elems[0]), inner)
	return step(form, e)
}

func formLetrec(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "letrec: malformed form")
	}
	bindings, ok := l.Elems[1].(*ast.List)
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "letrec: malformed bindings")
	}
	vars, inits, err := splitBindings(bindings.Elems)
	if err != nil {
		return Outcome{}, err
	}
	var letBindings []ast.Expr
	for _, v := range vars {
		letBindings = append(letBindings, listOf(sym(v), lit(value.Boolean(false))))
	}
	var body []ast.Expr
	for i, v := range vars {
		body = append(body, listOf(sym("set!"), sym(v), inits[i]))
	}
	body = append(body, l.Elems[2:]...)
	form := listOf(append([]ast.Expr{sym("let"), listOf(letBindings...)}, body...)...)
	return step(form, e)
}

func splitBindings(elems []ast.Expr) (vars []string, inits []ast.Expr, err error) {
	for _, be := range elems {
		bl, ok := be.(*ast.List)
		if !ok || len(bl.Elems) != 2 {
			return nil, nil, errors.New(errors.Syntax, be.Span(), "malformed binding")
		}
		name, ok := symbolName(bl.Elems[0])
		if !ok {
			return nil, nil, errors.New(errors.Syntax, be.Span(), "binding name must be an identifier")
		}
		vars = append(vars, name)
		inits = append(inits, bl.Elems[1])
	}
	return vars, inits, nil
}

func varExprs(names []string) []ast.Expr {
	out := make([]ast.Expr, len(names))
	for i, n := range names {
		out[i] = sym(n)
	}
	return out
}

// --- do ---

func formDo(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 3 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "do: malformed form")
	}
	specs, ok := l.Elems[1].(*ast.List)
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "do: malformed variable specs")
	}
	testClause, ok := l.Elems[2].(*ast.List)
	if !ok || len(testClause.Elems) == 0 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "do: malformed test clause")
	}
	commands := l.Elems[3:]

	var vars, inits, steps []ast.Expr
	for _, se := range specs.Elems {
		sl, ok := se.(*ast.List)
		if !ok || len(sl.Elems) < 2 {
			return Outcome{}, errors.New(errors.Syntax, se.Span(), "do: malformed variable spec")
		}
		vars = append(vars, sl.Elems[0])
		inits = append(inits, sl.Elems[1])
		if len(sl.Elems) >= 3 {
			steps = append(steps, sl.Elems[2])
		} else {
			steps = append(steps, sl.Elems[0])
		}
	}

	loopCall := listOf(append([]ast.Expr{sym(" do-loop")}, steps...)...)
	loopBody := append(append([]ast.Expr{}, commands...), loopCall)
	testBody := listOf(append([]ast.Expr{sym("begin")}, testClause.Elems[1:]...)...)
	ifForm := listOf(sym("if"), testClause.Elems[0], testBody, listOf(append([]ast.Expr{sym("begin")}, loopBody...)...))

	bindings := make([]ast.Expr, len(vars))
	for i, v := range vars {
		bindings[i] = listOf(v, inits[i])
	}

	namedLet := listOf(sym("let"), sym(" do-loop"), listOf(bindings...), ifForm)
	return step(namedLet, e)
}
