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

// guardEscape is how a matched guard clause's result reaches back to its
// own formGuard call: the handler installed by guard never returns a
// value to raise's caller (which would mean "resume at the raise site",
// wrong for guard) — instead it returns this sentinel error, which
// propagates as an ordinary Go error through ApplyProcedure and every
// intervening Frame.Step until formGuard recognizes its own marker and
// converts it back into a value.
type guardEscape struct {
	marker *int
	result value.Value
}

func (g *guardEscape) Error() string { return "unhandled guard escape" }

// formGuard implements R7RS guard: evaluate body with a handler installed
// that, on exception, binds var to the condition and evaluates clauses as
// a cond; if no clause matches (and there is no else), the condition is
// re-raised to whatever handler was active outside this guard.
func formGuard(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "guard: malformed form")
	}
	header, ok := l.Elems[1].(*ast.List)
	if !ok || len(header.Elems) < 1 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "guard: malformed (var clause...) header")
	}
	varName, ok := symbolName(header.Elems[0])
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "guard: variable must be an identifier")
	}
	clauses := header.Elems[1:]
	if !hasElseClause(clauses) {
		clauses = append(append([]ast.Expr{}, clauses...), listOf(sym("else"), listOf(sym("raise"), sym(varName))))
	}
	bodyExprs := l.Elems[2:]

	marker := new(int)
	handlerFn := func(args []value.Value) (value.Value, error) {
		clauseEnv, err := e.Extend(nil, "", nil)
		if err != nil {
			return nil, err
		}
		clauseEnv.Define(varName, args[0])
		desugared, err := desugarCond(clauses)
		if err != nil {
			return nil, err
		}
		result, err := m.Eval(desugared, clauseEnv)
		if err != nil {
			return nil, err
		}
		return nil, &guardEscape{marker: marker, result: result}
	}
	handlerProc := &value.Procedure{
		Name:    "guard-handler",
		Builtin: &value.BuiltinProc{Name: "guard-handler", Arity: value.Exact(1), Fn: handlerFn},
	}

	bodyThunk := &value.Procedure{Lambda: &value.Closure{Body: bodyExprs, Env: e}}

	m.handlers = append(m.handlers, handlerProc)
	result, err := m.ApplyProcedure(bodyThunk, nil)
	m.handlers = m.handlers[:len(m.handlers)-1]

	if err != nil {
		if ge, ok := err.(*guardEscape); ok && ge.marker == marker {
			return done(ge.result)
		}
		return Outcome{}, err
	}
	return done(result)
}

func hasElseClause(clauses []ast.Expr) bool {
	for _, c := range clauses {
		if cl, ok := c.(*ast.List); ok && len(cl.Elems) > 0 && isAuxKeyword(cl.Elems[0], "else") {
			return true
		}
	}
	return false
}
