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

type formFunc func(m *Machine, l *ast.List, e env.Frame) (Outcome, error)

var specialForms map[string]formFunc

func init() {
	specialForms = map[string]formFunc{
		"quote":                       formQuote,
		"if":                          formIf,
		"define":                      formDefine,
		"set!":                        formSet,
		"lambda":                      formLambda,
		"begin":                       formBegin,
		"and":                         formAnd,
		"or":                          formOr,
		"when":                        formWhen,
		"unless":                      formUnless,
		"cond":                        formCond,
		"case":                        formCase,
		"let":                         formLet,
		"let*":                        formLetStar,
		"letrec":                      formLetrec,
		"letrec*":                     formLetrec,
		"do":                          formDo,
		"delay":                       formDelay,
		"delay-force":                 formLazy,
		"lazy":                        formLazy,
		"values":                      formValues,
		"call-with-values":            formCallWithValues,
		"call/cc":                     formCallCC,
		"call-with-current-continuation": formCallCC,
		"dynamic-wind":                formDynamicWind,
		"with-exception-handler":      formWithExceptionHandler,
		"raise":                       formRaise,
		"raise-continuable":           formRaiseContinuable,
		"guard":                       formGuard,
		"define-record-type":          formDefineRecordType,
		"define-syntax":               formDefineSyntax,
		"let-syntax":                  formLetSyntax,
		"letrec-syntax":               formLetSyntax,
	}
}

func isFalse(v value.Value) bool {
	b, ok := v.(value.Boolean)
	return ok && !bool(b)
}

func symbolName(e ast.Expr) (string, bool) {
	v, ok := e.(*ast.Variable)
	if !ok {
		return "", false
	}
	return v.Name, true
}

// isAuxKeyword reports whether e is the auxiliary syntactic keyword kw
// (cond/case/guard's "else", cond/case's "=>"), stripping a hygiene mark
// first if e came from a macro template: these are never identifiers a
// template means to introduce as a fresh binding, so recognizing them
// under their mark keeps e.g. a (my-if c t e) macro expanding to
// (cond (c t) (else e)) working the same as if the user had written the
// cond by hand.
func isAuxKeyword(e ast.Expr, kw string) bool {
	n, ok := symbolName(e)
	if !ok {
		return false
	}
	if n == kw {
		return true
	}
	base, marked := env.StripMark(n)
	return marked && base == kw
}

// --- quote ---

func formQuote(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "quote: expected exactly one datum")
	}
	v, err := ToValue(l.Elems[1])
	if err != nil {
		return Outcome{}, err
	}
	return done(v)
}

// --- if ---

type ifFrame struct {
	then, els ast.Expr
	env       env.Frame
}

func (f *ifFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	if isFalse(v) {
		if f.els == nil {
			return done(value.Undefined{})
		}
		return step(f.els, f.env)
	}
	return step(f.then, f.env)
}

func formIf(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 3 && len(l.Elems) != 4 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "if: expected (if test then [else])")
	}
	var els ast.Expr
	if len(l.Elems) == 4 {
		els = l.Elems[3]
	}
	return stepPush(l.Elems[1], e, &ifFrame{then: l.Elems[2], els: els, env: e})
}

// --- begin ---

type beginFrame struct {
	rest []ast.Expr
	env  env.Frame
}

func (f *beginFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	if len(f.rest) == 1 {
		return step(f.rest[0], f.env)
	}
	return stepPush(f.rest[0], f.env, &beginFrame{rest: f.rest[1:], env: f.env})
}

func formBegin(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	return evalBody(l.Elems[1:], e)
}

// --- and / or ---

type andFrame struct {
	rest []ast.Expr
	env  env.Frame
}

func (f *andFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	if isFalse(v) {
		return done(v)
	}
	if len(f.rest) == 1 {
		return step(f.rest[0], f.env)
	}
	return stepPush(f.rest[0], f.env, &andFrame{rest: f.rest[1:], env: f.env})
}

func formAnd(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	args := l.Elems[1:]
	if len(args) == 0 {
		return done(value.Boolean(true))
	}
	if len(args) == 1 {
		return step(args[0], e)
	}
	return stepPush(args[0], e, &andFrame{rest: args[1:], env: e})
}

type orFrame struct {
	rest []ast.Expr
	env  env.Frame
}

func (f *orFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	if !isFalse(v) {
		return done(v)
	}
	if len(f.rest) == 1 {
		return step(f.rest[0], f.env)
	}
	return stepPush(f.rest[0], f.env, &orFrame{rest: f.rest[1:], env: f.env})
}

func formOr(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	args := l.Elems[1:]
	if len(args) == 0 {
		return done(value.Boolean(false))
	}
	if len(args) == 1 {
		return step(args[0], e)
	}
	return stepPush(args[0], e, &orFrame{rest: args[1:], env: e})
}

// --- when / unless (desugar to if) ---

func formWhen(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "when: expected a test")
	}
	body := ast.NewList(l.Sp, append([]ast.Expr{ast.NewVariable(token.NoSpan, "begin")}, l.Elems[2:]...))
	return stepPush(l.Elems[1], e, &ifFrame{then: body, els: ast.NewLiteral(token.NoSpan, ast.LitBoolean, value.Boolean(false), "#f"), env: e})
}

func formUnless(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "unless: expected a test")
	}
	body := ast.NewList(l.Sp, append([]ast.Expr{ast.NewVariable(token.NoSpan, "begin")}, l.Elems[2:]...))
	return stepPush(l.Elems[1], e, &ifFrame{then: ast.NewLiteral(token.NoSpan, ast.LitBoolean, value.Boolean(false), "#f"), els: body, env: e})
}

// --- define ---

type defineFrame struct {
	name string
	env  env.Frame
}

func (f *defineFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	if p, ok := v.(*value.Procedure); ok && p.Name == "" && p.Lambda != nil {
		p.Name = f.name
	}
	f.env.Define(f.name, v)
	return done(value.Undefined{})
}

func formDefine(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: malformed form")
	}
	switch target := l.Elems[1].(type) {
	case *ast.Variable:
		if len(l.Elems) == 2 {
			return stepPush(ast.NewLiteral(token.NoSpan, ast.LitBoolean, value.Undefined{}, ""), e, &defineFrame{name: target.Name, env: e})
		}
		if len(l.Elems) != 3 {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: expected exactly one value expression")
		}
		return stepPush(l.Elems[2], e, &defineFrame{name: target.Name, env: e})

	case *ast.List:
		if len(target.Elems) == 0 {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: missing procedure name")
		}
		name, ok := symbolName(target.Elems[0])
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: procedure name must be an identifier")
		}
		lambdaExpr := ast.NewList(l.Sp, append([]ast.Expr{
			ast.NewVariable(token.NoSpan, "lambda"),
			ast.NewList(target.Sp, target.Elems[1:]),
		}, l.Elems[2:]...))
		return stepPush(lambdaExpr, e, &defineFrame{name: name, env: e})

	case *ast.DottedList:
		name, ok := symbolName(target.Tail)
		_ = name
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: malformed variadic header")
		}
		firstName, ok := symbolName(target.Elems[0])
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: procedure name must be an identifier")
		}
		formals := ast.NewDottedList(target.Sp, target.Elems[1:], target.Tail)
		lambdaExpr := ast.NewList(l.Sp, append([]ast.Expr{
			ast.NewVariable(token.NoSpan, "lambda"), formals,
		}, l.Elems[2:]...))
		return stepPush(lambdaExpr, e, &defineFrame{name: firstName, env: e})

	default:
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define: malformed target")
	}
}

// --- set! ---

type setFrame struct {
	name string
	env  env.Frame
	span token.Span
}

func (f *setFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	if err := f.env.Set(f.name, v); err != nil {
		if _, ok := err.(*env.ErrUndefinedVariable); ok {
			return Outcome{}, errors.Undefined(f.span, f.name)
		}
		return Outcome{}, errors.Wrap(errors.Runtime, f.span, err, "set!: %s", f.name)
	}
	return done(value.Undefined{})
}

func formSet(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 3 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "set!: expected (set! name expr)")
	}
	name, ok := symbolName(l.Elems[1])
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "set!: target must be an identifier")
	}
	return stepPush(l.Elems[2], e, &setFrame{name: name, env: e, span: l.Sp})
}

// --- lambda ---

func formLambda(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "lambda: malformed form")
	}
	params, rest, err := parseFormals(l.Elems[1])
	if err != nil {
		return Outcome{}, err
	}
	closure := &value.Closure{Params: params, Rest: rest, Body: l.Elems[2:], Env: e}
	return done(&value.Procedure{Lambda: closure})
}

func parseFormals(e ast.Expr) (params []string, rest string, err error) {
	switch f := e.(type) {
	case *ast.Variable:
		return nil, f.Name, nil
	case *ast.List:
		for _, el := range f.Elems {
			n, ok := symbolName(el)
			if !ok {
				return nil, "", errors.New(errors.Syntax, e.Span(), "lambda: formal parameter must be an identifier")
			}
			params = append(params, n)
		}
		return params, "", nil
	case *ast.DottedList:
		for _, el := range f.Elems {
			n, ok := symbolName(el)
			if !ok {
				return nil, "", errors.New(errors.Syntax, e.Span(), "lambda: formal parameter must be an identifier")
			}
			params = append(params, n)
		}
		n, ok := symbolName(f.Tail)
		if !ok {
			return nil, "", errors.New(errors.Syntax, e.Span(), "lambda: rest parameter must be an identifier")
		}
		return params, n, nil
	default:
		return nil, "", errors.New(errors.Syntax, e.Span(), "lambda: malformed parameter list")
	}
}

// --- values / call-with-values ---

type seqFrame struct {
	remaining []ast.Expr
	values    []value.Value
	env       env.Frame
	finish    func(m *Machine, vals []value.Value, e env.Frame) (Outcome, error)
}

func (f *seqFrame) Step(m *Machine, v value.Value) (Outcome, error) {
	vals := append(f.values, v)
	if len(f.remaining) == 0 {
		return f.finish(m, vals, f.env)
	}
	return stepPush(f.remaining[0], f.env, &seqFrame{remaining: f.remaining[1:], values: vals, env: f.env, finish: f.finish})
}

func formValues(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	args := l.Elems[1:]
	finish := func(m *Machine, vals []value.Value, e env.Frame) (Outcome, error) {
		return done(&value.Values{Elems: vals})
	}
	if len(args) == 0 {
		return done(&value.Values{})
	}
	if len(args) == 1 {
		return step(args[0], e)
	}
	return stepPush(args[0], e, &seqFrame{remaining: args[1:], env: e, finish: finish})
}

func spreadValues(v value.Value) []value.Value {
	if mv, ok := v.(*value.Values); ok {
		return mv.Elems
	}
	return []value.Value{v}
}

type cwvProducerFrame struct {
	consumer ast.Expr
	env      env.Frame
}

func (f *cwvProducerFrame) Step(m *Machine, producerVal value.Value) (Outcome, error) {
	out, err := m.applyOutcome(producerVal, nil, f.env, token.NoSpan)
	if err != nil {
		return Outcome{}, err
	}
	out.Push = &cwvResultFrame{consumer: f.consumer, env: f.env}
	return out, nil
}

type cwvResultFrame struct {
	consumer ast.Expr
	env      env.Frame
}

func (f *cwvResultFrame) Step(m *Machine, producerResult value.Value) (Outcome, error) {
	args := spreadValues(producerResult)
	return stepPush(f.consumer, f.env, &applyArgsFrame{args: args, env: f.env})
}

type applyArgsFrame struct {
	args []value.Value
	env  env.Frame
}

func (f *applyArgsFrame) Step(m *Machine, consumerVal value.Value) (Outcome, error) {
	return m.applyOutcome(consumerVal, f.args, f.env, token.NoSpan)
}

func formCallWithValues(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 3 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "call-with-values: expected producer and consumer")
	}
	return stepPush(l.Elems[1], e, &cwvProducerFrame{consumer: l.Elems[2], env: e})
}
