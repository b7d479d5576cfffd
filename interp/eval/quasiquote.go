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

// dispatchQuasiquote evaluates a quasiquote template synchronously. The
// recursion here is bounded by the template's lexical nesting (never by
// loop iteration), so using the Go call stack directly — rather than
// threading template evaluation through the frame machine — is simpler
// and does not risk the unbounded growth the frame stack exists to avoid.
func (m *Machine) dispatchQuasiquote(tmpl ast.Expr, depth int, e env.Frame) (Outcome, error) {
	v, err := m.quasiEval(tmpl, depth, e)
	if err != nil {
		return Outcome{}, err
	}
	return done(v)
}

func (m *Machine) quasiEval(e ast.Expr, depth int, envr env.Frame) (value.Value, error) {
	switch x := e.(type) {
	case *ast.Unquote:
		if depth == 1 {
			return m.Eval(x.Expr, envr)
		}
		inner, err := m.quasiEval(x.Expr, depth-1, envr)
		if err != nil {
			return nil, err
		}
		return value.FromSlice([]value.Value{value.Intern("unquote"), inner}), nil

	case *ast.Quasiquote:
		inner, err := m.quasiEval(x.Expr, depth+1, envr)
		if err != nil {
			return nil, err
		}
		return value.FromSlice([]value.Value{value.Intern("quasiquote"), inner}), nil

	case *ast.UnquoteSplicing:
		return nil, errors.New(errors.Syntax, e.Span(), "unquote-splicing not valid outside list context")

	case *ast.List:
		var out []value.Value
		for _, el := range x.Elems {
			if us, ok := el.(*ast.UnquoteSplicing); ok {
				if depth == 1 {
					spliced, err := m.Eval(us.Expr, envr)
					if err != nil {
						return nil, err
					}
					items, ok := value.ToSlice(spliced)
					if !ok {
						return nil, errors.WrongType(e.Span(), "unquote-splicing", "list", spliced)
					}
					out = append(out, items...)
					continue
				}
				inner, err := m.quasiEval(us.Expr, depth-1, envr)
				if err != nil {
					return nil, err
				}
				out = append(out, value.FromSlice([]value.Value{value.Intern("unquote-splicing"), inner}))
				continue
			}
			v, err := m.quasiEval(el, depth, envr)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return value.FromSlice(out), nil

	case *ast.DottedList:
		tail, err := m.quasiEval(x.Tail, depth, envr)
		if err != nil {
			return nil, err
		}
		for i := len(x.Elems) - 1; i >= 0; i-- {
			v, err := m.quasiEval(x.Elems[i], depth, envr)
			if err != nil {
				return nil, err
			}
			tail = value.Cons(v, tail)
		}
		return tail, nil

	case *ast.Vector:
		elems := make([]value.Value, len(x.Elems))
		for i, el := range x.Elems {
			v, err := m.quasiEval(el, depth, envr)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewVector(elems), nil

	default:
		return ToValue(e)
	}
}
