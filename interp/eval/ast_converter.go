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
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/value"
)

// ToValue converts a quoted AST node to a Value (spec.md §4.4): Literal
// maps to its embedded datum, Variable to a Symbol, List to a
// right-nested Pair chain ending in Nil, DottedList to a chain ending in
// its tail, Vector to a Vector. Nested Quote is peeled rather than
// reproduced as a `(quote ...)` list: every Quote layer inside quoted
// data yields its inner datum, so `''x` reads back as the symbol x.
func ToValue(e ast.Expr) (value.Value, error) {
	switch x := e.(type) {
	case *ast.Literal:
		if v, ok := x.Value.(value.Value); ok {
			return v, nil
		}
		return value.Undefined{}, nil
	case *ast.Variable:
		return value.Intern(x.Name), nil
	case *ast.Quote:
		return ToValue(x.Expr)
	case *ast.List:
		elems := make([]value.Value, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ToValue(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.FromSlice(elems), nil
	case *ast.DottedList:
		tail, err := ToValue(x.Tail)
		if err != nil {
			return nil, err
		}
		for i := len(x.Elems) - 1; i >= 0; i-- {
			v, err := ToValue(x.Elems[i])
			if err != nil {
				return nil, err
			}
			tail = value.Cons(v, tail)
		}
		return tail, nil
	case *ast.Vector:
		elems := make([]value.Value, len(x.Elems))
		for i, el := range x.Elems {
			v, err := ToValue(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewVector(elems), nil
	case *ast.Quasiquote, *ast.Unquote, *ast.UnquoteSplicing:
		return nil, errors.New(errors.Syntax, e.Span(), "unquote/unquote-splicing/quasiquote not valid in this quote context")
	default:
		return nil, errors.New(errors.Syntax, e.Span(), "cannot convert expression to value")
	}
}
