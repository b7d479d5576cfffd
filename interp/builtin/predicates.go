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

package builtin

import (
	"github.com/wisteria-scheme/wisteria/value"
)

// Predicates is the equality and type-test procedure set of spec.md
// §4.2 (Equality) and §4.9: eq?/eqv?/equal? and the per-type predicates,
// built directly on value.Eq/Eqv/Equal.
type Predicates struct{}

func (Predicates) Name() string { return "predicates" }

func (Predicates) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"eq?":    eqProc("eq?", value.Eq),
		"eqv?":   eqProc("eqv?", value.Eqv),
		"equal?": eqProc("equal?", value.Equal),

		"not": proc("not", value.Exact(1), func(args []value.Value) (value.Value, error) {
			b, ok := args[0].(value.Boolean)
			return value.Boolean(ok && !bool(b)), nil
		}),

		"boolean?":   typePredicate(func(v value.Value) bool { _, ok := v.(value.Boolean); return ok }),
		"symbol?":    typePredicate(func(v value.Value) bool { _, ok := v.(*value.Symbol); return ok }),
		"string?":    typePredicate(func(v value.Value) bool { _, ok := v.(*value.String); return ok }),
		"char?":      typePredicate(func(v value.Value) bool { _, ok := v.(value.Character); return ok }),
		"vector?":    typePredicate(func(v value.Value) bool { _, ok := v.(*value.Vector); return ok }),
		"procedure?": typePredicate(func(v value.Value) bool { _, ok := v.(*value.Procedure); return ok }),
		"promise?":   typePredicate(func(v value.Value) bool { _, ok := v.(*value.Promise); return ok }),
		"port?":      typePredicate(func(v value.Value) bool { _, ok := v.(*value.Port); return ok }),
		"error-object?": typePredicate(func(v value.Value) bool { _, ok := v.(*value.ErrorObject); return ok }),
		"eof-object?": typePredicate(func(v value.Value) bool { _, ok := v.(value.EofObject); return ok }),
		"eof-object": proc("eof-object", value.Exact(0), func(args []value.Value) (value.Value, error) {
			return value.EofObject{}, nil
		}),

		"boolean=?": proc("boolean=?", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			first, ok := args[0].(value.Boolean)
			if !ok {
				return value.Boolean(false), nil
			}
			for _, a := range args[1:] {
				b, ok := a.(value.Boolean)
				if !ok || b != first {
					return value.Boolean(false), nil
				}
			}
			return value.Boolean(true), nil
		}),
		"symbol=?": proc("symbol=?", value.AtLeast(2), func(args []value.Value) (value.Value, error) {
			first, ok := args[0].(*value.Symbol)
			if !ok {
				return value.Boolean(false), nil
			}
			for _, a := range args[1:] {
				s, ok := a.(*value.Symbol)
				if !ok || s != first {
					return value.Boolean(false), nil
				}
			}
			return value.Boolean(true), nil
		}),

		"symbol->string": proc("symbol->string", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(*value.Symbol)
			if !ok {
				return nil, typeErr("symbol->string", "symbol", args[0])
			}
			return value.NewString(s.Name), nil
		}),
		"string->symbol": proc("string->symbol", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(*value.String)
			if !ok {
				return nil, typeErr("string->symbol", "string", args[0])
			}
			return value.Intern(s.String()), nil
		}),

		"error": proc("error", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			msg, ok := args[0].(*value.String)
			if !ok {
				return nil, typeErr("error", "string", args[0])
			}
			return &value.ErrorObject{Message: msg.String(), Irritants: append([]value.Value{}, args[1:]...)}, nil
		}),
		"error-object-message": proc("error-object-message", value.Exact(1), func(args []value.Value) (value.Value, error) {
			e, ok := args[0].(*value.ErrorObject)
			if !ok {
				return nil, typeErr("error-object-message", "error-object", args[0])
			}
			return value.NewString(e.Message), nil
		}),
		"error-object-irritants": proc("error-object-irritants", value.Exact(1), func(args []value.Value) (value.Value, error) {
			e, ok := args[0].(*value.ErrorObject)
			if !ok {
				return nil, typeErr("error-object-irritants", "error-object", args[0])
			}
			return value.FromSlice(e.Irritants), nil
		}),
	}
}

func eqProc(name string, eq func(a, b value.Value) bool) *value.BuiltinProc {
	return proc(name, value.Exact(2), func(args []value.Value) (value.Value, error) {
		return value.Boolean(eq(args[0], args[1])), nil
	})
}
