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
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Pairs is the pair/list procedure set of spec.md §4.9: cons, accessors,
// mutators, and the standard list-processing procedures built on
// value.Pair's mutable cons-cell sharing.
type Pairs struct{}

func (Pairs) Name() string { return "pairs" }

func asPair(op string, v value.Value) (*value.Pair, error) {
	p, ok := v.(*value.Pair)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "pair", v)
	}
	return p, nil
}

func asList(op string, v value.Value) ([]value.Value, error) {
	s, ok := value.ToSlice(v)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "proper list", v)
	}
	return s, nil
}

func (Pairs) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"cons": proc("cons", value.Exact(2), func(args []value.Value) (value.Value, error) {
			return value.Cons(args[0], args[1]), nil
		}),
		"car": proc("car", value.Exact(1), func(args []value.Value) (value.Value, error) {
			p, err := asPair("car", args[0])
			if err != nil {
				return nil, err
			}
			return p.Car, nil
		}),
		"cdr": proc("cdr", value.Exact(1), func(args []value.Value) (value.Value, error) {
			p, err := asPair("cdr", args[0])
			if err != nil {
				return nil, err
			}
			return p.Cdr, nil
		}),
		"set-car!": proc("set-car!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			p, err := asPair("set-car!", args[0])
			if err != nil {
				return nil, err
			}
			p.Car = args[1]
			return value.Undefined{}, nil
		}),
		"set-cdr!": proc("set-cdr!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			p, err := asPair("set-cdr!", args[0])
			if err != nil {
				return nil, err
			}
			p.Cdr = args[1]
			return value.Undefined{}, nil
		}),
		"pair?": typePredicate(func(v value.Value) bool { _, ok := v.(*value.Pair); return ok }),
		"null?": typePredicate(func(v value.Value) bool { _, ok := v.(value.Nil); return ok }),
		"list?": typePredicate(value.IsList),

		"list": proc("list", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			return value.FromSlice(args), nil
		}),
		"length": proc("length", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, ok := value.ListLength(args[0])
			if !ok {
				return nil, errors.WrongType(token.NoSpan, "length", "proper list", args[0])
			}
			return value.NewInt(int64(n)), nil
		}),
		"append": proc("append", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.Nil{}, nil
			}
			var all []value.Value
			for _, a := range args[:len(args)-1] {
				s, err := asList("append", a)
				if err != nil {
					return nil, err
				}
				all = append(all, s...)
			}
			last := args[len(args)-1]
			result := last
			for i := len(all) - 1; i >= 0; i-- {
				result = value.Cons(all[i], result)
			}
			return result, nil
		}),
		"reverse": proc("reverse", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asList("reverse", args[0])
			if err != nil {
				return nil, err
			}
			var result value.Value = value.Nil{}
			for _, e := range s {
				result = value.Cons(e, result)
			}
			return result, nil
		}),
		"list-tail": proc("list-tail", value.Exact(2), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("list-tail", args[1])
			if err != nil {
				return nil, err
			}
			cur := args[0]
			for i := int64(0); i < asInt64(n); i++ {
				p, err := asPair("list-tail", cur)
				if err != nil {
					return nil, err
				}
				cur = p.Cdr
			}
			return cur, nil
		}),
		"list-ref": proc("list-ref", value.Exact(2), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("list-ref", args[1])
			if err != nil {
				return nil, err
			}
			cur := args[0]
			for i := int64(0); i < asInt64(n); i++ {
				p, err := asPair("list-ref", cur)
				if err != nil {
					return nil, err
				}
				cur = p.Cdr
			}
			p, err := asPair("list-ref", cur)
			if err != nil {
				return nil, err
			}
			return p.Car, nil
		}),
		"list-copy": proc("list-copy", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asList("list-copy", args[0])
			if err != nil {
				return nil, err
			}
			return value.FromSlice(s), nil
		}),
		"memq":  memberProc("memq", value.Eq),
		"memv":  memberProc("memv", value.Eqv),
		"member": memberProc("member", value.Equal),
		"assq":  assocProc("assq", value.Eq),
		"assv":  assocProc("assv", value.Eqv),
		"assoc": assocProc("assoc", value.Equal),

		"caar": cxrProc("caar", "aa"),
		"cadr": cxrProc("cadr", "ad"),
		"cdar": cxrProc("cdar", "da"),
		"cddr": cxrProc("cddr", "dd"),
		"caaar": cxrProc("caaar", "aaa"),
		"caadr": cxrProc("caadr", "aad"),
		"cadar": cxrProc("cadar", "ada"),
		"caddr": cxrProc("caddr", "add"),
		"cdaar": cxrProc("cdaar", "daa"),
		"cdadr": cxrProc("cdadr", "dad"),
		"cddar": cxrProc("cddar", "dda"),
		"cdddr": cxrProc("cdddr", "ddd"),
	}
}

func memberProc(name string, eq func(a, b value.Value) bool) *value.BuiltinProc {
	return proc(name, value.Exact(2), func(args []value.Value) (value.Value, error) {
		cur := args[1]
		for {
			switch x := cur.(type) {
			case value.Nil:
				return value.Boolean(false), nil
			case *value.Pair:
				if eq(x.Car, args[0]) {
					return x, nil
				}
				cur = x.Cdr
			default:
				return nil, errors.WrongType(token.NoSpan, name, "proper list", args[1])
			}
		}
	})
}

func assocProc(name string, eq func(a, b value.Value) bool) *value.BuiltinProc {
	return proc(name, value.Exact(2), func(args []value.Value) (value.Value, error) {
		s, err := asList(name, args[1])
		if err != nil {
			return nil, err
		}
		for _, e := range s {
			p, ok := e.(*value.Pair)
			if !ok {
				return nil, errors.WrongType(token.NoSpan, name, "list of pairs", args[1])
			}
			if eq(p.Car, args[0]) {
				return p, nil
			}
		}
		return value.Boolean(false), nil
	})
}

// cxrProc implements a c[ad]+r accessor from its path read right-to-left
// ("ad" for cadr means: cdr first, then car), matching R7RS's naming.
func cxrProc(name, path string) *value.BuiltinProc {
	return proc(name, value.Exact(1), func(args []value.Value) (value.Value, error) {
		cur := args[0]
		for i := len(path) - 1; i >= 0; i-- {
			p, err := asPair(name, cur)
			if err != nil {
				return nil, err
			}
			if path[i] == 'a' {
				cur = p.Car
			} else {
				cur = p.Cdr
			}
		}
		return cur, nil
	})
}
