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

// applyOutcome applies callee to args, in the caller's tail position: for
// a Closure this produces a plain "evaluate the body next" Outcome with
// no Push, which is exactly what makes it a tail call when the caller is
// itself in tail position (and a perfectly ordinary non-tail call when
// some other Frame is sitting above it on the stack waiting to receive
// the result). Builtins, host functions, and continuations all resolve
// synchronously to a value.
func (m *Machine) applyOutcome(callee value.Value, args []value.Value, e env.Frame, span token.Span) (Outcome, error) {
	proc, ok := callee.(*value.Procedure)
	if !ok {
		return Outcome{}, errors.WrongType(span, "apply", "procedure", callee)
	}

	switch {
	case proc.Lambda != nil:
		parent, ok := proc.Lambda.Env.(env.Frame)
		if !ok {
			return Outcome{}, errors.New(errors.Runtime, span, "closure environment is not extendable")
		}
		child, err := parent.Extend(proc.Lambda.Params, proc.Lambda.Rest, args)
		if err != nil {
			name := proc.Name
			if name == "" {
				name = "#[lambda]"
			}
			return Outcome{}, arityError(span, name, err)
		}
		return evalBody(proc.Lambda.Body, child)

	case proc.Builtin != nil:
		if !proc.Builtin.Arity.Accepts(len(args)) {
			return Outcome{}, errors.ArityMismatch(span, proc.Builtin.Name, arityDesc(proc.Builtin.Arity), len(args))
		}
		v, err := proc.Builtin.Fn(args)
		if err != nil {
			return Outcome{}, err
		}
		return done(v)

	case proc.Host != nil:
		if !proc.Host.Arity.Accepts(len(args)) {
			return Outcome{}, errors.ArityMismatch(span, proc.Host.Name, arityDesc(proc.Host.Arity), len(args))
		}
		v, err := proc.Host.Fn(args)
		if err != nil {
			return Outcome{}, err
		}
		return done(v)

	case proc.Cont != nil:
		var arg value.Value
		switch len(args) {
		case 1:
			arg = args[0]
		default:
			arg = &value.Values{Elems: args}
		}
		v, err := proc.Cont.Invoke(arg)
		if err != nil {
			return Outcome{}, err
		}
		return done(v)

	default:
		return Outcome{}, errors.New(errors.Type, span, "malformed procedure value")
	}
}

func arityDesc(a value.Arity) string {
	if a.Max < 0 {
		if a.Min == 0 {
			return "any number of"
		}
		return "at least " + itoa(a.Min)
	}
	if a.Min == a.Max {
		return "exactly " + itoa(a.Min)
	}
	return "between " + itoa(a.Min) + " and " + itoa(a.Max)
}

func arityError(span token.Span, name string, err error) error {
	if ae, ok := err.(*env.ErrArity); ok {
		kind := itoa(ae.Expected)
		if ae.Variadic {
			kind = "at least " + kind
		} else {
			kind = "exactly " + kind
		}
		return errors.ArityMismatch(span, name, kind, ae.Got)
	}
	return errors.Wrap(errors.Runtime, span, err, "%s: argument binding failed", name)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// evalBody sequences a Closure body, putting the last expression in tail
// position (no frame pushed to receive it).
func evalBody(body []ast.Expr, e env.Frame) (Outcome, error) {
	if len(body) == 0 {
		return done(value.Undefined{})
	}
	if len(body) == 1 {
		return step(body[0], e)
	}
	return stepPush(body[0], e, &beginFrame{rest: body[1:], env: e})
}

// ApplyProcedure invokes proc synchronously and returns its final value,
// for use by host code and Go-implemented higher-order builtins (map,
// for-each, apply, force, dynamic-wind's thunks, with-exception-handler's
// handler) that must call back into Scheme code from outside the driver
// loop. It nests a fresh, independent frame stack so the caller's own
// pending frames are preserved untouched; this sacrifices O(1) host-stack
// growth for calls made this way (each nested ApplyProcedure call costs
// one Go stack frame), which is an accepted limitation for callback-style
// builtins — ordinary Scheme-level tail calls never go through this path.
func (m *Machine) ApplyProcedure(proc value.Value, args []value.Value) (value.Value, error) {
	savedStack := m.stack
	m.stack = nil
	defer func() { m.stack = savedStack }()

	out, err := m.applyOutcome(proc, args, m.Global, token.NoSpan)
	if err != nil {
		return nil, err
	}
	if out.IsValue {
		return m.resume(out.Value)
	}
	return m.drive(out.Next, out.NextEnv, false, nil)
}
