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
	"github.com/cockroachdb/apd/v2"

	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Arithmetic is the numeric tower procedure set of spec.md §4.3 (Numeric
// Tower) and §4.9: +, -, *, /, comparisons, and the exactness/sign
// predicates, all built on value.Number's promotion rules.
type Arithmetic struct {
	// ExactIntegerOverflow mirrors eval.Config.ExactIntegerOverflow: when
	// set, +/-/* raise a RuntimeError instead of promoting to a bignum
	// Integer, per spec.md §4.1's strict fixed-width reading.
	ExactIntegerOverflow bool
}

func (Arithmetic) Name() string { return "arithmetic" }

// checkOverflow enforces the strict fixed-width reading of spec.md §4.1:
// if every operand fed into this step was still within int64 (not
// already a promoted bignum) but the result is, this single operation is
// the one that overflowed, and fails instead of widening.
func checkOverflow(strict bool, op string, result *value.Number, inputs ...*value.Number) (*value.Number, error) {
	if !strict || !result.Overflowed() {
		return result, nil
	}
	for _, in := range inputs {
		if in.Overflowed() {
			// Already a bignum going in; this is exact bignum
			// arithmetic, not a fixed-width overflow.
			return result, nil
		}
	}
	return nil, errors.New(errors.Runtime, token.NoSpan, "%s: exact integer overflow", op)
}

// typeErr is the shared WrongType wrapper used across every procedure
// file in this package.
func typeErr(op, expected string, got value.Value) error {
	return errors.WrongType(token.NoSpan, op, expected, got)
}

func asNumber(op string, v value.Value) (*value.Number, error) {
	n, ok := v.(*value.Number)
	if !ok {
		return nil, errors.WrongType(token.NoSpan, op, "number", v)
	}
	return n, nil
}

func numArgs(op string, args []value.Value) ([]*value.Number, error) {
	out := make([]*value.Number, len(args))
	for i, a := range args {
		n, err := asNumber(op, a)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func wrapDiv(op string, n *value.Number, err error) (*value.Number, error) {
	if err != nil {
		return nil, errors.DivByZero(token.NoSpan, op)
	}
	return n, nil
}

func (a Arithmetic) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"+": proc("+", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			nums, err := numArgs("+", args)
			if err != nil {
				return nil, err
			}
			acc := value.NewInt(0)
			for _, n := range nums {
				before := acc
				acc, err = value.NumAdd(acc, n)
				if err != nil {
					return nil, errors.Wrap(errors.Runtime, token.NoSpan, err, "+")
				}
				if acc, err = checkOverflow(a.ExactIntegerOverflow, "+", acc, before, n); err != nil {
					return nil, err
				}
			}
			return acc, nil
		}),
		"*": proc("*", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			nums, err := numArgs("*", args)
			if err != nil {
				return nil, err
			}
			acc := value.NewInt(1)
			for _, n := range nums {
				before := acc
				acc, err = value.NumMul(acc, n)
				if err != nil {
					return nil, errors.Wrap(errors.Runtime, token.NoSpan, err, "*")
				}
				if acc, err = checkOverflow(a.ExactIntegerOverflow, "*", acc, before, n); err != nil {
					return nil, err
				}
			}
			return acc, nil
		}),
		"-": proc("-", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			nums, err := numArgs("-", args)
			if err != nil {
				return nil, err
			}
			if len(nums) == 1 {
				r, err := value.NumSub(value.NewInt(0), nums[0])
				if err != nil {
					return nil, errors.Wrap(errors.Runtime, token.NoSpan, err, "-")
				}
				return checkOverflow(a.ExactIntegerOverflow, "-", r, nums[0])
			}
			acc := nums[0]
			for _, n := range nums[1:] {
				before := acc
				acc, err = value.NumSub(acc, n)
				if err != nil {
					return nil, errors.Wrap(errors.Runtime, token.NoSpan, err, "-")
				}
				if acc, err = checkOverflow(a.ExactIntegerOverflow, "-", acc, before, n); err != nil {
					return nil, err
				}
			}
			return acc, nil
		}),
		"/": proc("/", value.AtLeast(1), func(args []value.Value) (value.Value, error) {
			nums, err := numArgs("/", args)
			if err != nil {
				return nil, err
			}
			if len(nums) == 1 {
				r, err := value.NumDiv(value.NewInt(1), nums[0])
				return wrapDiv("/", r, err)
			}
			acc := nums[0]
			for _, n := range nums[1:] {
				acc, err = value.NumDiv(acc, n)
				if err != nil {
					return wrapDiv("/", nil, err)
				}
			}
			return acc, nil
		}),
		"=":  numCompareProc("=", func(c int) bool { return c == 0 }),
		"<":  numCompareProc("<", func(c int) bool { return c < 0 }),
		">":  numCompareProc(">", func(c int) bool { return c > 0 }),
		"<=": numCompareProc("<=", func(c int) bool { return c <= 0 }),
		">=": numCompareProc(">=", func(c int) bool { return c >= 0 }),

		"quotient":  intDivProc("quotient", quotient),
		"remainder": intDivProc("remainder", remainder),
		"modulo":    intDivProc("modulo", modulo),

		"abs": proc("abs", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("abs", args[0])
			if err != nil {
				return nil, err
			}
			if n.IsNegative() {
				r, err := value.NumSub(value.NewInt(0), n)
				if err != nil {
					return nil, errors.Wrap(errors.Runtime, token.NoSpan, err, "abs")
				}
				return r, nil
			}
			return n, nil
		}),

		"zero?":     numPredicate("zero?", func(n *value.Number) bool { return n.IsZero() }),
		"positive?": numPredicate("positive?", func(n *value.Number) bool { return !n.IsZero() && !n.IsNegative() }),
		"negative?": numPredicate("negative?", func(n *value.Number) bool { return n.IsNegative() }),

		"number?": typePredicate(func(v value.Value) bool { _, ok := v.(*value.Number); return ok }),
		"exact?": proc("exact?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("exact?", args[0])
			if err != nil {
				return nil, err
			}
			return value.Boolean(n.Exact), nil
		}),
		"inexact?": proc("inexact?", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("inexact?", args[0])
			if err != nil {
				return nil, err
			}
			return value.Boolean(!n.Exact), nil
		}),
		"integer?":  numKindPredicate(value.KindInteger),
		"rational?": numKindPredicate(value.KindInteger, value.KindRational, value.KindReal),
		"real?":     numKindPredicate(value.KindInteger, value.KindRational, value.KindReal),
		"complex?":  typePredicate(func(v value.Value) bool { _, ok := v.(*value.Number); return ok }),

		"exact->inexact": proc("exact->inexact", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("exact->inexact", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewReal(n.Float64()), nil
		}),
		"inexact->exact": proc("inexact->exact", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("inexact->exact", args[0])
			if err != nil {
				return nil, err
			}
			return toExact(n), nil
		}),

		"min": extremumProc("min", func(c int) bool { return c < 0 }),
		"max": extremumProc("max", func(c int) bool { return c > 0 }),

		"number->string": proc("number->string", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("number->string", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewString(n.String()), nil
		}),
	}
}

// toExact converts an inexact (floating-point) Number to an exact one of
// the same magnitude; Integer and Rational values are already exact and
// pass through unchanged.
func toExact(n *value.Number) *value.Number {
	if n.Exact {
		return n
	}
	r, err := value.NewRational(n.AsDecimal(), apd.New(1, 0))
	if err != nil {
		return n
	}
	return r
}

func numCompareProc(name string, ok func(int) bool) *value.BuiltinProc {
	return proc(name, value.AtLeast(1), func(args []value.Value) (value.Value, error) {
		nums, err := numArgs(name, args)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(nums); i++ {
			if !ok(value.NumCompare(nums[i-1], nums[i])) {
				return value.Boolean(false), nil
			}
		}
		return value.Boolean(true), nil
	})
}

func extremumProc(name string, prefer func(int) bool) *value.BuiltinProc {
	return proc(name, value.AtLeast(1), func(args []value.Value) (value.Value, error) {
		nums, err := numArgs(name, args)
		if err != nil {
			return nil, err
		}
		best := nums[0]
		inexact := !best.Exact
		for _, n := range nums[1:] {
			if !n.Exact {
				inexact = true
			}
			if prefer(value.NumCompare(n, best)) {
				best = n
			}
		}
		if inexact && best.Exact {
			return value.NewReal(best.Float64()), nil
		}
		return best, nil
	})
}

func numPredicate(name string, pred func(*value.Number) bool) *value.BuiltinProc {
	return proc(name, value.Exact(1), func(args []value.Value) (value.Value, error) {
		n, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		return value.Boolean(pred(n)), nil
	})
}

func typePredicate(pred func(value.Value) bool) *value.BuiltinProc {
	return proc("", value.Exact(1), func(args []value.Value) (value.Value, error) {
		return value.Boolean(pred(args[0])), nil
	})
}

func numKindPredicate(kinds ...value.NumKind) *value.BuiltinProc {
	return proc("", value.Exact(1), func(args []value.Value) (value.Value, error) {
		n, ok := args[0].(*value.Number)
		if !ok {
			return value.Boolean(false), nil
		}
		for _, want := range kinds {
			if n.Kind == want {
				return value.Boolean(true), nil
			}
		}
		return value.Boolean(false), nil
	})
}

// asInt64 extracts an int64 magnitude from an integer Number, taking the
// low 64 bits of Big if the fast-path I was overflowed; quotient,
// remainder, and modulo only accept Integer operands (spec.md §4.9), so
// this is never asked to approximate a Rational or Real.
func asInt64(n *value.Number) int64 {
	if n.Big != nil {
		return n.Big.Int64()
	}
	return n.I
}

func intDivProc(name string, op func(a, b int64) (int64, error)) *value.BuiltinProc {
	return proc(name, value.Exact(2), func(args []value.Value) (value.Value, error) {
		a, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(name, args[1])
		if err != nil {
			return nil, err
		}
		if a.Kind != value.KindInteger || b.Kind != value.KindInteger {
			return nil, errors.WrongType(token.NoSpan, name, "integer", args[0])
		}
		ai, bi := asInt64(a), asInt64(b)
		if bi == 0 {
			return nil, errors.DivByZero(token.NoSpan, name)
		}
		r, _ := op(ai, bi)
		return value.NewInt(r), nil
	})
}

func quotient(a, b int64) (int64, error) { return a / b, nil }

func remainder(a, b int64) (int64, error) { return a % b, nil }

func modulo(a, b int64) (int64, error) {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, nil
}
