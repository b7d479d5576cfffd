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

package value

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// NumKind identifies where a Number sits in the R7RS numeric tower.
// Operations promote along Integer -> Rational -> Real -> Complex,
// taking the least specific kind of either operand (spec.md §4.1).
type NumKind int

const (
	KindInteger NumKind = iota
	KindRational
	KindReal
	KindComplex
)

// decCtx is the shared arbitrary-precision context for Rational/Real
// arithmetic; 40 digits comfortably exceeds float64 precision while
// staying fast, wrapping apd.Decimal directly rather than re-deriving a
// bignum type.
var decCtx = apd.BaseContext.WithPrecision(40)

// Number is the tagged numeric value. Exactly one payload is meaningful
// per Kind: I for KindInteger (fast path; promoted to Big on overflow),
// Num/Den for KindRational (apd.Decimal-backed, kept reduced to lowest
// terms), Dec for KindReal, Re/Im for KindComplex.
type Number struct {
	Kind NumKind
	I    int64
	Big  *big.Int // non-nil only once I overflows int64
	Num  *apd.Decimal
	Den  *apd.Decimal
	Dec  *apd.Decimal
	Re   *Number
	Im   *Number
	// Exact is false for KindReal values produced from inexact (float)
	// literals or operations; it is otherwise always true (Integer and
	// Rational are always exact in this tower).
	Exact bool
}

func (*Number) isValue() {}

func NewInt(i int64) *Number {
	return &Number{Kind: KindInteger, I: i, Exact: true}
}

func NewBigInt(b *big.Int) *Number {
	return &Number{Kind: KindInteger, Big: new(big.Int).Set(b), Exact: true}
}

// NewRational returns a reduced num/den rational, or a KindInteger if
// den divides num evenly.
func NewRational(num, den *apd.Decimal) (*Number, error) {
	if den.IsZero() {
		return nil, fmt.Errorf("division by zero")
	}
	g := gcdDecimal(num, den)
	n, d := new(apd.Decimal), new(apd.Decimal)
	if _, err := decCtx.Quo(n, num, g); err != nil {
		return nil, err
	}
	if _, err := decCtx.Quo(d, den, g); err != nil {
		return nil, err
	}
	if d.Negative {
		n.Negative = !n.Negative
		d.Negative = false
	}
	one := apd.New(1, 0)
	if d.Cmp(one) == 0 {
		if iv, err := n.Int64(); err == nil {
			return NewInt(iv), nil
		}
	}
	return &Number{Kind: KindRational, Num: n, Den: d, Exact: true}, nil
}

func NewReal(f float64) *Number {
	d := new(apd.Decimal)
	d.SetFloat64(f)
	return &Number{Kind: KindReal, Dec: d, Exact: false}
}

func NewExactReal(d *apd.Decimal) *Number {
	return &Number{Kind: KindReal, Dec: d, Exact: true}
}

func NewComplex(re, im *Number) *Number {
	if im.IsZero() {
		return re
	}
	return &Number{Kind: KindComplex, Re: re, Im: im, Exact: re.Exact && im.Exact}
}

func gcdDecimal(a, b *apd.Decimal) *apd.Decimal {
	x, y := new(apd.Decimal).Abs(a), new(apd.Decimal).Abs(b)
	for !y.IsZero() {
		r := new(apd.Decimal)
		decCtx.Rem(r, x, y)
		x, y = y, r
	}
	if x.IsZero() {
		return apd.New(1, 0)
	}
	return x
}

// Overflowed reports whether n is an Integer whose magnitude no longer
// fits in int64 — i.e. the fast path promoted to Big. Callers enforcing
// spec.md's strict "fixed-width overflow fails" mode (as opposed to the
// default auto-promote behavior) use this to detect the case after the
// fact rather than threading a mode flag through every numBinOp call.
func (n *Number) Overflowed() bool {
	return n.Kind == KindInteger && n.Big != nil
}

func (n *Number) IsZero() bool {
	switch n.Kind {
	case KindInteger:
		return n.Big == nil && n.I == 0 || (n.Big != nil && n.Big.Sign() == 0)
	case KindRational:
		return n.Num.IsZero()
	case KindReal:
		return n.Dec.IsZero()
	case KindComplex:
		return n.Re.IsZero() && n.Im.IsZero()
	}
	return false
}

// AsDecimal converts n's real-line magnitude to an apd.Decimal,
// regardless of Kind (not meaningful for KindComplex).
func (n *Number) AsDecimal() *apd.Decimal {
	switch n.Kind {
	case KindInteger:
		if n.Big != nil {
			d := new(apd.Decimal)
			d.Coeff.Set(n.Big)
			if n.Big.Sign() < 0 {
				d.Negative = true
				d.Coeff.Neg(&d.Coeff)
			}
			return d
		}
		return apd.New(n.I, 0)
	case KindRational:
		d := new(apd.Decimal)
		decCtx.Quo(d, n.Num, n.Den)
		return d
	case KindReal:
		return n.Dec
	}
	return apd.New(0, 0)
}

// Float64 converts n to a float64, losing precision/exactness.
func (n *Number) Float64() float64 {
	f, err := n.AsDecimal().Float64()
	if err != nil {
		return math.NaN()
	}
	return f
}

func (n *Number) String() string {
	switch n.Kind {
	case KindInteger:
		if n.Big != nil {
			return n.Big.String()
		}
		return fmt.Sprintf("%d", n.I)
	case KindRational:
		return n.Num.String() + "/" + n.Den.String()
	case KindReal:
		return n.Dec.String()
	case KindComplex:
		if n.Im.Kind == KindInteger && !n.Im.IsNegative() {
			return n.Re.String() + "+" + n.Im.String() + "i"
		}
		return n.Re.String() + n.Im.String() + "i"
	}
	return "?"
}

func (n *Number) IsNegative() bool {
	switch n.Kind {
	case KindInteger:
		if n.Big != nil {
			return n.Big.Sign() < 0
		}
		return n.I < 0
	case KindRational:
		return n.Num.Negative
	case KindReal:
		return n.Dec.Negative
	}
	return false
}

// promote returns the common Kind two numbers must be coerced to before
// an arithmetic op, per the Integer -> Rational -> Real -> Complex chain.
func promote(a, b *Number) NumKind {
	if a.Kind > b.Kind {
		return a.Kind
	}
	return b.Kind
}

func bigOf(n *Number) *big.Int {
	if n.Big != nil {
		return n.Big
	}
	return big.NewInt(n.I)
}

func normalizeInt(b *big.Int) *Number {
	if b.IsInt64() {
		return NewInt(b.Int64())
	}
	return NewBigInt(b)
}

// NumAdd, NumSub, NumMul implement exact integer fast paths with overflow
// promotion to big.Int, and fall through to apd.Decimal arithmetic for
// Rational/Real; Complex is handled component-wise.
func NumAdd(a, b *Number) (*Number, error) { return numBinOp(a, b, "+") }
func NumSub(a, b *Number) (*Number, error) { return numBinOp(a, b, "-") }
func NumMul(a, b *Number) (*Number, error) { return numBinOp(a, b, "*") }

func numBinOp(a, b *Number, op string) (*Number, error) {
	switch promote(a, b) {
	case KindComplex:
		ac, bc := complexOf(a), complexOf(b)
		switch op {
		case "+":
			re, _ := NumAdd(ac.Re, bc.Re)
			im, _ := NumAdd(ac.Im, bc.Im)
			return NewComplex(re, im), nil
		case "-":
			re, _ := NumSub(ac.Re, bc.Re)
			im, _ := NumSub(ac.Im, bc.Im)
			return NewComplex(re, im), nil
		case "*":
			// (a+bi)(c+di) = (ac-bd) + (ad+bc)i
			ac1, _ := NumMul(ac.Re, bc.Re)
			bd, _ := NumMul(ac.Im, bc.Im)
			re, _ := NumSub(ac1, bd)
			ad, _ := NumMul(ac.Re, bc.Im)
			bc1, _ := NumMul(ac.Im, bc.Re)
			im, _ := NumAdd(ad, bc1)
			return NewComplex(re, im), nil
		}
	case KindInteger:
		x, y := bigOf(a), bigOf(b)
		r := new(big.Int)
		switch op {
		case "+":
			r.Add(x, y)
		case "-":
			r.Sub(x, y)
		case "*":
			r.Mul(x, y)
		}
		return normalizeInt(r), nil
	case KindRational, KindReal:
		x, y := asRationalOrReal(a), asRationalOrReal(b)
		r := new(apd.Decimal)
		var err error
		switch op {
		case "+":
			_, err = decCtx.Add(r, x, y)
		case "-":
			_, err = decCtx.Sub(r, x, y)
		case "*":
			_, err = decCtx.Mul(r, x, y)
		}
		if err != nil {
			return nil, err
		}
		if promote(a, b) == KindReal {
			return &Number{Kind: KindReal, Dec: r, Exact: a.Exact && b.Exact}, nil
		}
		one := apd.New(1, 0)
		return NewRational(r, one)
	}
	return nil, fmt.Errorf("unsupported numeric kind")
}

func asRationalOrReal(n *Number) *apd.Decimal { return n.AsDecimal() }

func complexOf(n *Number) *Number {
	if n.Kind == KindComplex {
		return n
	}
	return &Number{Kind: KindComplex, Re: n, Im: NewInt(0), Exact: n.Exact}
}

// NumDiv implements `/`: integer/integer with a non-zero divisor yields
// a reduced Rational (spec.md §4.1); any Real operand yields a Real;
// a zero divisor is rejected here with errDivByZero before apd is
// reached, so callers get this package's division-by-zero error rather
// than apd's own error type.
func NumDiv(a, b *Number) (*Number, error) {
	if b.IsZero() {
		return nil, errDivByZero
	}
	switch promote(a, b) {
	case KindComplex:
		// (a+bi)/(c+di) = (a+bi)(c-di) / (c^2+d^2)
		ac, bc := complexOf(a), complexOf(b)
		denom, _ := NumAdd(mustMul(bc.Re, bc.Re), mustMul(bc.Im, bc.Im))
		negIm, _ := NumSub(NewInt(0), bc.Im)
		conj := NewComplex(bc.Re, negIm)
		num, _ := NumMul(ac, conj)
		numC := complexOf(num)
		re, _ := NumDiv(numC.Re, denom)
		im, _ := NumDiv(numC.Im, denom)
		return NewComplex(re, im), nil
	case KindReal:
		x, y := a.AsDecimal(), b.AsDecimal()
		r := new(apd.Decimal)
		if _, err := decCtx.Quo(r, x, y); err != nil {
			return nil, err
		}
		return &Number{Kind: KindReal, Dec: r, Exact: a.Exact && b.Exact}, nil
	default: // Integer or Rational: exact rational division
		num := mustMulDec(numeratorOf(a), denominatorOf(b))
		den := mustMulDec(denominatorOf(a), numeratorOf(b))
		return NewRational(num, den)
	}
}

func mustMul(a, b *Number) *Number {
	r, _ := NumMul(a, b)
	return r
}

func mustMulDec(a, b *apd.Decimal) *apd.Decimal {
	r := new(apd.Decimal)
	decCtx.Mul(r, a, b)
	return r
}

func numeratorOf(n *Number) *apd.Decimal {
	if n.Kind == KindRational {
		return n.Num
	}
	return n.AsDecimal()
}

func denominatorOf(n *Number) *apd.Decimal {
	if n.Kind == KindRational {
		return n.Den
	}
	return apd.New(1, 0)
}

var errDivByZero = fmt.Errorf("division by zero")

// ErrDivByZero is the sentinel returned by NumDiv/Quotient/Remainder on
// a zero divisor; interp/errors wraps it into a DivisionByZero error.
func ErrDivByZero() error { return errDivByZero }

// NumCompare returns -1, 0, or 1 comparing a and b as real numbers. It is
// not defined for KindComplex operands (R7RS forbids ordering complex
// numbers); callers must check first.
func NumCompare(a, b *Number) int {
	if a.Kind == KindInteger && b.Kind == KindInteger {
		return bigOf(a).Cmp(bigOf(b))
	}
	x, y := a.AsDecimal(), b.AsDecimal()
	c, _ := decCtx.Cmp(x, y)
	return c
}

// NumEqExact compares two numbers for eqv?-style numeric equality:
// equal value AND equal exactness.
func NumEqExact(a, b *Number) bool {
	if a.Exact != b.Exact {
		return false
	}
	if a.Kind == KindComplex || b.Kind == KindComplex {
		ac, bc := complexOf(a), complexOf(b)
		return NumEqExact(ac.Re, bc.Re) && NumEqExact(ac.Im, bc.Im)
	}
	return NumCompare(a, b) == 0
}
