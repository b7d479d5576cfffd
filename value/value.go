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

// Package value implements the Scheme value model: a tagged union of
// runtime values, cons-cell sharing with mutation, and the three
// equality predicates required by R7RS.
package value


// Value is any Scheme datum. It is a closed set of concrete types below;
// the evaluator and builtins dispatch on it with type switches rather
// than through an open interface method set, so that adding a variant is
// a compile-time-checkable, exhaustive change rather than a silent gap.
type Value interface {
	isValue()
}

// Undefined is the unspecified value returned by forms whose result R7RS
// leaves unspecified (set!, define, ...).
type Undefined struct{}

func (Undefined) isValue() {}

// Nil is the unique empty list. It is not a Pair.
type Nil struct{}

func (Nil) isValue() {}

// EofObject is the unique end-of-file marker returned by read and the
// char/line input procedures on an exhausted port.
type EofObject struct{}

func (EofObject) isValue() {}

// EnvironmentHandle is the opaque first-class handle SRFI 97's
// interaction-environment returns. spec.md's Non-goals exclude a general
// first-class environment type; this is the one fixed accessor SRFI 97
// names, so it wraps an Environment without exposing Define/Set/Get to
// ordinary Scheme code (no builtin accepts one as anything but an opaque
// token to pass back to eval).
type EnvironmentHandle struct {
	Env Environment
}

func (*EnvironmentHandle) isValue() {}

// Boolean is #t / #f.
type Boolean bool

func (Boolean) isValue() {}

// Character is a single Unicode scalar value, #\x.
type Character rune

func (Character) isValue() {}

// Symbol is an interned identifier. Two Symbols with the same Name are
// eq? because Intern always returns the same *Symbol for the same text.
type Symbol struct {
	Name string
}

func (*Symbol) isValue() {}

var symbolTable = map[string]*Symbol{}

// Intern returns the unique *Symbol for name, creating it on first use.
func Intern(name string) *Symbol {
	if s, ok := symbolTable[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	symbolTable[name] = s
	return s
}

// String is a mutable Scheme string (R7RS strings support string-set!).
type String struct {
	Runes []rune
}

func NewString(s string) *String { return &String{Runes: []rune(s)} }

func (s *String) String() string { return string(s.Runes) }

func (*String) isValue() {}

// Pair is a mutable cons cell. Multiple Values may hold the same *Pair
// pointer; mutating Car/Cdr through one reference is visible through all
// of them, and eq? on pairs is Go pointer identity.
type Pair struct {
	Car Value
	Cdr Value
}

func Cons(a, d Value) *Pair { return &Pair{Car: a, Cdr: d} }

func (*Pair) isValue() {}

// Vector is an ordered, mutable, fixed-length sequence.
type Vector struct {
	Elems []Value
}

func NewVector(elems []Value) *Vector { return &Vector{Elems: elems} }

func (*Vector) isValue() {}

// Values is the multi-value container produced by the `values` form. A
// Values of length 1 must never be observed as such outside
// call-with-values — the evaluator never builds one (see formValues in
// interp/eval/forms.go and continuation invocation in
// interp/eval/apply.go), so this type only appears transiently.
type Values struct {
	Elems []Value
}

func (*Values) isValue() {}

// Record is an instance of a user-defined record type (SRFI 9).
type Record struct {
	Type   *RecordType
	Fields []Value
}

func (*Record) isValue() {}

// RecordType describes a `define-record-type` type.
type RecordType struct {
	Name       string
	FieldNames []string
}

// Box is the SRFI 111 single-mutable-cell container.
type Box struct {
	Val Value
}

func (*Box) isValue() {}

// Port is an input or output port: either a string port or a handle onto
// an os.File-like stream supplied by the host.
type Port struct {
	Name     string
	IsInput  bool
	IsOutput bool
	IsBinary bool
	// Buf backs string ports (open-input-string / open-output-string).
	Buf *[]byte
	// Pos is the current read offset for an input string port.
	Pos int
	// Closed marks a port unusable for further reads/writes.
	Closed bool
}

func (*Port) isValue() {}

// ErrorObject is the condition object produced by `error` and by
// raise-ing a runtime fault; `guard`/`with-exception-handler` bind it.
// It carries enough of interp/errors.SchemeError's shape to round-trip
// through user code without value depending on interp/errors.
type ErrorObject struct {
	Message   string
	Irritants []Value
	Kind      string
}

func (*ErrorObject) isValue() {}
