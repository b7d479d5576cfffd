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

// Package errors implements the structured error model of spec.md §3.5
// and §7: a tagged Kind, a source span, and a stack of frames pushed as
// the evaluator unwinds through call boundaries.
package errors

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"

	"github.com/wisteria-scheme/wisteria/lang/token"
)

// Kind is the error taxonomy of spec.md §7.
type Kind int

const (
	Lexer Kind = iota
	Parse
	Syntax
	Macro
	UndefinedVariable
	Arity
	Type
	DivisionByZero
	StackOverflow
	Runtime
	Io
)

func (k Kind) String() string {
	switch k {
	case Lexer:
		return "lexer-error"
	case Parse:
		return "parse-error"
	case Syntax:
		return "syntax-error"
	case Macro:
		return "macro-error"
	case UndefinedVariable:
		return "undefined-variable"
	case Arity:
		return "arity-error"
	case Type:
		return "type-error"
	case DivisionByZero:
		return "division-by-zero"
	case StackOverflow:
		return "stack-overflow"
	case Io:
		return "io-error"
	default:
		return "runtime-error"
	}
}

// FrameKind classifies a stack frame pushed during unwinding.
type FrameKind int

const (
	FrameFunction FrameKind = iota
	FrameBuiltin
	FrameSpecialForm
	FrameMacro
	FrameTopLevel
)

// StackFrame records one call boundary crossed while unwinding.
type StackFrame struct {
	Name string
	Span token.Span
	Kind FrameKind
}

// SchemeError is the concrete error type for every kind in the taxonomy.
// It implements error (via Error) and supports golang.org/x/xerrors
// wrapping so a lower-level cause (e.g. a store.ErrInvalidLocation) can
// be attached without losing its identity to errors.Is/As.
type SchemeError struct {
	Kind    Kind
	Message string
	Span    token.Span
	Stack   []StackFrame
	Cause   error
}

func New(kind Kind, span token.Span, format string, args ...interface{}) *SchemeError {
	return &SchemeError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func Wrap(kind Kind, span token.Span, cause error, format string, args ...interface{}) *SchemeError {
	return &SchemeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Cause:   xerrors.Errorf("%s: %w", fmt.Sprintf(format, args...), cause),
	}
}

func (e *SchemeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.Span.Start.IsValid() {
		fmt.Fprintf(&b, " (at %s)", e.Span.Start)
	}
	for _, f := range e.Stack {
		fmt.Fprintf(&b, "\n  in %s", f.Name)
	}
	return b.String()
}

func (e *SchemeError) Unwrap() error { return e.Cause }

// PushFrame returns e with an additional StackFrame recorded, leaving the
// original unmodified (errors are treated as immutable once constructed,
// matching the value model's general preference for building new state
// rather than mutating shared state in place).
func (e *SchemeError) PushFrame(f StackFrame) *SchemeError {
	cp := *e
	cp.Stack = append(append([]StackFrame{}, e.Stack...), f)
	return &cp
}

// Undefined reports an unbound variable (used by both get and set!).
func Undefined(span token.Span, name string) *SchemeError {
	return New(UndefinedVariable, span, "undefined variable: %s", name)
}

// ArityMismatch reports a procedure call with the wrong argument count.
func ArityMismatch(span token.Span, name string, expected string, got int) *SchemeError {
	return New(Arity, span, "%s: expected %s arguments, got %d", name, expected, got)
}

// WrongType reports an operation applied to a value of the wrong kind.
func WrongType(span token.Span, op, expected string, got interface{}) *SchemeError {
	return New(Type, span, "%s: expected %s, got %T", op, expected, got)
}

// DivByZero reports `/`, `quotient`, or `remainder` with a zero divisor.
func DivByZero(span token.Span, op string) *SchemeError {
	return New(DivisionByZero, span, "%s: division by zero", op)
}

// Overflow reports a non-tail recursion exceeding the configured depth
// cap.
func Overflow(span token.Span, limit int) *SchemeError {
	return New(StackOverflow, span, "maximum recursion depth (%d) exceeded", limit)
}
