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

// Package ast defines the immutable expression tree produced by the
// reader and consumed by the macro expander and evaluator.
package ast

import "github.com/wisteria-scheme/wisteria/lang/token"

// Expr is any node of the AST. The reader produces Expr trees; nothing
// downstream of the reader mutates them — macro expansion and evaluation
// build new trees/values rather than editing nodes in place.
type Expr interface {
	Span() token.Span
	exprNode()
}

type base struct {
	Sp token.Span
}

func (b base) Span() token.Span { return b.Sp }
func (base) exprNode()          {}

// LitKind distinguishes the self-evaluating literal shapes.
type LitKind int

const (
	LitBoolean LitKind = iota
	LitNumber
	LitString
	LitCharacter
	LitNil
)

// Literal is a self-evaluating datum: a boolean, number, string,
// character, or the empty list.
type Literal struct {
	base
	Kind LitKind
	// Value holds the parsed value.Value for this literal's kind, stored
	// as interface{} here to avoid an import cycle between ast and value;
	// the evaluator's ast_converter knows how to recover it. Number
	// literals additionally keep their exact external text in Text so
	// exactness (#e/#i, rationals) is not lost to a premature float
	// conversion.
	Value interface{}
	Text  string
}

// Variable is a reference to a bound identifier.
type Variable struct {
	base
	Name string
}

// List is a parenthesized form: either a special-form use, a macro use,
// or a procedure application, disambiguated later by the evaluator/macro
// expander against the symbol in Elems[0].
type List struct {
	base
	Elems []Expr
}

// DottedList is a parenthesized form ending in `. tail`, e.g. the pattern
// `(a b . c)` — only meaningful inside `quote`/`quasiquote`; a dotted
// list is never itself a valid call form.
type DottedList struct {
	base
	Elems []Expr
	Tail  Expr
}

// Vector is a `#(...)` literal.
type Vector struct {
	base
	Elems []Expr
}

// Quote is `'expr` / `(quote expr)`.
type Quote struct {
	base
	Expr Expr
}

// Quasiquote is `` `expr `` / `(quasiquote expr)`.
type Quasiquote struct {
	base
	Expr Expr
}

// Unquote is `,expr` / `(unquote expr)`, valid only inside Quasiquote.
type Unquote struct {
	base
	Expr Expr
}

// UnquoteSplicing is `,@expr` / `(unquote-splicing expr)`, valid only
// inside Quasiquote in list-element position.
type UnquoteSplicing struct {
	base
	Expr Expr
}

func NewLiteral(sp token.Span, kind LitKind, value interface{}, text string) *Literal {
	return &Literal{base: base{sp}, Kind: kind, Value: value, Text: text}
}

func NewVariable(sp token.Span, name string) *Variable {
	return &Variable{base: base{sp}, Name: name}
}

func NewList(sp token.Span, elems []Expr) *List {
	return &List{base: base{sp}, Elems: elems}
}

func NewDottedList(sp token.Span, elems []Expr, tail Expr) *DottedList {
	return &DottedList{base: base{sp}, Elems: elems, Tail: tail}
}

func NewVector(sp token.Span, elems []Expr) *Vector {
	return &Vector{base: base{sp}, Elems: elems}
}

func NewQuote(sp token.Span, e Expr) *Quote                     { return &Quote{base{sp}, e} }
func NewQuasiquote(sp token.Span, e Expr) *Quasiquote            { return &Quasiquote{base{sp}, e} }
func NewUnquote(sp token.Span, e Expr) *Unquote                  { return &Unquote{base{sp}, e} }
func NewUnquoteSplicing(sp token.Span, e Expr) *UnquoteSplicing  { return &UnquoteSplicing{base{sp}, e} }

// HeadSymbol returns the leading symbol of a List, if any — used by the
// evaluator and macro expander to decide whether a form is a special
// form, a macro use, or a plain application.
func HeadSymbol(e Expr) (string, bool) {
	l, ok := e.(*List)
	if !ok || len(l.Elems) == 0 {
		return "", false
	}
	v, ok := l.Elems[0].(*Variable)
	if !ok {
		return "", false
	}
	return v.Name, true
}
