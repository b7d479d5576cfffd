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

import "github.com/wisteria-scheme/wisteria/lang/ast"

// Arity describes how many arguments a procedure accepts.
type Arity struct {
	Min int
	// Max < 0 means variadic (any count >= Min).
	Max int
}

func Exact(n int) Arity   { return Arity{Min: n, Max: n} }
func AtLeast(n int) Arity { return Arity{Min: n, Max: -1} }
func Range(min, max int) Arity { return Arity{Min: min, Max: max} }

// Accepts reports whether n arguments satisfy a.
func (a Arity) Accepts(n int) bool {
	if n < a.Min {
		return false
	}
	return a.Max < 0 || n <= a.Max
}

// BuiltinFunc is the signature of a host-implemented procedure. args is
// owned by the caller and must not be retained past the call.
type BuiltinFunc func(args []Value) (Value, error)

// Procedure is the closed set of callable value shapes (spec.md §4.7).
type Procedure struct {
	// Exactly one of Lambda, Builtin, Host, or Cont is non-nil/non-zero.
	Lambda *Closure
	Builtin *BuiltinProc
	Host    *HostProc
	Cont    Continuation
	Name    string
}

func (*Procedure) isValue() {}

// Closure is a user-defined procedure created by `lambda`.
type Closure struct {
	Name     string // set by `define` for friendlier error messages
	Params   []string
	Rest     string // "" if not variadic
	Body     []ast.Expr
	Env      Environment
}

// BuiltinProc is a procedure implemented in Go and installed by the
// builtin/SRFI registry.
type BuiltinProc struct {
	Name  string
	Arity Arity
	Fn    BuiltinFunc
}

// HostProc is a procedure supplied by an embedding host through
// Interpreter.RegisterHostFunction.
type HostProc struct {
	Name  string
	Arity Arity
	Fn    BuiltinFunc
}

// Continuation is implemented by interp/eval.Captured. It is kept as an
// interface here, rather than a concrete struct, so that the value
// package does not need to import the evaluator's frame-stack machinery
// — the only thing a Value needs to know about a continuation is how to
// invoke it.
type Continuation interface {
	// Invoke abandons the current pending work and resumes the captured
	// stack with result as its delivered value(s).
	Invoke(result Value) (Value, error)
}

// Environment is implemented by env.Frame. Kept as an interface in this
// package for the same reason as Continuation: Closure must reference an
// environment without value importing env (which would cycle back, since
// environments store Values).
type Environment interface {
	Define(name string, v Value)
	Set(name string, v Value) error
	Get(name string) (Value, bool)
}
