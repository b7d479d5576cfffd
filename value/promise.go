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

// PromiseState is the SRFI 45 state machine: a promise starts Lazy, and
// once forced becomes Eager and stays that way (memoization).
type PromiseState int

const (
	PromiseLazy PromiseState = iota
	PromiseEager
)

// Promise is a delayed, memoized computation (spec.md §4.8). Forcing a
// Lazy promise whose result is itself a promise must share this struct's
// identity with the inner promise's (see interp/promise.Force) so that
// an iterative lazy loop collapses in O(1) space instead of growing a
// chain of promise wrappers.
type Promise struct {
	State PromiseState
	Expr  ast.Expr
	Env   Environment
	Val   Value
}

func (*Promise) isValue() {}

// NewLazy constructs an unforced promise over expr evaluated in env.
func NewLazy(expr ast.Expr, env Environment) *Promise {
	return &Promise{State: PromiseLazy, Expr: expr, Env: env}
}

// NewEager constructs an already-forced promise wrapping v, as produced
// by `make-promise` on a non-promise value.
func NewEager(v Value) *Promise {
	return &Promise{State: PromiseEager, Val: v}
}
