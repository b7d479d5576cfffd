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

// Package promise implements SRFI 45's force/delay/lazy semantics
// (spec.md §4.8) against the evaluator in interp/eval.
package promise

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Force resolves p to its final, non-promise value. A promise chain
// produced by a tail sequence of lazy/delay-force calls is walked with a
// Go loop rather than recursion, and each step rewrites the outermost
// promise in place to point at the inner one's state — the classic SRFI
// 45 "share the memo" trick that collapses an iterative lazy loop to O(1)
// space: once collapsed, every promise in the original chain sees the
// same final value without each having held its own copy.
func Force(m *eval.Machine, p *value.Promise) (value.Value, error) {
	cur := p
	chain := []*value.Promise{cur}

	for {
		if cur.State == value.PromiseEager {
			result := cur.Val
			memoizeChain(chain, result)
			return result, nil
		}

		v, err := m.Eval(cur.Expr, cur.Env.(env.Frame))
		if err != nil {
			return nil, err
		}

		inner, isPromise := v.(*value.Promise)
		if !isPromise {
			memoizeChain(chain, v)
			return v, nil
		}

		if inner.State == value.PromiseEager {
			memoizeChain(chain, inner.Val)
			return inner.Val, nil
		}

		// p takes over inner's pending computation and inner is redirected
		// to evaluate to p, so the two share p's memo and chain never grows.
		if inner != p {
			p.Expr, p.Env = inner.Expr, inner.Env
			inner.Expr = ast.NewLiteral(token.NoSpan, ast.LitBoolean, p, "")
		}
		cur = p
	}
}

// memoizeChain sets every promise in chain to the forced state with the
// final value. Force's chain holds only the outermost promise; the inner
// promises it passed through were redirected to that one, so re-forcing
// any of them evaluates to it and then finds its memo.
func memoizeChain(chain []*value.Promise, v value.Value) {
	for _, p := range chain {
		p.State = value.PromiseEager
		p.Val = v
		p.Expr = nil
		p.Env = nil
	}
}
