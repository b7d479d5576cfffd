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

// Package eval implements the CPS evaluator of spec.md §4.5 (Evaluator)
// together with its continuation representation (§4.6, Continuation).
// The two are one Go package because spec.md describes the continuation
// as internal evaluator state — "a stack of frames" captured and restored
// by the same machine that drives ordinary evaluation — rather than as an
// independently reusable abstraction.
//
// The evaluator never recurses on the Go call stack to evaluate a tail
// position. Instead every compound form either produces a value directly
// or hands the driver loop a new (expression, environment) pair to
// continue with; pending non-tail work is reified as a Frame pushed onto
// an explicit stack living on the Machine, not on goroutine stack frames.
// This gives three things for free: O(1) host-stack growth for any tail
// loop (spec.md Testable Property 4), a capturable continuation (copying
// the Frame slice *is* capturing the continuation), and a single place
// (pushFrame) to enforce the configurable recursion
// cap that produces StackOverflow for runaway non-tail recursion.
package eval

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/store"
	"github.com/wisteria-scheme/wisteria/value"
)

// Config tunes evaluator limits and strategy choices that spec.md leaves
// as named knobs rather than fixed constants.
type Config struct {
	// MaxFrameDepth bounds the pending-frame stack, standing in for the
	// "configurable maximum non-tail recursion depth" of spec.md §4.5.5.
	// Tail calls never grow the stack, so only genuine non-tail recursion
	// can hit this.
	MaxFrameDepth int

	// ExactIntegerOverflow selects spec.md §4.1's strict fixed-width
	// behavior ("Integer overflow on fixed-width ops fails with
	// RuntimeError") for +, -, * on exact integers. The default (false)
	// is the auto-promote-to-bignum behavior value.Number already
	// implements unconditionally; setting this makes interp/builtin's
	// arithmetic procedures reject an operation that would have had to
	// promote, instead of silently widening.
	ExactIntegerOverflow bool
}

func DefaultConfig() Config {
	return Config{MaxFrameDepth: 10000}
}

// Frame is one unit of pending work: "when the computation below me
// produces a value, here is what to do with it." Compound forms push a
// Frame to receive the value of a sub-expression they are not done with
// yet; application of a procedure in tail position never pushes one,
// which is precisely what makes it a tail call.
type Frame interface {
	Step(m *Machine, v value.Value) (Outcome, error)
}

// Outcome is what dispatching an expression, or stepping a Frame with an
// incoming value, produces. Exactly one of two shapes holds: IsValue
// means the computation is immediately finished and v should be fed to
// whatever Frame is now on top of the stack (or returned to the caller of
// Eval if the stack is empty); otherwise Next/NextEnv name the expression
// the driver should evaluate next, continuing the same loop iteration
// (this is the tail-call path — no Go recursion, no frame push implied).
// Push, if non-nil, is pushed onto the frame stack before the driver acts
// on the rest of the Outcome; it is how a compound form says "evaluate
// this sub-expression, and when you have its value, come back to me."
type Outcome struct {
	IsValue bool
	Value   value.Value

	Next    ast.Expr
	NextEnv env.Frame

	Push Frame
}

func done(v value.Value) (Outcome, error)       { return Outcome{IsValue: true, Value: v}, nil }
func doneErr(err error) (Outcome, error)        { return Outcome{}, err }
func step(next ast.Expr, e env.Frame) (Outcome, error) {
	return Outcome{Next: next, NextEnv: e}, nil
}
func stepPush(next ast.Expr, e env.Frame, f Frame) (Outcome, error) {
	return Outcome{Next: next, NextEnv: e, Push: f}, nil
}

// windEntry is one entry of the dynamic-wind extent stack (spec.md §4.6).
type windEntry struct {
	before, after value.Value // zero-arg procedures
}

// Expander is implemented by interp/macro.Expander. Kept as an interface
// here so eval does not need macro's pattern-matching internals, only its
// entry point.
type Expander interface {
	// IsMacro reports whether name is bound as a syntax keyword visible
	// from e.
	IsMacro(name string, e env.Frame) bool
	// Expand performs one macro-expansion step of the use form.
	Expand(name string, use *ast.List, e env.Frame) (ast.Expr, error)
	// DefineSyntax installs name as a syntax-rules transformer visible in
	// e, used by define-syntax/let-syntax/letrec-syntax.
	DefineSyntax(name string, transformer ast.Expr, e env.Frame) error
}

// Machine is one evaluation thread of control: a frame stack, a dynamic-
// wind extent stack, and references to the shared store and macro
// expander. A Machine is not safe for concurrent use by multiple
// goroutines — spec.md's Non-goals explicitly exclude intra-evaluation
// thread parallelism.
type Machine struct {
	Config Config
	Store  *store.Store
	Macros Expander

	stack    []Frame
	extents  []*windEntry
	handlers []value.Value

	// Global is the top-level frame new top-level forms are evaluated in,
	// and is also the root that RegisterHostFunction installs into.
	Global env.Frame
}

func New(cfg Config, st *store.Store, global env.Frame) *Machine {
	return &Machine{Config: cfg, Store: st, Global: global}
}

func (m *Machine) pushFrame(f Frame) error {
	if f == nil {
		return nil
	}
	m.stack = append(m.stack, f)
	if len(m.stack) > m.Config.MaxFrameDepth {
		return errors.Overflow(token.NoSpan, m.Config.MaxFrameDepth)
	}
	return nil
}

func (m *Machine) popFrame() Frame {
	n := len(m.stack)
	f := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return f
}

// Eval runs expr to completion in envr, returning its value. This is the
// sole driver loop: every special form, application, and continuation
// invocation in the package ultimately bottoms out by returning an
// Outcome to this loop rather than calling itself recursively.
func (m *Machine) Eval(expr ast.Expr, envr env.Frame) (value.Value, error) {
	return m.drive(expr, envr, false, nil)
}

// resume feeds v into the machine's current frame stack (used both by a
// freshly-dispatched literal/variable and by continuation invocation,
// which first replaces m.stack wholesale and then resumes with the
// delivered value).
func (m *Machine) resume(v value.Value) (value.Value, error) {
	return m.drive(nil, nil, true, v)
}

func (m *Machine) drive(expr ast.Expr, envr env.Frame, haveValue bool, seed value.Value) (value.Value, error) {
	cur, curEnv := expr, envr
	haveV, v := haveValue, seed

	for {
		var out Outcome
		var err error
		if !haveV {
			out, err = m.dispatch(cur, curEnv)
			if err != nil {
				return nil, err
			}
			if out.Push != nil {
				if perr := m.pushFrame(out.Push); perr != nil {
					return nil, perr
				}
			}
			if !out.IsValue {
				cur, curEnv = out.Next, out.NextEnv
				continue
			}
			v = out.Value
		}
		haveV = false

		// Feed v up through the stack until a frame redirects us to a new
		// expression, or the stack empties out (computation finished).
		for {
			if len(m.stack) == 0 {
				return v, nil
			}
			top := m.popFrame()
			out2, err := top.Step(m, v)
			if err != nil {
				return nil, err
			}
			if out2.Push != nil {
				if perr := m.pushFrame(out2.Push); perr != nil {
					return nil, perr
				}
			}
			if out2.IsValue {
				v = out2.Value
				continue
			}
			cur, curEnv = out2.Next, out2.NextEnv
			break
		}
	}
}
