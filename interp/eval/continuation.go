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

// Captured is a first-class continuation (spec.md §4.6): a snapshot of
// the frame stack and dynamic-wind extent stack at the moment call/cc
// captured it. Because Frame values are themselves immutable once
// pushed (each Step call produces fresh frames rather than mutating the
// one it received), a shallow copy of the stack slices is a sound,
// independent snapshot — later mutation of the machine's live stack
// cannot be observed through a previously captured one, and the same
// Captured value can be invoked any number of times (spec.md Testable
// Property 5).
type Captured struct {
	m       *Machine
	frames  []Frame
	extents []*windEntry
}

func (c *Captured) Invoke(result value.Value) (value.Value, error) {
	m := c.m
	newStack := make([]Frame, len(c.frames))
	copy(newStack, c.frames)

	if err := m.transitionWind(c.extents); err != nil {
		return nil, err
	}
	m.stack = newStack
	return m.resume(result)
}

// callCCFrame receives the receiver procedure, captures the continuation
// as of this point, and applies the receiver to it.
type callCCFrame struct {
	env env.Frame
}

func (f *callCCFrame) Step(m *Machine, receiver value.Value) (Outcome, error) {
	framesCopy := make([]Frame, len(m.stack))
	copy(framesCopy, m.stack)
	extentsCopy := make([]*windEntry, len(m.extents))
	copy(extentsCopy, m.extents)

	k := &value.Procedure{Name: "continuation", Cont: &Captured{m: m, frames: framesCopy, extents: extentsCopy}}
	return m.applyOutcome(receiver, []value.Value{k}, f.env, token.NoSpan)
}

func formCallCC(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "call/cc: expected exactly one receiver")
	}
	return stepPush(l.Elems[1], e, &callCCFrame{env: e})
}
