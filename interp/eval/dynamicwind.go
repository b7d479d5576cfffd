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
)

// transitionWind moves the machine's dynamic-wind extent stack from its
// current state to target, as spec.md §4.6 describes: compute the common
// prefix, run the after thunks of extents being exited from innermost to
// outermost, then the before thunks of extents being entered from
// outermost to innermost. target is the extent stack captured alongside a
// continuation; this runs whenever that continuation is invoked, whether
// invocation winds inward, unwinds outward, or both (jumping sideways
// between two unrelated extents).
func (m *Machine) transitionWind(target []*windEntry) error {
	prefix := 0
	for prefix < len(m.extents) && prefix < len(target) && m.extents[prefix] == target[prefix] {
		prefix++
	}
	for i := len(m.extents) - 1; i >= prefix; i-- {
		if _, err := m.ApplyProcedure(m.extents[i].after, nil); err != nil {
			return err
		}
	}
	m.extents = m.extents[:prefix]
	for i := prefix; i < len(target); i++ {
		if _, err := m.ApplyProcedure(target[i].before, nil); err != nil {
			return err
		}
		m.extents = append(m.extents, target[i])
	}
	return nil
}

func formDynamicWind(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 4 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "dynamic-wind: expected before, thunk, and after")
	}
	beforeV, err := m.Eval(l.Elems[1], e)
	if err != nil {
		return Outcome{}, err
	}
	thunkV, err := m.Eval(l.Elems[2], e)
	if err != nil {
		return Outcome{}, err
	}
	afterV, err := m.Eval(l.Elems[3], e)
	if err != nil {
		return Outcome{}, err
	}

	if _, err := m.ApplyProcedure(beforeV, nil); err != nil {
		return Outcome{}, err
	}
	entry := &windEntry{before: beforeV, after: afterV}
	m.extents = append(m.extents, entry)

	result, thunkErr := m.ApplyProcedure(thunkV, nil)

	// If a continuation invoked inside thunkV already crossed out of this
	// extent, transitionWind has already run afterV and popped entry; only
	// run it ourselves if entry is still the live top of the stack, i.e.
	// thunkV returned to us normally (with or without an error to
	// propagate).
	if n := len(m.extents); n > 0 && m.extents[n-1] == entry {
		m.extents = m.extents[:n-1]
		if _, afterErr := m.ApplyProcedure(afterV, nil); afterErr != nil {
			if thunkErr != nil {
				return Outcome{}, thunkErr
			}
			return Outcome{}, afterErr
		}
	}

	if thunkErr != nil {
		return Outcome{}, thunkErr
	}
	return done(result)
}
