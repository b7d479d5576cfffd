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
	"github.com/wisteria-scheme/wisteria/value"
)

// formWithExceptionHandler installs handler for the dynamic extent of
// thunk's call, per R7RS: handler runs with the *previous* handler
// current (raise pops before calling), and with-exception-handler's own
// entry is always removed once thunk returns, whether it returned
// normally or propagated an error — mirroring dynamic-wind's before/after
// discipline but for the single handler slot rather than a pair.
func formWithExceptionHandler(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 3 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "with-exception-handler: expected handler and thunk")
	}
	handlerV, err := m.Eval(l.Elems[1], e)
	if err != nil {
		return Outcome{}, err
	}
	thunkV, err := m.Eval(l.Elems[2], e)
	if err != nil {
		return Outcome{}, err
	}

	m.handlers = append(m.handlers, handlerV)
	result, thunkErr := m.ApplyProcedure(thunkV, nil)
	m.handlers = m.handlers[:len(m.handlers)-1]
	if thunkErr != nil {
		return Outcome{}, thunkErr
	}
	return done(result)
}

func formRaise(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "raise: expected exactly one condition")
	}
	condV, err := m.Eval(l.Elems[1], e)
	if err != nil {
		return Outcome{}, err
	}
	if len(m.handlers) == 0 {
		return Outcome{}, errors.New(errors.Runtime, l.Sp, "unhandled exception: %s", value.Write(condV))
	}
	handler := m.handlers[len(m.handlers)-1]
	saved := m.handlers
	m.handlers = m.handlers[:len(m.handlers)-1]
	_, callErr := m.ApplyProcedure(handler, []value.Value{condV})
	m.handlers = saved
	if callErr != nil {
		return Outcome{}, callErr
	}
	return Outcome{}, errors.New(errors.Runtime, l.Sp, "exception handler returned from non-continuable raise")
}

func formRaiseContinuable(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "raise-continuable: expected exactly one condition")
	}
	condV, err := m.Eval(l.Elems[1], e)
	if err != nil {
		return Outcome{}, err
	}
	if len(m.handlers) == 0 {
		return Outcome{}, errors.New(errors.Runtime, l.Sp, "unhandled exception: %s", value.Write(condV))
	}
	handler := m.handlers[len(m.handlers)-1]
	saved := m.handlers
	m.handlers = m.handlers[:len(m.handlers)-1]
	result, callErr := m.ApplyProcedure(handler, []value.Value{condV})
	m.handlers = saved
	if callErr != nil {
		return Outcome{}, callErr
	}
	return done(result)
}
