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

// delay and lazy/delay-force both build an unforced promise over their
// body without evaluating it; the distinction SRFI 45 draws between them
// is a contract on what the body is allowed to do (delay's body should
// produce an ordinary value, lazy's may tail-produce another promise to
// be chained), not a different runtime representation — interp/promise.
// Force treats both uniformly, looping through chains of either.
func formDelay(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "delay: expected exactly one expression")
	}
	return done(value.NewLazy(l.Elems[1], e))
}

func formLazy(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) != 2 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "lazy: expected exactly one expression")
	}
	return done(value.NewLazy(l.Elems[1], e))
}
