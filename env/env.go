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

// Package env implements the lexically chained environment described in
// spec.md §3.2/§4.3: a frame maps symbol to value, frames chain to a
// parent, and two coexisting strategies (traditional mutable frames,
// copy-on-write frames) satisfy one shared contract so callers need not
// care which is in use.
package env

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wisteria-scheme/wisteria/value"
)

// Frame is the contract both environment strategies satisfy. It is a
// superset of value.Environment (which only needs Define/Set/Get to let
// a Closure carry its captured frame without an import cycle).
type Frame interface {
	value.Environment

	Parent() Frame
	// Extend builds a child frame binding params positionally to args;
	// if rest != "", trailing arguments beyond len(params) are bound to
	// rest as a proper list. Returns an Arity error on mismatch.
	Extend(params []string, rest string, args []value.Value) (Frame, error)
	Freeze()
	IsFrozen() bool
}

// ErrUndefinedVariable is returned by Set when name is bound nowhere in
// the chain.
type ErrUndefinedVariable struct{ Name string }

func (e *ErrUndefinedVariable) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

// ErrFrozen is returned by Set against a frozen frame. Define has no
// error result: on a frozen frame it leaves the frame unchanged and
// reports nothing.
type ErrFrozen struct{ Op, Name string }

func (e *ErrFrozen) Error() string {
	return fmt.Sprintf("cannot %s %q: frame is frozen", e.Op, e.Name)
}

// ErrArity is returned by Extend on a parameter/argument count mismatch.
type ErrArity struct {
	Name           string
	Expected, Got  int
	Variadic       bool
}

func (e *ErrArity) Error() string {
	if e.Variadic {
		return fmt.Sprintf("%s: expected at least %d arguments, got %d", e.Name, e.Expected, e.Got)
	}
	return fmt.Sprintf("%s: expected %d arguments, got %d", e.Name, e.Expected, e.Got)
}

// markSep tags a hygiene-renamed identifier (spec.md §4.9/§9, "a minimal
// mark-and-rename scheme"): it is a control character the reader never
// produces from surface syntax, so a marked name can never collide with
// an identifier a user actually typed.
const markSep = '\x1d'

// Mark tags name with the fresh "color" allocated for one macro
// expansion, used by interp/macro to rename identifiers a template
// introduces so they cannot capture, or be captured by, an identically
// spelled identifier at the macro's use site.
func Mark(name string, color int) string {
	return name + string(markSep) + strconv.Itoa(color)
}

// StripMark reverses Mark. Frame lookups fall back to the stripped name
// when the marked name resolves nowhere in the chain — this is the
// "lookups strip colors... before comparing" half of spec.md §9's
// hygiene scheme: an identifier the template merely *refers to* (a
// keyword, a global procedure, anything from the macro's definition
// environment) still resolves correctly, while an identifier the
// template actually *binds* shadows only under its own marked name.
func StripMark(name string) (string, bool) {
	i := strings.LastIndexByte(name, markSep)
	if i < 0 {
		return name, false
	}
	return name[:i], true
}

func bindArgs(f Frame, params []string, rest string, args []value.Value) error {
	if rest == "" {
		if len(args) != len(params) {
			return &ErrArity{Expected: len(params), Got: len(args)}
		}
	} else if len(args) < len(params) {
		return &ErrArity{Expected: len(params), Got: len(args), Variadic: true}
	}
	for i, p := range params {
		f.Define(p, args[i])
	}
	if rest != "" {
		f.Define(rest, value.FromSlice(args[len(params):]))
	}
	return nil
}
