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

// Package builtin implements the registry and core procedure set of
// spec.md §4.9 (Builtin Procedures): a Package is a named bundle of
// BuiltinFunc entries, and Register installs a Package's entries as
// top-level bindings, the Scheme-domain analogue of CUE's
// import-path-keyed native.Package registry — adapted from reflection
// over arbitrary Go methods (unneeded here, since a BuiltinFunc already
// matches value.BuiltinFunc's signature exactly) to a direct name-to-
// function map.
package builtin

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/value"
)

// Package is one named bundle of builtin procedures.
type Package interface {
	Name() string
	Builtins() map[string]*value.BuiltinProc
}

// Register installs every procedure of every package as a binding in
// global, later packages overriding earlier ones on a name collision.
func Register(global env.Frame, pkgs ...Package) {
	for _, p := range pkgs {
		for name, b := range p.Builtins() {
			global.Define(name, &value.Procedure{Name: name, Builtin: b})
		}
	}
}

func proc(name string, arity value.Arity, fn value.BuiltinFunc) *value.BuiltinProc {
	return &value.BuiltinProc{Name: name, Arity: arity, Fn: fn}
}
