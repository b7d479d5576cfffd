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

// Package srfi bundles the curated SRFI-numbered procedure libraries
// named in spec.md §4.10, each as its own srfiNNN package, registered
// through one Registry the way CUE's pkg/native.Register installs
// every import-path-keyed Package into a shared reflection registry
// (adapted here, like interp/builtin.Register, to a direct map since no
// reflection is needed).
package srfi

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/builtin"
)

// Registry is a Package keyed by SRFI number, so an embedder can enable a
// curated subset (spec.md §6.2 Config.EnabledSRFIs) instead of the whole
// set.
type Registry struct {
	packages map[int]builtin.Package
}

func NewRegistry() *Registry {
	return &Registry{packages: map[int]builtin.Package{}}
}

func (r *Registry) Add(number int, pkg builtin.Package) *Registry {
	r.packages[number] = pkg
	return r
}

// RegisterAll installs every known SRFI package into global.
func (r *Registry) RegisterAll(global env.Frame) {
	for _, pkg := range r.packages {
		builtin.Register(global, pkg)
	}
}

// RegisterOnly installs only the named SRFI numbers, silently skipping
// any not present in the registry.
func (r *Registry) RegisterOnly(global env.Frame, numbers ...int) {
	for _, n := range numbers {
		if pkg, ok := r.packages[n]; ok {
			builtin.Register(global, pkg)
		}
	}
}
