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

// Package interp wires the value model, environment, store, evaluator,
// macro expander, and builtin procedure packages into the single
// embedding surface spec.md §6 (Embedding API) describes: a host
// constructs one Interpreter, feeds it source text, and optionally
// extends it with its own procedures and memory policy.
package interp

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/builtin"
	"github.com/wisteria-scheme/wisteria/interp/eval"
	"github.com/wisteria-scheme/wisteria/interp/macro"
	"github.com/wisteria-scheme/wisteria/lang/reader"
	"github.com/wisteria-scheme/wisteria/srfi"
	"github.com/wisteria-scheme/wisteria/store"
	"github.com/wisteria-scheme/wisteria/value"
)

// Interpreter is a complete, independently embeddable Scheme evaluation
// context: its own global frame, store, and macro registry. Two
// Interpreters share nothing, the same isolation a cue.Runtime gives
// each loaded CUE instance.
type Interpreter struct {
	global env.Frame
	store  *store.Store
	macros *macro.Expander
	m      *eval.Machine
}

// New constructs an Interpreter with the standard library installed:
// every interp/builtin Package plus the control procedures (apply, map,
// for-each, force) that need a handle back onto the evaluator.
func New() *Interpreter {
	return newWith(store.New(), eval.DefaultConfig())
}

// NewWithMemoryLimit is like New but starts the store with a memory
// limit already in force (spec.md §6.2 set_memory_limit, applied at
// construction instead of after the fact).
func NewWithMemoryLimit(bytes int) *Interpreter {
	i := newWith(store.NewWithMemoryLimit(bytes), eval.DefaultConfig())
	return i
}

// NewWithConfig is like New but lets an embedder override evaluator
// limits and strategy choices (spec.md §6.2), such as opting into
// Config.ExactIntegerOverflow's strict spec.md §4.1 fixed-width
// overflow behavior in place of the default auto-promote-to-bignum one.
func NewWithConfig(cfg eval.Config) *Interpreter {
	return newWith(store.New(), cfg)
}

func newWith(st *store.Store, cfg eval.Config) *Interpreter {
	global := env.NewGlobal()
	m := eval.New(cfg, st, global)
	expander := macro.NewExpander()
	m.Macros = expander

	i := &Interpreter{global: global, store: st, macros: expander, m: m}

	builtin.Register(global,
		builtin.Arithmetic{ExactIntegerOverflow: cfg.ExactIntegerOverflow},
		builtin.Pairs{},
		builtin.Predicates{},
		builtin.Strings{},
		builtin.Vectors{},
		builtin.Control{M: m},
		builtin.IO{},
	)

	srfi.NewRegistry().
		Add(1, srfi.List1{M: m}).
		Add(69, srfi.HashTable69{M: m}).
		Add(97, srfi.Environment97{Global: global}).
		Add(111, srfi.Box111{}).
		Add(113, srfi.Containers113{}).
		Add(128, srfi.Comparator128{M: m}).
		Add(130, srfi.Cursors130{}).
		Add(132, srfi.Sort132{M: m}).
		Add(133, srfi.Vectors133{M: m}).
		Add(141, srfi.Division141{}).
		RegisterAll(global)

	return i
}

// EvalSource reads every datum out of src in turn and evaluates it in
// the global frame, returning the value of the last one (spec.md §6.1
// eval_source). An empty src evaluates to Undefined.
func (i *Interpreter) EvalSource(src, filename string) (value.Value, error) {
	exprs, err := reader.ReadAll(src, filename)
	if err != nil {
		return nil, err
	}
	var last value.Value = value.Undefined{}
	for _, expr := range exprs {
		v, err := i.m.Eval(expr, i.global)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// RegisterHostFunction installs a Go function as a global procedure
// binding, the embedding half of spec.md §6.1's native-function bridge.
func (i *Interpreter) RegisterHostFunction(name string, arity value.Arity, fn func(args []value.Value) (value.Value, error)) {
	i.global.Define(name, &value.Procedure{
		Name: name,
		Host: &value.HostProc{Name: name, Arity: arity, Fn: fn},
	})
}

// SetMemoryLimit changes the store's memory limit (spec.md §6.2).
func (i *Interpreter) SetMemoryLimit(bytes int) {
	i.store.SetMemoryLimit(bytes)
}

// CollectGarbage runs one store collection cycle (spec.md §6.2
// collect_garbage). It passes the store no root set, so the cycle only
// advances the store's GC counters: no cell is marked or freed, and the
// global frame's bindings are not walked.
func (i *Interpreter) CollectGarbage() {
	i.store.CollectGarbage(nil)
}

// Statistics reports the store's allocator counters (spec.md §6.2
// statistics()).
func (i *Interpreter) Statistics() store.Statistics {
	return i.store.Stats
}

// Global exposes the top-level frame so a host can Define bindings
// directly when RegisterHostFunction's Procedure wrapping isn't wanted.
func (i *Interpreter) Global() env.Frame { return i.global }

// Machine exposes the underlying evaluator for embedding code that needs
// to call a Scheme procedure value directly (e.g. a host callback
// invoking a Scheme-defined handler).
func (i *Interpreter) Machine() *eval.Machine { return i.m }
