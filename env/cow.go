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

package env

import "github.com/wisteria-scheme/wisteria/value"

// COWFrame holds an immutable parent reference and only its own local
// additions. Writing to an inherited binding pulls it into the local map
// (shadowing it) rather than mutating the parent, so a frame may be
// frozen and safely aliased across many closures without copying the
// whole chain.
type COWFrame struct {
	local  map[string]value.Value
	parent *COWFrame
	frozen bool
}

var _ Frame = (*COWFrame)(nil)

func NewCOWGlobal() *COWFrame {
	return &COWFrame{local: map[string]value.Value{}}
}

func (f *COWFrame) NewChild() *COWFrame {
	return &COWFrame{local: map[string]value.Value{}, parent: f}
}

func (f *COWFrame) Parent() Frame {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *COWFrame) Define(name string, v value.Value) {
	if f.frozen {
		return
	}
	f.local[name] = v
}

// Set walks the chain for the owning frame. Per spec.md §4.3, on a COW
// frame this "pulls the binding into the local frame" — set! never
// mutates an ancestor's map in place; instead the binding is copied down
// into the frame where set! was called, shadowing the ancestor from this
// frame downward only.
func (f *COWFrame) Set(name string, v value.Value) error {
	if f.frozen {
		if _, ok := f.lookup(name); ok {
			return &ErrFrozen{Op: "set!", Name: name}
		}
	}
	if _, ok := f.local[name]; ok {
		f.local[name] = v
		return nil
	}
	for cur := f.parent; cur != nil; cur = cur.parent {
		if _, ok := cur.local[name]; ok {
			f.local[name] = v
			return nil
		}
	}
	if base, marked := StripMark(name); marked {
		return f.Set(base, v)
	}
	return &ErrUndefinedVariable{Name: name}
}

func (f *COWFrame) Get(name string) (value.Value, bool) {
	return f.lookup(name)
}

func (f *COWFrame) lookup(name string) (value.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.local[name]; ok {
			return v, true
		}
	}
	if base, marked := StripMark(name); marked {
		return f.lookup(base)
	}
	return nil, false
}

func (f *COWFrame) Extend(params []string, rest string, args []value.Value) (Frame, error) {
	child := f.NewChild()
	if err := bindArgs(child, params, rest, args); err != nil {
		return nil, err
	}
	return child, nil
}

func (f *COWFrame) Freeze() { f.frozen = true }

func (f *COWFrame) IsFrozen() bool { return f.frozen }
