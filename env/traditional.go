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

import (
	"sync"

	"github.com/wisteria-scheme/wisteria/value"
)

// TraditionalFrame is the straightforward environment: each frame owns
// its own mutable map, frames are shared by pointer, and a mutex guards
// concurrent access from host functions that might run on another
// goroutine even though the evaluator itself is single-threaded.
type TraditionalFrame struct {
	mu       sync.RWMutex
	bindings map[string]value.Value
	parent   *TraditionalFrame
	frozen   bool
}

var _ Frame = (*TraditionalFrame)(nil)

// NewGlobal creates a root frame with no parent.
func NewGlobal() *TraditionalFrame {
	return &TraditionalFrame{bindings: map[string]value.Value{}}
}

// NewChild creates a frame whose parent is f.
func (f *TraditionalFrame) NewChild() *TraditionalFrame {
	return &TraditionalFrame{bindings: map[string]value.Value{}, parent: f}
}

func (f *TraditionalFrame) Parent() Frame {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *TraditionalFrame) Define(name string, v value.Value) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.frozen {
		return
	}
	f.bindings[name] = v
}

func (f *TraditionalFrame) Set(name string, v value.Value) error {
	for cur := f; cur != nil; cur = cur.parent {
		cur.mu.Lock()
		if cur.frozen {
			cur.mu.Unlock()
			return &ErrFrozen{Op: "set!", Name: name}
		}
		if _, ok := cur.bindings[name]; ok {
			cur.bindings[name] = v
			cur.mu.Unlock()
			return nil
		}
		cur.mu.Unlock()
	}
	if base, marked := StripMark(name); marked {
		return f.Set(base, v)
	}
	return &ErrUndefinedVariable{Name: name}
}

func (f *TraditionalFrame) Get(name string) (value.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.bindings[name]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	if base, marked := StripMark(name); marked {
		return f.Get(base)
	}
	return nil, false
}

func (f *TraditionalFrame) Extend(params []string, rest string, args []value.Value) (Frame, error) {
	child := f.NewChild()
	if err := bindArgs(child, params, rest, args); err != nil {
		return nil, err
	}
	return child, nil
}

func (f *TraditionalFrame) Freeze() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen = true
}

func (f *TraditionalFrame) IsFrozen() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frozen
}
