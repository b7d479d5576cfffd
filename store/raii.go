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

package store

import (
	"runtime"
	"sync"

	"github.com/wisteria-scheme/wisteria/value"
)

// RAIIStore is the alternative allocator strategy from spec.md §4.2/§9:
// instead of explicit Incref/Decref, a Handle owns its cell's cleanup
// and releases it either explicitly (Close) or when the Handle is
// garbage collected by the Go runtime, via a finalizer. This is the
// idiomatic choice for a host language with its own GC (spec.md §9
// "For a Rust implementation, the RAII variant is idiomatic... for other
// host languages, the explicit refcount + sweep variant is portable" —
// Go sits in between: it has a GC, so RAII is natural, but finalizers
// are best-effort, so RAIIStore still supports explicit Close).
type RAIIStore struct {
	mu    sync.Mutex
	cells map[Location]*cell
	next  Location
	Stats Statistics
}

func NewRAII() *RAIIStore {
	return &RAIIStore{cells: map[Location]*cell{}}
}

// Handle is a live reference into an RAIIStore. It must be released
// exactly once, either by calling Close or by letting it be collected;
// calling Close is preferred since finalizer timing is not guaranteed.
type Handle struct {
	store *RAIIStore
	loc   Location
	freed bool
}

// Allocate stores v and returns a Handle that owns its release.
func (s *RAIIStore) Allocate(v value.Value) *Handle {
	s.mu.Lock()
	loc := s.next
	s.next++
	s.cells[loc] = &cell{val: v}
	s.Stats.TotalAllocations++
	s.mu.Unlock()

	h := &Handle{store: s, loc: loc}
	runtime.SetFinalizer(h, (*Handle).release)
	return h
}

func (h *Handle) Get() (value.Value, error) {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if h.freed {
		return nil, &ErrInvalidLocation{h.loc}
	}
	c, ok := h.store.cells[h.loc]
	if !ok {
		return nil, &ErrInvalidLocation{h.loc}
	}
	return c.val, nil
}

func (h *Handle) Set(v value.Value) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if h.freed {
		return &ErrInvalidLocation{h.loc}
	}
	c, ok := h.store.cells[h.loc]
	if !ok {
		return &ErrInvalidLocation{h.loc}
	}
	c.val = v
	return nil
}

// Close releases h's cell immediately rather than waiting on the
// finalizer.
func (h *Handle) Close() {
	h.release()
	runtime.SetFinalizer(h, nil)
}

func (h *Handle) release() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if h.freed {
		return
	}
	h.freed = true
	delete(h.store.cells, h.loc)
	h.store.Stats.TotalDeallocations++
}
