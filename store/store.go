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

// Package store implements the generational cell allocator for mutable
// locations described in spec.md §3.3/§4.2: a process-wide (per
// evaluator) map from an opaque Location handle to a Cell, with
// refcounting, mark-sweep collection, and pooled reuse of freed cells.
package store

import (
	"fmt"
	"sync"

	"github.com/wisteria-scheme/wisteria/value"
)

// Location is an opaque handle into a Store.
type Location uint64

// Statistics lets an embedding host observe allocator behavior:
// allocation/deallocation counts, GC cycles, peak usage, and pool
// reuse.
type Statistics struct {
	TotalAllocations   int
	TotalDeallocations int
	GCCycles           int
	PeakMemoryUsage    int
	PoolHits           int
}

type cell struct {
	val        value.Value
	refCount   int
	generation uint32
	marked     bool
}

// Store is the refcount + mark-sweep allocator strategy (spec.md §4.2,
// "manual-refcount store"). It is safe for concurrent use since host
// functions registered via Interpreter.RegisterHostFunction may run off
// the evaluator's own goroutine.
type Store struct {
	mu sync.Mutex

	cells map[Location]*cell
	next  Location

	memoryUsage  int
	memoryLimit  int // 0 = unlimited
	gcThreshold  int
	generation   uint32
	Stats        Statistics

	cellPool     []*cell
	locationPool []Location
	maxPoolSize  int
}

// New creates a Store with no memory limit and a 1MiB default GC
// threshold.
func New() *Store {
	return &Store{
		cells:       map[Location]*cell{},
		gcThreshold: 1 << 20,
		maxPoolSize: 256,
	}
}

// NewWithMemoryLimit creates a Store that triggers GC once memoryLimit/4
// bytes are in use.
func NewWithMemoryLimit(memoryLimit int) *Store {
	s := New()
	s.memoryLimit = memoryLimit
	if memoryLimit > 0 {
		s.gcThreshold = memoryLimit / 4
	}
	return s
}

// SetMemoryLimit changes the memory limit after construction (spec.md
// §6.2 set_memory_limit).
func (s *Store) SetMemoryLimit(bytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memoryLimit = bytes
	if bytes > 0 {
		s.gcThreshold = bytes / 4
	}
}

// approxSize is a coarse, constant-ish estimate of a Value's footprint,
// adequate for threshold bookkeeping rather than precise accounting.
func approxSize(value.Value) int { return 64 }

// Allocate stores v and returns a fresh Location for it, running a
// mark-sweep cycle first if the memory threshold has been crossed.
func (s *Store) Allocate(v value.Value, roots func() []Location) Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memoryUsage >= s.gcThreshold {
		s.collectLocked(roots)
	}

	var c *cell
	var loc Location
	if n := len(s.cellPool); n > 0 {
		c = s.cellPool[n-1]
		s.cellPool = s.cellPool[:n-1]
		loc = s.locationPool[len(s.locationPool)-1]
		s.locationPool = s.locationPool[:len(s.locationPool)-1]
		s.Stats.PoolHits++
		*c = cell{val: v, refCount: 1, generation: s.generation}
	} else {
		c = &cell{val: v, refCount: 1, generation: s.generation}
		loc = s.next
		s.next++
	}
	s.cells[loc] = c
	s.memoryUsage += approxSize(v)
	if s.memoryUsage > s.Stats.PeakMemoryUsage {
		s.Stats.PeakMemoryUsage = s.memoryUsage
	}
	s.Stats.TotalAllocations++
	return loc
}

// ErrInvalidLocation is returned by Get/Set/Incref/Decref for a Location
// that was never allocated or has since been freed (spec.md §4.2).
type ErrInvalidLocation struct{ Loc Location }

func (e *ErrInvalidLocation) Error() string {
	return fmt.Sprintf("invalid location: %v", e.Loc)
}

func (s *Store) Get(loc Location) (value.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[loc]
	if !ok {
		return nil, &ErrInvalidLocation{loc}
	}
	return c.val, nil
}

func (s *Store) Set(loc Location, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[loc]
	if !ok {
		return &ErrInvalidLocation{loc}
	}
	c.val = v
	return nil
}

func (s *Store) Incref(loc Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[loc]
	if !ok {
		return &ErrInvalidLocation{loc}
	}
	c.refCount++
	return nil
}

// Decref drops loc's reference count and, if it reaches zero, frees the
// cell immediately — this is the fast path for acyclic structure. A cell
// whose count stays above zero, as in a reference cycle, is not freed
// here, and CollectGarbage does not sweep it either.
func (s *Store) Decref(loc Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[loc]
	if !ok {
		return &ErrInvalidLocation{loc}
	}
	c.refCount--
	if c.refCount <= 0 {
		s.freeLocked(loc, c)
	}
	return nil
}

func (s *Store) freeLocked(loc Location, c *cell) {
	delete(s.cells, loc)
	s.memoryUsage -= approxSize(c.val)
	if s.memoryUsage < 0 {
		s.memoryUsage = 0
	}
	s.Stats.TotalDeallocations++
	if len(s.cellPool) < s.maxPoolSize {
		s.cellPool = append(s.cellPool, c)
		s.locationPool = append(s.locationPool, loc)
	}
}

// CollectGarbage runs a mark-sweep cycle: every cell named by roots() is
// marked live, then every unmarked cell whose reference count is zero is
// freed and its location/cell pair offered to the pool for reuse
// (spec.md §3.3/§4.2). Cells with a positive count are kept whether or
// not they are marked. With nil roots the cycle is only counted in
// Stats.GCCycles; nothing is marked or freed.
func (s *Store) CollectGarbage(roots func() []Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collectLocked(roots)
}

func (s *Store) collectLocked(roots func() []Location) {
	s.generation++
	s.Stats.GCCycles++
	if roots == nil {
		return
	}
	marked := map[Location]bool{}
	for _, r := range roots() {
		markReachable(s, r, marked)
	}
	for loc, c := range s.cells {
		if c.refCount > 0 {
			continue // still directly referenced; never swept even if unreachable from roots
		}
		if !marked[loc] {
			s.freeLocked(loc, c)
		}
	}
}

func markReachable(s *Store, loc Location, marked map[Location]bool) {
	if marked[loc] {
		return
	}
	c, ok := s.cells[loc]
	if !ok {
		return
	}
	marked[loc] = true
	c.marked = true
}
