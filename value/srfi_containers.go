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

package value

// HashTable backs SRFI 69/125. Keys are compared with the table's
// Equiv predicate (eq?/eqv?/equal?/custom comparator) and hashed with
// Hash; both are supplied at construction time by the srfi69 package so
// that value itself stays free of hashing policy.
type HashTable struct {
	Equiv   func(a, b Value) bool
	Hash    func(v Value) uint64
	buckets map[uint64][]htEntry
	size    int
	Weak    bool // SRFI 69 weak-keys flag; advisory only, no GC integration
}

type htEntry struct {
	key, val Value
}

func NewHashTable(equiv func(a, b Value) bool, hash func(v Value) uint64) *HashTable {
	return &HashTable{Equiv: equiv, Hash: hash, buckets: map[uint64][]htEntry{}}
}

func (*HashTable) isValue() {}

func (h *HashTable) Get(key Value) (Value, bool) {
	for _, e := range h.buckets[h.Hash(key)] {
		if h.Equiv(e.key, key) {
			return e.val, true
		}
	}
	return nil, false
}

func (h *HashTable) Set(key, val Value) {
	bucket := h.Hash(key)
	entries := h.buckets[bucket]
	for i, e := range entries {
		if h.Equiv(e.key, key) {
			entries[i].val = val
			return
		}
	}
	h.buckets[bucket] = append(entries, htEntry{key, val})
	h.size++
}

func (h *HashTable) Delete(key Value) bool {
	bucket := h.Hash(key)
	entries := h.buckets[bucket]
	for i, e := range entries {
		if h.Equiv(e.key, key) {
			h.buckets[bucket] = append(entries[:i], entries[i+1:]...)
			h.size--
			return true
		}
	}
	return false
}

func (h *HashTable) Size() int { return h.size }

// Each calls fn for every entry in unspecified order, stopping early if
// fn returns false.
func (h *HashTable) Each(fn func(key, val Value) bool) {
	for _, entries := range h.buckets {
		for _, e := range entries {
			if !fn(e.key, e.val) {
				return
			}
		}
	}
}

// Comparator is the SRFI 128 bundle of a type test, equality, ordering,
// and hash function used throughout SRFI 69/113/125/132/133.
type Comparator struct {
	Name     string
	TypeTest func(Value) bool
	Equal    func(a, b Value) bool
	// Less is nil for an equality-only comparator.
	Less func(a, b Value) bool
	Hash func(Value) uint64
}

func (*Comparator) isValue() {}

// StringCursor is the SRFI 130 opaque, immutable reference to a position
// within a particular *String (by rune index, not byte offset, since
// Scheme strings are sequences of characters).
type StringCursor struct {
	Str   *String
	Index int
}

func (*StringCursor) isValue() {}

// Set is the SRFI 113 linear-update set. Like HashTable it stores a
// Value keyed by an externally-supplied comparator, but a set only
// needs membership, not an associated value distinct from the element
// itself — elems holds the canonical Value for each member key so
// set->list can recover the original (e.g. exact vs. inexact) value
// rather than a re-derived one.
type Set struct {
	Equiv func(a, b Value) bool
	Hash  func(v Value) uint64
	elems map[uint64][]Value
	size  int
}

func NewSet(equiv func(a, b Value) bool, hash func(v Value) uint64) *Set {
	return &Set{Equiv: equiv, Hash: hash, elems: map[uint64][]Value{}}
}

func (*Set) isValue() {}

// Add inserts v, returning false if an equivalent element was already
// present (SRFI 113's set-adjoin! semantics: duplicates are no-ops).
func (s *Set) Add(v Value) bool {
	bucket := s.Hash(v)
	for _, e := range s.elems[bucket] {
		if s.Equiv(e, v) {
			return false
		}
	}
	s.elems[bucket] = append(s.elems[bucket], v)
	s.size++
	return true
}

func (s *Set) Contains(v Value) bool {
	for _, e := range s.elems[s.Hash(v)] {
		if s.Equiv(e, v) {
			return true
		}
	}
	return false
}

func (s *Set) Remove(v Value) bool {
	bucket := s.Hash(v)
	entries := s.elems[bucket]
	for i, e := range entries {
		if s.Equiv(e, v) {
			s.elems[bucket] = append(entries[:i], entries[i+1:]...)
			s.size--
			return true
		}
	}
	return false
}

func (s *Set) Size() int { return s.size }

// Each calls fn for every member in unspecified order, stopping early if
// fn returns false.
func (s *Set) Each(fn func(v Value) bool) {
	for _, bucket := range s.elems {
		for _, e := range bucket {
			if !fn(e) {
				return
			}
		}
	}
}

// Bag is the SRFI 113 multiset: like Set, but each distinct element
// carries an occurrence count rather than a single membership bit.
type Bag struct {
	Equiv func(a, b Value) bool
	Hash  func(v Value) uint64
	elems map[uint64][]bagEntry
	size  int
}

type bagEntry struct {
	val   Value
	count int
}

func NewBag(equiv func(a, b Value) bool, hash func(v Value) uint64) *Bag {
	return &Bag{Equiv: equiv, Hash: hash, elems: map[uint64][]bagEntry{}}
}

func (*Bag) isValue() {}

func (b *Bag) Add(v Value) {
	bucket := b.Hash(v)
	entries := b.elems[bucket]
	for i, e := range entries {
		if b.Equiv(e.val, v) {
			entries[i].count++
			b.size++
			return
		}
	}
	b.elems[bucket] = append(entries, bagEntry{val: v, count: 1})
	b.size++
}

func (b *Bag) Count(v Value) int {
	for _, e := range b.elems[b.Hash(v)] {
		if b.Equiv(e.val, v) {
			return e.count
		}
	}
	return 0
}

// RemoveOne decrements v's count, deleting the entry entirely once it
// reaches zero; reports whether an occurrence was actually removed.
func (b *Bag) RemoveOne(v Value) bool {
	bucket := b.Hash(v)
	entries := b.elems[bucket]
	for i, e := range entries {
		if b.Equiv(e.val, v) {
			if e.count <= 1 {
				b.elems[bucket] = append(entries[:i], entries[i+1:]...)
			} else {
				entries[i].count--
			}
			b.size--
			return true
		}
	}
	return false
}

func (b *Bag) Size() int { return b.size }

// Each calls fn once per distinct element with its occurrence count, in
// unspecified order, stopping early if fn returns false.
func (b *Bag) Each(fn func(v Value, count int) bool) {
	for _, bucket := range b.elems {
		for _, e := range bucket {
			if !fn(e.val, e.count) {
				return
			}
		}
	}
}
