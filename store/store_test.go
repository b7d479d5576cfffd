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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisteria-scheme/wisteria/value"
)

// cmpValue is value/equality_test.go's cycle-safe go-cmp Comparer,
// reused here so a stored compound value (e.g. a list) can be diffed
// structurally without cmp recursing into a *value.Pair's fields and
// hanging on a cell the store lets a caller cycle through Set.
var cmpValue = cmp.Comparer(func(a, b value.Value) bool { return value.Equal(a, b) })

func TestAllocateGetSet(t *testing.T) {
	s := New()
	loc := s.Allocate(value.NewInt(1), nil)

	v, err := s.Get(loc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.(*value.Number).I)

	require.NoError(t, s.Set(loc, value.NewInt(2)))
	v, err = s.Get(loc)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.(*value.Number).I)
}

func TestAllocateGetSetList(t *testing.T) {
	s := New()
	want := value.FromSlice([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)})
	loc := s.Allocate(want, nil)

	got, err := s.Get(loc)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpValue); diff != "" {
		t.Fatalf("stored list round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidLocation(t *testing.T) {
	s := New()
	_, err := s.Get(Location(999))
	assert.Error(t, err)
	var invalid *ErrInvalidLocation
	assert.ErrorAs(t, err, &invalid)
}

func TestDecrefFreesCell(t *testing.T) {
	s := New()
	loc := s.Allocate(value.NewInt(1), nil)
	require.NoError(t, s.Decref(loc))
	_, err := s.Get(loc)
	assert.Error(t, err)
	assert.Equal(t, 1, s.Stats.TotalDeallocations)
}

func TestCollectGarbageSweepsUnreachable(t *testing.T) {
	s := New()
	keep := s.Allocate(value.NewInt(1), nil)
	s.Incref(keep)
	gone := s.Allocate(value.NewInt(2), nil)
	s.Decref(gone) // drop to zero refcount, which frees it at once

	s.CollectGarbage(func() []Location { return []Location{keep} })

	_, err := s.Get(keep)
	assert.NoError(t, err)
	_, err = s.Get(gone)
	assert.Error(t, err)
}

func TestRAIIHandle(t *testing.T) {
	s := NewRAII()
	h := s.Allocate(value.NewInt(42))
	v, err := h.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.(*value.Number).I)

	h.Close()
	_, err = h.Get()
	assert.Error(t, err)
}
