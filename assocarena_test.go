/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package boxlib

import (
	"testing"
)

// row returns n 4-wide boxes side by side along the first axis.
func row(n int) *BoxArray {
	boxes := make([]Box, n)
	for i := range boxes {
		boxes[i] = NewBox(Uniform(0), Uniform(3)).Shift(0, 4*i)
	}
	return BoxArrayFromBoxes(boxes...)
}

func TestAssocArenaSharing(t *testing.T) {
	arena := NewAssocArena(4)
	a, b := row(3), row(4)
	h1 := arena.Acquire(a, 1)
	h2 := arena.Acquire(a.Clone(), 0)
	if h1 != h2 {
		t.Errorf("identical BoxArrays should share a cache: %d != %d", h1, h2)
	}
	if arena.Get(h1).RefCount() != 2 {
		t.Errorf("RefCount = %d", arena.Get(h1).RefCount())
	}
	h3 := arena.Acquire(b, 1)
	if h3 == h1 || arena.Len() != 2 {
		t.Errorf("different BoxArrays should not share: %d %d", h1, h3)
	}
	h4 := arena.Acquire(a, 2)
	if h4 != h1 || arena.Get(h1).CacheWidth() != 2 {
		t.Error("a wider Acquire should widen the shared cache")
	}
	arena.Release(h1)
	arena.Release(h2)
	arena.Release(h4)
	if arena.Parked() != 1 || arena.Len() != 2 {
		t.Errorf("parked %d, len %d", arena.Parked(), arena.Len())
	}
	expectPanic(t, ErrState, func() { arena.Get(h1) })

	h5 := arena.Acquire(a, 1)
	if h5 != h1 || arena.Parked() != 0 {
		t.Errorf("a parked cache should be reused: %d, parked %d", h5, arena.Parked())
	}
	if arena.Get(h5).CacheWidth() != 2 {
		t.Error("a reused cache keeps its width")
	}
	arena.Release(h5)
	arena.Release(h3)
}

func TestAssocArenaEviction(t *testing.T) {
	arena := NewAssocArena(1)
	ha := arena.Acquire(row(2), 1)
	hb := arena.Acquire(row(3), 1)
	arena.Release(ha)
	arena.Release(hb)
	if arena.Len() != 1 || arena.Parked() != 1 {
		t.Errorf("len %d parked %d", arena.Len(), arena.Parked())
	}
	// row(2) was evicted; acquiring it again builds a new cache in the
	// freed slot.
	hc := arena.Acquire(row(2), 1)
	if hc != ha {
		t.Errorf("freed slot %d should be reused, got %d", ha, hc)
	}
	if arena.Get(hc).RefCount() != 1 {
		t.Error("a rebuilt cache has one holder")
	}
	// row(3) is still parked.
	if hd := arena.Acquire(row(3), 0); hd != hb {
		t.Errorf("parked cache %d should be reused, got %d", hb, hd)
	}
}

func TestAssocArenaNoParking(t *testing.T) {
	arena := NewAssocArena(0)
	h := arena.Acquire(row(2), 0)
	arena.Release(h)
	if arena.Len() != 0 || arena.Parked() != 0 {
		t.Errorf("len %d parked %d", arena.Len(), arena.Parked())
	}
	expectPanic(t, ErrState, func() { arena.Release(h) })
	expectPanic(t, ErrState, func() { arena.Get(NoAssoc) })
	expectPanic(t, ErrResource, func() { NewAssocArena(-1) })
}
