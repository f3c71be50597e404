//go:build !dim1 && !dim3

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
	"math/rand"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

// tiles returns an nx×ny grid of size×size boxes.
func tiles(nx, ny, size int) *BoxArray {
	var boxes []Box
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			lo := IntVect{i * size, j * size}
			boxes = append(boxes, NewBox(lo, lo.Add(Uniform(size-1))))
		}
	}
	return BoxArrayFromBoxes(boxes...)
}

func neighborIndices(a *BoxAssoc, k int) []int {
	var idx []int
	for _, n := range a.Neighbors(k) {
		idx = append(idx, n.Index)
	}
	return idx
}

func TestBoxAssocTiles(t *testing.T) {
	ba := tiles(3, 3, 4)
	a := NewBoxAssoc(ba, 0)
	for k := 0; k < ba.Len(); k++ {
		if diff := pretty.Diff(neighborIndices(a, k), []int{k}); len(diff) != 0 {
			t.Errorf("width 0, box %d: %v", k, diff)
		}
	}
	if !a.SetCacheWidth(1) {
		t.Error("a wider width should rebuild")
	}
	if a.SetCacheWidth(0) || a.CacheWidth() != 1 {
		t.Error("a narrower width should keep the cache")
	}
	if diff := pretty.Diff(neighborIndices(a, 4), []int{0, 1, 2, 3, 4, 5, 6, 7, 8}); len(diff) != 0 {
		t.Errorf("center box: %v", diff)
	}
	if diff := pretty.Diff(neighborIndices(a, 0), []int{0, 1, 3, 4}); len(diff) != 0 {
		t.Errorf("corner box: %v", diff)
	}
	for _, n := range a.Neighbors(4) {
		want := Intersect(ba.Get(4).Grow(1), ba.Get(n.Index).Grow(1))
		if n.Region != want {
			t.Errorf("region for %d: %v != %v", n.Index, n.Region, want)
		}
	}
	if a.Len() != 9 || !a.BoxArray().Same(ba) {
		t.Error("Len or BoxArray")
	}
	expectPanic(t, ErrIndex, func() { a.Neighbors(9) })
	expectPanic(t, ErrGeometry, func() { NewBoxAssoc(ba, -1) })
}

func TestBoxAssocWidthSuperset(t *testing.T) {
	ba := tiles(4, 3, 5)
	narrow := NewBoxAssoc(ba, 1)
	wide := NewBoxAssoc(ba, 3)
	for k := 0; k < ba.Len(); k++ {
		in := make(map[int]bool)
		for _, j := range neighborIndices(wide, k) {
			in[j] = true
		}
		for _, j := range neighborIndices(narrow, k) {
			if !in[j] {
				t.Errorf("box %d: neighbor %d at width 1 is missing at width 3", k, j)
			}
		}
	}
}

// The rtree build must match the all-pairs build exactly.
func TestBoxAssocIndexed(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	var boxes []Box
	for i := 0; i < 150; i++ {
		lo := IntVect{r.Intn(200), r.Intn(200)}
		boxes = append(boxes, NewBox(lo, lo.Add(IntVect{r.Intn(12), r.Intn(12)})))
	}
	for _, w := range []int{0, 1, 4} {
		grown := make([]Box, len(boxes))
		for i, b := range boxes {
			grown[i] = b.Grow(w)
		}
		naive := allPairsNeighbors(grown)
		indexed := indexedNeighbors(grown)
		if !reflect.DeepEqual(naive, indexed) {
			t.Errorf("width %d: %s", w, pretty.Diff(naive, indexed))
		}
	}

	ba := tiles(8, 8, 4)
	a := NewBoxAssoc(ba, 2)
	if ba.Len() <= rtreeThreshold {
		t.Fatal("test array is too small to use the rtree")
	}
	for k := 0; k < ba.Len(); k++ {
		n := len(a.Neighbors(k))
		i, j := k%8, k/8
		nx, ny := 3, 3
		if i == 0 || i == 7 {
			nx = 2
		}
		if j == 0 || j == 7 {
			ny = 2
		}
		if n != nx*ny {
			t.Errorf("box %d has %d neighbors, want %d", k, n, nx*ny)
		}
	}
}

func TestBoxAssocRefCount(t *testing.T) {
	a := NewBoxAssoc(tiles(2, 1, 4), 1)
	if a.Retain() != 1 || a.Retain() != 2 || a.RefCount() != 2 {
		t.Error("Retain")
	}
	if a.Release() != 1 || a.Release() != 0 {
		t.Error("Release")
	}
	expectPanic(t, ErrState, func() { a.Release() })
}
