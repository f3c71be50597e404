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
	"sort"
	"sync"
	"sync/atomic"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Neighbor is one entry of a BoxAssoc neighbor list.
type Neighbor struct {
	// Index is the position of the neighbor in the BoxArray.
	Index int
	// Region is the intersection of the two boxes after both are grown
	// by the cache width.
	Region Box
}

// BoxAssoc caches, for every box K of a BoxArray, the boxes J whose grown
// extent overlaps K's grown extent. K is always its own neighbor. The
// neighbor relation does not depend on any data, so a BoxAssoc can be
// shared by every FabArray built on the same BoxArray.
//
// A built BoxAssoc is safe for concurrent use. SetCacheWidth serializes
// rebuilds and publishes the new lists only once they are complete, so
// readers see either the old lists or the new ones.
type BoxAssoc struct {
	ba        *BoxArray
	width     int
	neighbors atomic.Pointer[[][]Neighbor]
	refs      int32
	mu        sync.Mutex
}

// rtreeThreshold is the number of boxes above which candidate neighbors
// are found with an rtree instead of by testing every pair.
const rtreeThreshold = 32

// NewBoxAssoc builds the neighbor cache of ba for the given width. ba is
// copied.
func NewBoxAssoc(ba *BoxArray, width int) *BoxAssoc {
	if width < 0 {
		fail(ErrGeometry, "NewBoxAssoc", "negative cache width %d", width)
	}
	if !ba.Ok() {
		fail(ErrGeometry, "NewBoxAssoc", "BoxArray is not Ok")
	}
	a := &BoxAssoc{ba: ba.Clone(), width: width}
	nbrs := buildNeighbors(a.ba, width)
	a.neighbors.Store(&nbrs)
	return a
}

// CacheWidth returns the width the cache was built for.
func (a *BoxAssoc) CacheWidth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width
}

// SetCacheWidth makes sure the cache covers width w. A wider request
// rebuilds the cache; a narrower one keeps the existing cache, whose
// neighbor lists are a superset of the narrower ones. It reports whether a
// rebuild happened.
func (a *BoxAssoc) SetCacheWidth(w int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if w <= a.width {
		return false
	}
	nbrs := buildNeighbors(a.ba, w)
	a.neighbors.Store(&nbrs)
	a.width = w
	return true
}

// BoxArray returns the BoxArray the cache was built on. It must not be
// modified.
func (a *BoxAssoc) BoxArray() *BoxArray { return a.ba }

// Len returns the number of boxes.
func (a *BoxAssoc) Len() int { return a.ba.Len() }

// Neighbors returns the neighbor list of box k, sorted by index. It must
// not be modified.
func (a *BoxAssoc) Neighbors(k int) []Neighbor {
	a.ba.checkIndex("BoxAssoc.Neighbors", k)
	return (*a.neighbors.Load())[k]
}

// Retain adds a holder and returns the new count.
func (a *BoxAssoc) Retain() int { return int(atomic.AddInt32(&a.refs, 1)) }

// Release removes a holder and returns the remaining count.
func (a *BoxAssoc) Release() int {
	n := atomic.AddInt32(&a.refs, -1)
	if n < 0 {
		fail(ErrState, "BoxAssoc.Release", "released more times than retained")
	}
	return int(n)
}

// RefCount returns the number of holders.
func (a *BoxAssoc) RefCount() int { return int(atomic.LoadInt32(&a.refs)) }

// buildNeighbors returns the neighbor lists of ba at width w.
func buildNeighbors(ba *BoxArray, w int) [][]Neighbor {
	grown := make([]Box, ba.Len())
	for i, b := range ba.boxes {
		grown[i] = b.Grow(w)
	}
	if len(grown) > rtreeThreshold {
		return indexedNeighbors(grown)
	}
	return allPairsNeighbors(grown)
}

// allPairsNeighbors tests every pair of grown boxes.
func allPairsNeighbors(grown []Box) [][]Neighbor {
	out := make([][]Neighbor, len(grown))
	for k, bk := range grown {
		for j, bj := range grown {
			if r := Intersect(bk, bj); !r.IsEmpty() {
				out[k] = append(out[k], Neighbor{Index: j, Region: r})
			}
		}
	}
	return out
}

// gridIndex is a box's footprint on the first and last axes, for storage in an
// rtree.
type gridIndex struct {
	geom.Geom
	i int
}

// footprint treats every index as a unit square, so boxes that share an
// index have overlapping footprints.
func footprint(b Box) *geom.Bounds {
	bounds := &geom.Bounds{
		Min: geom.Point{X: float64(b.Lo[0])},
		Max: geom.Point{X: float64(b.Hi[0] + 1)},
	}
	if SpaceDim > 1 {
		bounds.Min.Y = float64(b.Lo[SpaceDim-1])
		bounds.Max.Y = float64(b.Hi[SpaceDim-1] + 1)
	} else {
		bounds.Max.Y = 1
	}
	return bounds
}

// indexedNeighbors finds candidates whose footprints overlap and keeps the
// ones whose full boxes intersect. The result is identical to
// allPairsNeighbors.
func indexedNeighbors(grown []Box) [][]Neighbor {
	tree := rtree.NewTree(25, 50)
	for i, b := range grown {
		tree.Insert(gridIndex{Geom: footprint(b), i: i})
	}
	out := make([][]Neighbor, len(grown))
	for k, bk := range grown {
		var idx []int
		for _, c := range tree.SearchIntersect(footprint(bk)) {
			idx = append(idx, c.(gridIndex).i)
		}
		sort.Ints(idx)
		for _, j := range idx {
			if r := Intersect(bk, grown[j]); !r.IsEmpty() {
				out[k] = append(out[k], Neighbor{Index: j, Region: r})
			}
		}
	}
	return out
}
