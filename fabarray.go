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
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// FabArray is a collection of buffers, one per box of a BoxArray. Buffer K
// is defined over box K grown by NGrow ghost layers; box K itself is its
// valid region. All buffers have the same number of components.
//
// A FabArray holds a neighbor cache in an AssocArena for as long as it is
// open; Close releases it.
type FabArray[T any] struct {
	// Log receives messages about exchanges.
	Log logrus.FieldLogger

	ba      *BoxArray
	ncomp   int
	ngrow   int
	fabs    []Fab[T]
	arena   *AssocArena
	handle  AssocHandle
	workers int
	defined bool
}

// NewFabArray returns a FabArray over ba with nComp components and nGrow
// ghost layers. alloc creates the buffers; nil means AllocBaseFab.
func NewFabArray[T any](ba *BoxArray, nComp, nGrow int, alloc Allocator[T], opts ...Option) *FabArray[T] {
	fa := new(FabArray[T])
	fa.Define(ba, nComp, nGrow, alloc, opts...)
	return fa
}

// Define sets up a zero or closed FabArray. It is an error to define a
// FabArray twice.
func (fa *FabArray[T]) Define(ba *BoxArray, nComp, nGrow int, alloc Allocator[T], opts ...Option) {
	if fa.defined {
		fail(ErrState, "FabArray.Define", "FabArray is already defined")
	}
	if !ba.Ok() {
		fail(ErrGeometry, "FabArray.Define", "BoxArray is not Ok")
	}
	if nComp < 1 {
		fail(ErrIndex, "FabArray.Define", "component count %d is below 1", nComp)
	}
	if nGrow < 0 {
		fail(ErrGeometry, "FabArray.Define", "negative ghost width %d", nGrow)
	}
	o := newOptions(opts)
	fa.ba = ba.Clone()
	fa.ncomp, fa.ngrow = nComp, nGrow
	fa.fabs = make([]Fab[T], ba.Len())
	fa.arena = DefaultArena
	if o.arena != nil {
		fa.arena = o.arena
	}
	fa.Log = logrus.StandardLogger()
	if o.log != nil {
		fa.Log = o.log
	}
	fa.handle = NoAssoc
	fa.workers = o.nWorkers
	fa.defined = true
	if o.noAlloc {
		return
	}
	if alloc == nil {
		alloc = AllocBaseFab[T]
	}
	for k := range fa.fabs {
		f := alloc(fa.FabBox(k), nComp)
		if f == nil {
			fail(ErrResource, "FabArray.Define", "allocator returned no buffer for grid %d", k)
		}
		fa.fabs[k] = f
	}
}

// Ok reports whether fa is defined and every buffer is allocated with the
// right box and component count.
func (fa *FabArray[T]) Ok() bool {
	if !fa.defined {
		return false
	}
	for k, f := range fa.fabs {
		if f == nil || f.Box() != fa.FabBox(k) || f.NComp() != fa.ncomp {
			return false
		}
	}
	return true
}

// NGrow returns the number of ghost layers.
func (fa *FabArray[T]) NGrow() int { return fa.ngrow }

// NComp returns the number of components.
func (fa *FabArray[T]) NComp() int { return fa.ncomp }

// BoxArray returns the boxes of the valid regions. It must not be modified.
func (fa *FabArray[T]) BoxArray() *BoxArray { return fa.ba }

// Len returns the number of buffers.
func (fa *FabArray[T]) Len() int { return len(fa.fabs) }

// Box returns the valid region of buffer k.
func (fa *FabArray[T]) Box(k int) Box {
	fa.checkDefined("FabArray.Box")
	return fa.ba.Get(k)
}

// FabBox returns the region buffer k is defined over.
func (fa *FabArray[T]) FabBox(k int) Box {
	return fa.Box(k).Grow(fa.ngrow)
}

// Fab returns buffer k.
func (fa *FabArray[T]) Fab(k int) Fab[T] {
	fa.checkDefined("FabArray.Fab")
	fa.ba.checkIndex("FabArray.Fab", k)
	if fa.fabs[k] == nil {
		fail(ErrState, "FabArray.Fab", "buffer %d is not allocated", k)
	}
	return fa.fabs[k]
}

// SetFab installs f as buffer k. Slot k must be empty and f must cover
// FabBox(k) with NComp components.
func (fa *FabArray[T]) SetFab(k int, f Fab[T]) {
	fa.checkDefined("FabArray.SetFab")
	fa.ba.checkIndex("FabArray.SetFab", k)
	if fa.fabs[k] != nil {
		fail(ErrState, "FabArray.SetFab", "buffer %d is already set", k)
	}
	if f.Box() != fa.FabBox(k) {
		fail(ErrGeometry, "FabArray.SetFab", "buffer box %v; want %v", f.Box(), fa.FabBox(k))
	}
	if f.NComp() != fa.ncomp {
		fail(ErrIndex, "FabArray.SetFab", "buffer has %d components; want %d", f.NComp(), fa.ncomp)
	}
	fa.fabs[k] = f
}

// Remove detaches buffer k and returns it. The caller owns the result.
func (fa *FabArray[T]) Remove(k int) Fab[T] {
	f := fa.Fab(k)
	fa.fabs[k] = nil
	return f
}

// ClearFab drops buffer k, if any.
func (fa *FabArray[T]) ClearFab(k int) {
	fa.checkDefined("FabArray.ClearFab")
	fa.ba.checkIndex("FabArray.ClearFab", k)
	fa.fabs[k] = nil
}

// Assoc returns the neighbor cache fa holds, or nil if it has none yet.
func (fa *FabArray[T]) Assoc() *BoxAssoc {
	if fa.handle == NoAssoc {
		return nil
	}
	return fa.arena.Get(fa.handle)
}

// SetCacheWidth makes sure fa holds a neighbor cache at least w wide and
// returns it.
func (fa *FabArray[T]) SetCacheWidth(w int) *BoxAssoc {
	fa.checkDefined("FabArray.SetCacheWidth")
	if fa.handle == NoAssoc {
		fa.handle = fa.arena.Acquire(fa.ba, w)
		return fa.arena.Get(fa.handle)
	}
	a := fa.arena.Get(fa.handle)
	if a.SetCacheWidth(w) {
		fa.Log.WithFields(logrus.Fields{
			"boxes": fa.ba.Len(),
			"width": w,
		}).Debug("boxlib rebuilt neighbor cache")
	}
	return a
}

// Close releases the neighbor cache and the buffers. fa may be defined
// again afterwards.
func (fa *FabArray[T]) Close() {
	if fa.handle != NoAssoc {
		fa.arena.Release(fa.handle)
		fa.handle = NoAssoc
	}
	fa.fabs = nil
	fa.ba = nil
	fa.defined = false
}

func (fa *FabArray[T]) checkDefined(op string) {
	if !fa.defined {
		fail(ErrState, op, "FabArray is not defined")
	}
}

// checkAllocated fails unless every buffer is present.
func (fa *FabArray[T]) checkAllocated(op string) {
	fa.checkDefined(op)
	for k, f := range fa.fabs {
		if f == nil {
			fail(ErrState, op, "buffer %d is not allocated", k)
		}
	}
}

func (fa *FabArray[T]) checkComps(op string, comp, n int) {
	if comp < 0 || n < 0 || comp+n > fa.ncomp {
		fail(ErrIndex, op, "components [%d,%d) out of range [0,%d)", comp, comp+n, fa.ncomp)
	}
}

// ghost returns the ghost width requested in o, or def if none was.
func (fa *FabArray[T]) ghost(op string, o *options, def int) int {
	if o.ghost < 0 {
		return def
	}
	if o.ghost > fa.ngrow {
		fail(ErrGeometry, op, "ghost width %d exceeds %d", o.ghost, fa.ngrow)
	}
	return o.ghost
}

// parallel calls fn for every grid index, spread round-robin over the
// workers requested in o or at Define. fn(k) must only write to buffer k.
func (fa *FabArray[T]) parallel(o *options, fn func(k int)) {
	n := len(fa.fabs)
	nprocs := o.nWorkers
	if nprocs <= 0 {
		nprocs = fa.workers
	}
	if nprocs <= 0 {
		nprocs = runtime.GOMAXPROCS(0)
	}
	if nprocs > n {
		nprocs = n
	}
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for k := pp; k < n; k += nprocs {
				fn(k)
			}
		}(pp)
	}
	wg.Wait()
}
