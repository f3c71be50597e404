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
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// SetVal sets every point of every buffer to v. By default the ghost
// layers are set too; Ghost limits how many are, Within restricts the
// points further and Components restricts the components.
func (fa *FabArray[T]) SetVal(v T, opts ...Option) {
	const op = "FabArray.SetVal"
	fa.checkAllocated(op)
	o := newOptions(opts)
	_, comp, n := o.components(fa.ncomp)
	fa.checkComps(op, comp, n)
	g := fa.ghost(op, o, fa.ngrow)
	fa.checkWithin(op, o)
	for k, f := range fa.fabs {
		region := fa.Box(k).Grow(g)
		if o.within != nil {
			region = Intersect(region, *o.within)
		}
		FillRegion(f, v, region, comp, n)
	}
}

// SetBndry sets the ghost layers of every buffer to v, leaving the valid
// regions alone. Components restricts the components.
func (fa *FabArray[T]) SetBndry(v T, opts ...Option) {
	const op = "FabArray.SetBndry"
	fa.checkAllocated(op)
	o := newOptions(opts)
	_, comp, n := o.components(fa.ncomp)
	fa.checkComps(op, comp, n)
	if fa.ngrow == 0 {
		return
	}
	for k, f := range fa.fabs {
		ghosts := BoxDiff(f.Box(), fa.Box(k))
		for it := ghosts.Front(); it.Ok(); it = it.Next() {
			FillRegion(f, v, it.Box(), comp, n)
		}
	}
}

// CopyTo copies the valid-region data of fa that overlaps dest into dest.
// Within restricts the copy to part of dest, ComponentMap selects the
// components and Near or NearIn restrict the search to the neighbors of
// one grid, for a dest known to lie near that grid.
func (fa *FabArray[T]) CopyTo(dest Fab[T], opts ...Option) {
	const op = "FabArray.CopyTo"
	fa.checkAllocated(op)
	fa.checkType(op, dest.Box().Type)
	o := newOptions(opts)
	src, dst, n := o.components(fa.ncomp)
	fa.checkComps(op, src, n)
	checkComps(op, dest, dst, n)
	fa.checkWithin(op, o)
	target := dest.Box()
	if o.within != nil {
		target = Intersect(target, *o.within)
		if target.IsEmpty() {
			return
		}
	}
	for _, j := range fa.candidates(op, o) {
		region := Intersect(fa.Box(j), target)
		if region.IsEmpty() {
			continue
		}
		CopyRegion(dest, dst, fa.fabs[j], src, region, n)
	}
}

// candidates returns the grids a copy to an external buffer must look at.
func (fa *FabArray[T]) candidates(op string, o *options) []int {
	if o.near < 0 {
		all := make([]int, len(fa.fabs))
		for i := range all {
			all[i] = i
		}
		return all
	}
	a := o.nearIn
	if a == nil {
		a = fa.SetCacheWidth(fa.ngrow)
	} else if !a.BoxArray().Same(fa.ba) {
		fail(ErrGeometry, op, "neighbor cache is for a different BoxArray")
	}
	nbrs := a.Neighbors(o.near)
	idx := make([]int, len(nbrs))
	for i, nb := range nbrs {
		idx[i] = nb.Index
	}
	return idx
}

// Copy fills fa from the valid regions of src wherever they overlap the
// valid regions of fa grown by Ghost layers (none by default). When the two
// share a BoxArray only neighboring pairs are examined. ComponentMap
// selects the components.
func (fa *FabArray[T]) Copy(src *FabArray[T], opts ...Option) {
	const op = "FabArray.Copy"
	fa.checkAllocated(op)
	src.checkAllocated(op)
	if src.Len() > 0 {
		fa.checkType(op, src.ba.IxType())
	}
	o := newOptions(opts)
	sc, dc, n := o.components(fa.ncomp)
	src.checkComps(op, sc, n)
	fa.checkComps(op, dc, n)
	g := fa.ghost(op, o, 0)

	var a *BoxAssoc
	if fa.ba.Equal(src.ba) && fa.ba.Same(src.ba) {
		a = fa.SetCacheWidth(g)
	}
	var copies int64
	fa.parallel(o, func(k int) {
		dst := fa.fabs[k]
		region := fa.Box(k).Grow(g)
		copyFrom := func(j int) {
			r := Intersect(region, src.Box(j))
			if r.IsEmpty() {
				return
			}
			CopyRegion(dst, dc, src.fabs[j], sc, r, n)
			atomic.AddInt64(&copies, 1)
		}
		if a != nil {
			for _, nb := range a.Neighbors(k) {
				copyFrom(nb.Index)
			}
			return
		}
		for j := range src.fabs {
			copyFrom(j)
		}
	})
	fa.Log.WithFields(logrus.Fields{
		"boxes":    fa.ba.Len(),
		"ghost":    g,
		"copies":   copies,
		"neighbor": a != nil,
	}).Debug("boxlib copied FabArray")
}

// FillBoundary fills the ghost layers of every buffer from the valid
// regions of the other buffers that overlap them. A buffer never fills
// itself and valid regions are never written. The neighbor cache is built
// or widened to NGrow as needed; UsingAssoc supplies one instead.
// Components restricts the components and Workers the concurrency.
func (fa *FabArray[T]) FillBoundary(opts ...Option) {
	const op = "FabArray.FillBoundary"
	fa.checkAllocated(op)
	o := newOptions(opts)
	_, comp, n := o.components(fa.ncomp)
	fa.checkComps(op, comp, n)
	if fa.ngrow == 0 || len(fa.fabs) == 0 {
		return
	}
	a := o.assoc
	if a == nil {
		a = fa.SetCacheWidth(fa.ngrow)
	} else {
		if !a.BoxArray().Same(fa.ba) {
			fail(ErrGeometry, op, "neighbor cache is for a different BoxArray")
		}
		if a.CacheWidth() < fa.ngrow {
			fail(ErrGeometry, op, "neighbor cache width %d is below ghost width %d", a.CacheWidth(), fa.ngrow)
		}
	}
	var copies int64
	fa.parallel(o, func(k int) {
		dst := fa.fabs[k]
		valid := fa.Box(k)
		for _, nb := range a.Neighbors(k) {
			if nb.Index == k {
				continue
			}
			r := Intersect(dst.Box(), fa.Box(nb.Index))
			if r.IsEmpty() {
				continue
			}
			pieces := BoxDiff(r, valid)
			for it := pieces.Front(); it.Ok(); it = it.Next() {
				CopyRegion(dst, comp, fa.fabs[nb.Index], comp, it.Box(), n)
				atomic.AddInt64(&copies, 1)
			}
		}
	})
	fa.Log.WithFields(logrus.Fields{
		"boxes":  fa.ba.Len(),
		"ngrow":  fa.ngrow,
		"copies": copies,
	}).Debug("boxlib filled ghost cells")
}

func (fa *FabArray[T]) checkWithin(op string, o *options) {
	if o.within != nil {
		fa.checkType(op, o.within.Type)
	}
}

func (fa *FabArray[T]) checkType(op string, t IndexType) {
	if fa.ba.Len() > 0 {
		checkSameType(op, fa.ba.IxType(), t)
	}
}
