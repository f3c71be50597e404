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

// Fab is a multi-component data buffer defined over a Box. Component c of
// the point iv is Data(c)[Box().Index(iv)].
type Fab[T any] interface {
	Box() Box
	NComp() int
	Data(comp int) []T
}

// Allocator creates a buffer over b with nComp components.
type Allocator[T any] func(b Box, nComp int) Fab[T]

// BaseFab is the plain Fab: one contiguous slab per component, stored
// first-axis-fastest.
type BaseFab[T any] struct {
	box   Box
	ncomp int
	data  []T
}

// NewBaseFab allocates a zeroed BaseFab over b.
func NewBaseFab[T any](b Box, nComp int) *BaseFab[T] {
	if !b.Ok() {
		fail(ErrGeometry, "NewBaseFab", "invalid box %v", b)
	}
	if nComp < 1 {
		fail(ErrIndex, "NewBaseFab", "component count %d is below 1", nComp)
	}
	return &BaseFab[T]{
		box:   b,
		ncomp: nComp,
		data:  make([]T, b.NumPts()*nComp),
	}
}

// AllocBaseFab is an Allocator of BaseFabs.
func AllocBaseFab[T any](b Box, nComp int) Fab[T] {
	return NewBaseFab[T](b, nComp)
}

// Box returns the region the buffer is defined over.
func (f *BaseFab[T]) Box() Box { return f.box }

// NComp returns the number of components.
func (f *BaseFab[T]) NComp() int { return f.ncomp }

// Data returns the slab of component comp.
func (f *BaseFab[T]) Data(comp int) []T {
	checkComps[T]("BaseFab.Data", f, comp, 1)
	n := len(f.data) / f.ncomp
	return f.data[comp*n : (comp+1)*n]
}

// Get returns component comp at iv.
func (f *BaseFab[T]) Get(iv IntVect, comp int) T {
	f.checkPoint("BaseFab.Get", iv)
	return f.Data(comp)[f.box.Index(iv)]
}

// Set sets component comp at iv.
func (f *BaseFab[T]) Set(iv IntVect, comp int, v T) {
	f.checkPoint("BaseFab.Set", iv)
	f.Data(comp)[f.box.Index(iv)] = v
}

// SetVal sets every component at every point to v.
func (f *BaseFab[T]) SetVal(v T) {
	for i := range f.data {
		f.data[i] = v
	}
}

func (f *BaseFab[T]) checkPoint(op string, iv IntVect) {
	if !f.box.Contains(iv) {
		fail(ErrIndex, op, "point %v is outside %v", iv, f.box)
	}
}

func checkComps[T any](op string, f Fab[T], comp, nComp int) {
	if comp < 0 || nComp < 0 || comp+nComp > f.NComp() {
		fail(ErrIndex, op, "components [%d,%d) out of range [0,%d)", comp, comp+nComp, f.NComp())
	}
}

func checkRegion[T any](op string, f Fab[T], region Box) {
	if !region.IsEmpty() && !f.Box().ContainsBox(region) {
		fail(ErrGeometry, op, "region %v is outside buffer %v", region, f.Box())
	}
}

// forEachRow calls fn with the first point and length of every run of
// region along axis 0.
func forEachRow(region Box, fn func(start IntVect, n int)) {
	if region.IsEmpty() {
		return
	}
	n := region.Length(0)
	iv := region.Lo
	for {
		fn(iv, n)
		d := 1
		for ; d < SpaceDim; d++ {
			if iv[d] < region.Hi[d] {
				iv[d]++
				break
			}
			iv[d] = region.Lo[d]
		}
		if d == SpaceDim {
			return
		}
	}
}

// rows calls fn with the slice of component comp of f for every run of
// region along axis 0.
func rows[T any](f Fab[T], comp int, region Box, fn func(row []T)) {
	data := f.Data(comp)
	b := f.Box()
	forEachRow(region, func(start IntVect, n int) {
		i := b.Index(start)
		fn(data[i : i+n])
	})
}

// CopyRegion copies nComp components of src starting at srcComp into dst
// starting at dstComp, over region. region must lie in both buffers.
func CopyRegion[T any](dst Fab[T], dstComp int, src Fab[T], srcComp int, region Box, nComp int) {
	if region.IsEmpty() {
		return
	}
	checkComps("CopyRegion", src, srcComp, nComp)
	checkComps("CopyRegion", dst, dstComp, nComp)
	checkRegion("CopyRegion", src, region)
	checkRegion("CopyRegion", dst, region)
	sb, db := src.Box(), dst.Box()
	for c := 0; c < nComp; c++ {
		s, d := src.Data(srcComp+c), dst.Data(dstComp+c)
		forEachRow(region, func(start IntVect, n int) {
			si, di := sb.Index(start), db.Index(start)
			copy(d[di:di+n], s[si:si+n])
		})
	}
}

// FillRegion sets nComp components of f starting at comp to v over region.
func FillRegion[T any](f Fab[T], v T, region Box, comp, nComp int) {
	if region.IsEmpty() {
		return
	}
	checkComps("FillRegion", f, comp, nComp)
	checkRegion("FillRegion", f, region)
	for c := comp; c < comp+nComp; c++ {
		rows(f, c, region, func(row []T) {
			for i := range row {
				row[i] = v
			}
		})
	}
}
