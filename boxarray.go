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
	"github.com/spatialmodel/boxlib/internal/hash"
)

// BoxArray is a dense, indexable collection of Boxes. It carries a
// signature of its contents that is recomputed on every mutation, which
// makes Equal an O(1) comparison.
//
// A BoxArray exclusively owns its storage; Clone makes an independent copy.
type BoxArray struct {
	boxes   []Box
	hashSig uint64
	defined bool
}

// NewBoxArray returns a BoxArray holding n zero-valued boxes.
func NewBoxArray(n int) *BoxArray {
	if n < 0 {
		fail(ErrResource, "NewBoxArray", "negative length %d", n)
	}
	ba := &BoxArray{boxes: make([]Box, n), defined: n > 0}
	ba.rehash()
	return ba
}

// BoxArrayFromList returns a BoxArray holding the boxes of bl in order.
func BoxArrayFromList(bl *BoxList) *BoxArray {
	ba := new(BoxArray)
	ba.Define(bl)
	return ba
}

// BoxArrayFromBoxes returns a BoxArray holding a copy of boxes.
func BoxArrayFromBoxes(boxes ...Box) *BoxArray {
	ba := &BoxArray{boxes: append([]Box(nil), boxes...), defined: true}
	ba.rehash()
	return ba
}

// Define fills an empty BoxArray from bl. It panics if ba already holds
// boxes.
func (ba *BoxArray) Define(bl *BoxList) {
	if ba.defined {
		fail(ErrState, "BoxArray.Define", "BoxArray is already defined")
	}
	ba.boxes = bl.Boxes()
	ba.defined = true
	ba.rehash()
}

// Clone returns a deep copy of ba.
func (ba *BoxArray) Clone() *BoxArray {
	return &BoxArray{
		boxes:   append([]Box(nil), ba.boxes...),
		hashSig: ba.hashSig,
		defined: ba.defined,
	}
}

// Clear removes every box.
func (ba *BoxArray) Clear() {
	ba.boxes = nil
	ba.defined = false
	ba.rehash()
}

// Resize changes the length of ba, keeping existing boxes and padding with
// zero-valued boxes.
func (ba *BoxArray) Resize(n int) {
	if n < 0 {
		fail(ErrResource, "BoxArray.Resize", "negative length %d", n)
	}
	if n <= cap(ba.boxes) {
		old := len(ba.boxes)
		ba.boxes = ba.boxes[:n]
		for i := old; i < n; i++ {
			ba.boxes[i] = Box{}
		}
	} else {
		b := make([]Box, n)
		copy(b, ba.boxes)
		ba.boxes = b
	}
	ba.defined = true
	ba.rehash()
}

// Len returns the number of boxes.
func (ba *BoxArray) Len() int { return len(ba.boxes) }

// Ready reports whether ba holds any boxes.
func (ba *BoxArray) Ready() bool { return len(ba.boxes) > 0 }

// Get returns box i.
func (ba *BoxArray) Get(i int) Box {
	ba.checkIndex("BoxArray.Get", i)
	return ba.boxes[i]
}

// Set replaces box i.
func (ba *BoxArray) Set(i int, b Box) {
	ba.checkIndex("BoxArray.Set", i)
	ba.boxes[i] = b
	ba.rehash()
}

// Boxes returns a copy of the boxes.
func (ba *BoxArray) Boxes() []Box {
	return append([]Box(nil), ba.boxes...)
}

func (ba *BoxArray) checkIndex(op string, i int) {
	if i < 0 || i >= len(ba.boxes) {
		fail(ErrIndex, op, "index %d out of range [0,%d)", i, len(ba.boxes))
	}
}

// HashSig returns the signature of the contents.
func (ba *BoxArray) HashSig() uint64 { return ba.hashSig }

// Equal reports whether ba and o have the same signature. Arrays with the
// same boxes in the same order are always Equal. Different arrays are
// Equal only on a signature collision, which happens with probability
// near 2⁻⁶⁴. The signature depends on order, so a permutation of the same
// boxes is not Equal. Use Same when a collision is unacceptable.
func (ba *BoxArray) Equal(o *BoxArray) bool {
	return ba.hashSig == o.hashSig
}

// Same reports whether ba and o hold identical boxes in identical order.
func (ba *BoxArray) Same(o *BoxArray) bool {
	if ba.hashSig != o.hashSig || len(ba.boxes) != len(o.boxes) {
		return false
	}
	for i := range ba.boxes {
		if ba.boxes[i] != o.boxes[i] {
			return false
		}
	}
	return true
}

func (ba *BoxArray) rehash() {
	ba.hashSig = signature(ba.boxes)
}

// signature folds the length and then each box's corners and type, in
// order.
func signature(boxes []Box) uint64 {
	s := hash.New().Int(len(boxes))
	for _, b := range boxes {
		s.Ints(b.Lo[:]...)
		s.Ints(b.Hi[:]...)
		s.Int(int(b.Type))
	}
	return s.Sum64()
}

// Ok reports whether every box is valid and all share one IndexType. An
// empty BoxArray is Ok.
func (ba *BoxArray) Ok() bool {
	for _, b := range ba.boxes {
		if !b.Ok() || b.Type != ba.boxes[0].Type {
			return false
		}
	}
	return true
}

// IsDisjoint reports whether no two boxes overlap.
func (ba *BoxArray) IsDisjoint() bool {
	for i := range ba.boxes {
		for j := i + 1; j < len(ba.boxes); j++ {
			if intersects(ba.boxes[i], ba.boxes[j]) {
				return false
			}
		}
	}
	return true
}

// OkPartition reports whether ba is Ok and disjoint, so that it partitions
// its union.
func (ba *BoxArray) OkPartition() bool {
	return ba.Ok() && ba.IsDisjoint()
}

// IxType returns the IndexType of the boxes, or CellType if ba is empty.
func (ba *BoxArray) IxType() IndexType {
	if len(ba.boxes) == 0 {
		return CellType()
	}
	return ba.boxes[0].Type
}

// BoxList returns the boxes as a BoxList.
func (ba *BoxArray) BoxList() *BoxList {
	return BoxListFromBoxes(ba.IxType(), ba.boxes...)
}

// Contains reports whether iv lies in any box.
func (ba *BoxArray) Contains(iv IntVect) bool {
	for _, b := range ba.boxes {
		if b.Contains(iv) {
			return true
		}
	}
	return false
}

// ContainsBox reports whether the union of ba covers b.
func (ba *BoxArray) ContainsBox(b Box) bool {
	if len(ba.boxes) == 0 {
		return b.IsEmpty()
	}
	return ba.BoxList().ContainsBox(b)
}

// ContainsArray reports whether the union of ba covers every box in o.
func (ba *BoxArray) ContainsArray(o *BoxArray) bool {
	if len(ba.boxes) == 0 {
		return o.NumPts() == 0
	}
	bl := ba.BoxList()
	for _, b := range o.boxes {
		if !bl.ContainsBox(b) {
			return false
		}
	}
	return true
}

// MinimalBox returns the smallest Box containing every box in ba.
func (ba *BoxArray) MinimalBox() Box {
	return ba.BoxList().MinimalBox()
}

// NumPts returns the summed volume of the boxes.
func (ba *BoxArray) NumPts() int {
	n := 0
	for _, b := range ba.boxes {
		n += b.NumPts()
	}
	return n
}

func (ba *BoxArray) apply(f func(Box) Box) *BoxArray {
	for i, b := range ba.boxes {
		ba.boxes[i] = f(b)
	}
	ba.rehash()
	return ba
}

// MaxSize splits boxes so that no side is longer than chunk. The order of
// the resulting boxes follows BoxList.MaxSize.
func (ba *BoxArray) MaxSize(chunk int) *BoxArray {
	return ba.MaxSizeVect(Uniform(chunk))
}

// MaxSizeVect splits boxes so that no side along d is longer than chunk[d].
func (ba *BoxArray) MaxSizeVect(chunk IntVect) *BoxArray {
	ba.boxes = ba.BoxList().MaxSizeVect(chunk).Boxes()
	ba.rehash()
	return ba
}

// Refine refines every box by ratio.
func (ba *BoxArray) Refine(ratio int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.Refine(ratio) })
}

// RefineVect refines every box by ratio.
func (ba *BoxArray) RefineVect(ratio IntVect) *BoxArray {
	return ba.apply(func(b Box) Box { return b.RefineVect(ratio) })
}

// Coarsen coarsens every box by ratio.
func (ba *BoxArray) Coarsen(ratio int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.Coarsen(ratio) })
}

// CoarsenVect coarsens every box by ratio.
func (ba *BoxArray) CoarsenVect(ratio IntVect) *BoxArray {
	return ba.apply(func(b Box) Box { return b.CoarsenVect(ratio) })
}

// Grow grows every box by n on every side.
func (ba *BoxArray) Grow(n int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.Grow(n) })
}

// GrowVect grows every box by v.
func (ba *BoxArray) GrowVect(v IntVect) *BoxArray {
	return ba.apply(func(b Box) Box { return b.GrowVect(v) })
}

// GrowDir grows every box by n on both ends of axis dir.
func (ba *BoxArray) GrowDir(dir, n int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.GrowDir(dir, n, n) })
}

// Shift translates every box by n along dir.
func (ba *BoxArray) Shift(dir, n int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.Shift(dir, n) })
}

// ShiftHalf shifts every box by nHalf half-cells along dir.
func (ba *BoxArray) ShiftHalf(dir, nHalf int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.ShiftHalf(dir, nHalf) })
}

// ShiftHalfVect shifts every box by v half-cells.
func (ba *BoxArray) ShiftHalfVect(v IntVect) *BoxArray {
	return ba.apply(func(b Box) Box { return b.ShiftHalfVect(v) })
}

// Convert converts every box to IndexType t.
func (ba *BoxArray) Convert(t IndexType) *BoxArray {
	return ba.apply(func(b Box) Box { return b.Convert(t) })
}

// SurroundingNodes converts every box to node centering.
func (ba *BoxArray) SurroundingNodes() *BoxArray {
	return ba.apply(func(b Box) Box { return b.SurroundingNodes() })
}

// SurroundingNodesDir converts every box to node centering along dir.
func (ba *BoxArray) SurroundingNodesDir(dir int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.SurroundingNodesDir(dir) })
}

// EnclosedCells converts every box to cell centering.
func (ba *BoxArray) EnclosedCells() *BoxArray {
	return ba.apply(func(b Box) Box { return b.EnclosedCells() })
}

// EnclosedCellsDir converts every box to cell centering along dir.
func (ba *BoxArray) EnclosedCellsDir(dir int) *BoxArray {
	return ba.apply(func(b Box) Box { return b.EnclosedCellsDir(dir) })
}

// BoxComplement returns the part of b1 outside b2.
func BoxComplement(b1, b2 Box) *BoxArray {
	return BoxArrayFromList(BoxDiff(b1, b2))
}

// ComplementInArray returns the part of b not covered by ba.
func ComplementInArray(b Box, ba *BoxArray) *BoxArray {
	bl := NewBoxList(b.Type)
	for _, x := range ba.boxes {
		bl.Append(x)
	}
	return BoxArrayFromList(ComplementIn(b, bl))
}

// IntersectArray returns the non-empty intersections of the boxes in ba
// with b.
func IntersectArray(ba *BoxArray, b Box) *BoxArray {
	return BoxArrayFromList(ba.BoxList().Intersect(b))
}
