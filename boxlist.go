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
	"container/list"
	"strings"
)

// BoxList is an ordered list of Boxes that all share one IndexType. It is
// the working type for set operations on unions of boxes.
//
// Appending and prepending are O(1). Removing an element through a
// BoxListIterator invalidates only that iterator.
type BoxList struct {
	l     *list.List
	btype IndexType
}

// BoxListIterator points at one element of a BoxList.
type BoxListIterator struct {
	e *list.Element
}

// Ok reports whether the iterator points at an element.
func (it BoxListIterator) Ok() bool { return it.e != nil }

// Box returns the Box at the iterator.
func (it BoxListIterator) Box() Box { return it.e.Value.(Box) }

// Next returns an iterator to the following element.
func (it BoxListIterator) Next() BoxListIterator { return BoxListIterator{it.e.Next()} }

// Prev returns an iterator to the preceding element.
func (it BoxListIterator) Prev() BoxListIterator { return BoxListIterator{it.e.Prev()} }

// NewBoxList returns an empty BoxList of type t.
func NewBoxList(t IndexType) *BoxList {
	return &BoxList{l: list.New(), btype: t}
}

// BoxListFromBoxes returns a BoxList holding boxes in order. All boxes
// must share t.
func BoxListFromBoxes(t IndexType, boxes ...Box) *BoxList {
	bl := NewBoxList(t)
	for _, b := range boxes {
		bl.Append(b)
	}
	return bl
}

// IxType returns the IndexType shared by the boxes in bl.
func (bl *BoxList) IxType() IndexType { return bl.btype }

// Len returns the number of boxes in bl.
func (bl *BoxList) Len() int { return bl.l.Len() }

// IsEmpty reports whether bl has no boxes.
func (bl *BoxList) IsEmpty() bool { return bl.l.Len() == 0 }

// Front returns an iterator to the first box.
func (bl *BoxList) Front() BoxListIterator { return BoxListIterator{bl.l.Front()} }

// Back returns an iterator to the last box.
func (bl *BoxList) Back() BoxListIterator { return BoxListIterator{bl.l.Back()} }

// Boxes returns a copy of the boxes in order.
func (bl *BoxList) Boxes() []Box {
	o := make([]Box, 0, bl.l.Len())
	for e := bl.l.Front(); e != nil; e = e.Next() {
		o = append(o, e.Value.(Box))
	}
	return o
}

// Append adds b to the end of bl.
func (bl *BoxList) Append(b Box) {
	checkSameType("BoxList.Append", bl.btype, b.Type)
	bl.l.PushBack(b)
}

// Prepend adds b to the front of bl.
func (bl *BoxList) Prepend(b Box) {
	checkSameType("BoxList.Prepend", bl.btype, b.Type)
	bl.l.PushFront(b)
}

// Join appends copies of every box in o to bl.
func (bl *BoxList) Join(o *BoxList) {
	checkSameType("BoxList.Join", bl.btype, o.btype)
	bl.l.PushBackList(o.l)
}

// InsertAfter adds b after the element at it.
func (bl *BoxList) InsertAfter(it BoxListIterator, b Box) BoxListIterator {
	checkSameType("BoxList.InsertAfter", bl.btype, b.Type)
	return BoxListIterator{bl.l.InsertAfter(b, it.e)}
}

// InsertBefore adds b before the element at it.
func (bl *BoxList) InsertBefore(it BoxListIterator, b Box) BoxListIterator {
	checkSameType("BoxList.InsertBefore", bl.btype, b.Type)
	return BoxListIterator{bl.l.InsertBefore(b, it.e)}
}

// RemoveAt deletes the element at it and returns an iterator to the
// element that followed it.
func (bl *BoxList) RemoveAt(it BoxListIterator) BoxListIterator {
	next := it.e.Next()
	bl.l.Remove(it.e)
	return BoxListIterator{next}
}

// Remove deletes every box equal to b.
func (bl *BoxList) Remove(b Box) *BoxList {
	checkSameType("BoxList.Remove", bl.btype, b.Type)
	for it := bl.Front(); it.Ok(); {
		if it.Box() == b {
			it = bl.RemoveAt(it)
		} else {
			it = it.Next()
		}
	}
	return bl
}

// Set replaces the box at it.
func (bl *BoxList) Set(it BoxListIterator, b Box) {
	checkSameType("BoxList.Set", bl.btype, b.Type)
	it.e.Value = b
}

// Clear removes all boxes.
func (bl *BoxList) Clear() { bl.l.Init() }

// Clone returns an independent copy of bl.
func (bl *BoxList) Clone() *BoxList {
	o := NewBoxList(bl.btype)
	o.l.PushBackList(bl.l)
	return o
}

// Ok reports whether every box is valid and of the list's IndexType. An
// empty list is Ok.
func (bl *BoxList) Ok() bool {
	for it := bl.Front(); it.Ok(); it = it.Next() {
		b := it.Box()
		if !b.Ok() || b.Type != bl.btype {
			return false
		}
	}
	return true
}

// Equal reports whether bl and o hold the same boxes in the same order.
func (bl *BoxList) Equal(o *BoxList) bool {
	if bl.btype != o.btype || bl.Len() != o.Len() {
		return false
	}
	for a, b := bl.Front(), o.Front(); a.Ok(); a, b = a.Next(), b.Next() {
		if a.Box() != b.Box() {
			return false
		}
	}
	return true
}

// NumPts returns the summed volume of the boxes. It equals the volume of
// the union only when bl is disjoint.
func (bl *BoxList) NumPts() int {
	n := 0
	for it := bl.Front(); it.Ok(); it = it.Next() {
		n += it.Box().NumPts()
	}
	return n
}

// MinimalBox returns the smallest Box containing every box in bl. It
// returns a degenerate box if bl is empty.
func (bl *BoxList) MinimalBox() Box {
	if bl.IsEmpty() {
		return Box{Lo: Uniform(0), Hi: Uniform(-1), Type: bl.btype}
	}
	it := bl.Front()
	mb := it.Box()
	for it = it.Next(); it.Ok(); it = it.Next() {
		mb = MinBox(mb, it.Box())
	}
	return mb
}

// Contains reports whether iv lies in any box of bl.
func (bl *BoxList) Contains(iv IntVect) bool {
	for it := bl.Front(); it.Ok(); it = it.Next() {
		if it.Box().Contains(iv) {
			return true
		}
	}
	return false
}

// ContainsBox reports whether the union of bl covers b.
func (bl *BoxList) ContainsBox(b Box) bool {
	checkSameType("BoxList.ContainsBox", bl.btype, b.Type)
	return ComplementIn(b, bl).IsEmpty()
}

// ContainsList reports whether the union of bl covers every box in o.
func (bl *BoxList) ContainsList(o *BoxList) bool {
	for it := o.Front(); it.Ok(); it = it.Next() {
		if !bl.ContainsBox(it.Box()) {
			return false
		}
	}
	return true
}

// IsDisjoint reports whether no two boxes in bl overlap. The boxes are not
// assumed to be sorted, so this compares every pair.
func (bl *BoxList) IsDisjoint() bool {
	for a := bl.Front(); a.Ok(); a = a.Next() {
		for b := a.Next(); b.Ok(); b = b.Next() {
			if intersects(a.Box(), b.Box()) {
				return false
			}
		}
	}
	return true
}

// String lists the boxes, one per line.
func (bl *BoxList) String() string {
	parts := make([]string, 0, bl.Len())
	for it := bl.Front(); it.Ok(); it = it.Next() {
		parts = append(parts, it.Box().String())
	}
	return "(BoxList " + bl.btype.String() + "\n" + strings.Join(parts, "\n") + "\n)"
}

// apply replaces every box with f(box) and sets the list type to t.
func (bl *BoxList) apply(t IndexType, f func(Box) Box) *BoxList {
	for e := bl.l.Front(); e != nil; e = e.Next() {
		e.Value = f(e.Value.(Box))
	}
	bl.btype = t
	return bl
}

// Refine refines every box by ratio.
func (bl *BoxList) Refine(ratio int) *BoxList {
	return bl.apply(bl.btype, func(b Box) Box { return b.Refine(ratio) })
}

// Coarsen coarsens every box by ratio.
func (bl *BoxList) Coarsen(ratio int) *BoxList {
	return bl.apply(bl.btype, func(b Box) Box { return b.Coarsen(ratio) })
}

// Accrete grows every box by n on every side.
func (bl *BoxList) Accrete(n int) *BoxList {
	return bl.apply(bl.btype, func(b Box) Box { return b.Grow(n) })
}

// Shift translates every box by n along dir.
func (bl *BoxList) Shift(dir, n int) *BoxList {
	return bl.apply(bl.btype, func(b Box) Box { return b.Shift(dir, n) })
}

// ShiftHalf shifts every box by nHalf half-cells along dir.
func (bl *BoxList) ShiftHalf(dir, nHalf int) *BoxList {
	t := bl.btype
	if nHalf%2 != 0 {
		t = t.Flip(dir)
	}
	return bl.apply(t, func(b Box) Box { return b.ShiftHalf(dir, nHalf) })
}

// ShiftHalfVect shifts every box by v[d] half-cells along each axis d.
func (bl *BoxList) ShiftHalfVect(v IntVect) *BoxList {
	t := bl.btype
	for d := range v {
		if v[d]%2 != 0 {
			t = t.Flip(d)
		}
	}
	return bl.apply(t, func(b Box) Box { return b.ShiftHalfVect(v) })
}

// SurroundingNodes converts every box to node centering.
func (bl *BoxList) SurroundingNodes() *BoxList { return bl.Convert(NodeType()) }

// SurroundingNodesDir converts every box to node centering along dir.
func (bl *BoxList) SurroundingNodesDir(dir int) *BoxList {
	checkDir("BoxList.SurroundingNodesDir", dir)
	return bl.Convert(bl.btype.Set(dir))
}

// EnclosedCells converts every box to cell centering.
func (bl *BoxList) EnclosedCells() *BoxList { return bl.Convert(CellType()) }

// EnclosedCellsDir converts every box to cell centering along dir.
func (bl *BoxList) EnclosedCellsDir(dir int) *BoxList {
	checkDir("BoxList.EnclosedCellsDir", dir)
	return bl.Convert(bl.btype.Unset(dir))
}

// Convert converts every box to IndexType t.
func (bl *BoxList) Convert(t IndexType) *BoxList {
	return bl.apply(t, func(b Box) Box { return b.Convert(t) })
}
