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
	"testing"

	"github.com/kr/pretty"
)

func cellList(boxes ...Box) *BoxList {
	return BoxListFromBoxes(CellType(), boxes...)
}

// samePoints checks that, within region, the union of bl holds exactly the
// points for which in is true.
func samePoints(t *testing.T, bl *BoxList, region Box, in func(IntVect) bool) {
	t.Helper()
	for i := region.Lo[0]; i <= region.Hi[0]; i++ {
		for j := region.Lo[1]; j <= region.Hi[1]; j++ {
			iv := IntVect{i, j}
			if bl.Contains(iv) != in(iv) {
				t.Errorf("point %v: in list = %v, want %v", iv, bl.Contains(iv), in(iv))
			}
		}
	}
}

func TestSimplify(t *testing.T) {
	bl := cellList(box2(0, 0, 3, 3), box2(4, 0, 7, 3))
	if n := bl.Simplify(); n != 1 {
		t.Errorf("merges = %d, want 1", n)
	}
	if diff := pretty.Diff(bl.Boxes(), []Box{box2(0, 0, 7, 3)}); len(diff) != 0 {
		t.Error(diff)
	}

	bl = cellList(box2(0, 0, 3, 3), box2(4, 0, 7, 3), box2(0, 4, 3, 7), box2(4, 4, 7, 7))
	if n := bl.Minimize(); n != 3 {
		t.Errorf("Minimize merges = %d, want 3", n)
	}
	if diff := pretty.Diff(bl.Boxes(), []Box{box2(0, 0, 7, 7)}); len(diff) != 0 {
		t.Error(diff)
	}
	if n := bl.Simplify(); n != 0 {
		t.Errorf("Simplify after Minimize merged %d", n)
	}

	// Not adjacent: a one-cell gap.
	bl = cellList(box2(0, 0, 3, 3), box2(5, 0, 7, 3))
	if n := bl.Simplify(); n != 0 || bl.Len() != 2 {
		t.Errorf("merged boxes with a gap: %v", bl)
	}
	// Adjacent but with different extents on the other axis.
	bl = cellList(box2(0, 0, 3, 3), box2(4, 0, 7, 4))
	if n := bl.Simplify(); n != 0 {
		t.Errorf("merged boxes of different heights: %v", bl)
	}
}

func TestComplementIn(t *testing.T) {
	b := box2(0, 0, 3, 3)
	hole := box2(1, 1, 2, 2)
	c := ComplementIn(b, cellList(hole))
	if c.NumPts() != 12 {
		t.Errorf("complement has %d points, want 12", c.NumPts())
	}
	if !c.IsDisjoint() {
		t.Errorf("complement is not disjoint: %v", c)
	}
	samePoints(t, c, b.Grow(1), func(iv IntVect) bool {
		return b.Contains(iv) && !hole.Contains(iv)
	})

	holes := cellList(box2(-2, -2, 0, 5), box2(2, 2, 9, 9), box2(1, 0, 1, 0))
	c = ComplementIn(b, holes)
	if !c.IsDisjoint() {
		t.Errorf("complement is not disjoint: %v", c)
	}
	samePoints(t, c, b.Grow(1), func(iv IntVect) bool {
		return b.Contains(iv) && !holes.Contains(iv)
	})

	if c := ComplementIn(b, cellList(b.Grow(1))); !c.IsEmpty() {
		t.Errorf("complement of a covering box should be empty: %v", c)
	}
	if c := ComplementIn(b, cellList()); c.Len() != 1 || c.Front().Box() != b {
		t.Errorf("complement of nothing should be the box: %v", c)
	}

	in := NewBoxList(CellType())
	in.ComplementIn(b, cellList(hole))
	if in.NumPts() != 12 {
		t.Errorf("in-place complement has %d points", in.NumPts())
	}
}

func TestBoxDiff(t *testing.T) {
	a := box2(0, 0, 3, 3)
	if d := BoxDiff(a, box2(10, 10, 11, 11)); d.Len() != 1 || d.Front().Box() != a {
		t.Errorf("disjoint diff: %v", d)
	}
	if d := BoxDiff(a, a); !d.IsEmpty() {
		t.Errorf("self diff: %v", d)
	}
	d := BoxDiff(a, box2(0, 0, 1, 3))
	if diff := pretty.Diff(d.Boxes(), []Box{box2(2, 0, 3, 3)}); len(diff) != 0 {
		t.Error(diff)
	}
	if d := BoxDiff(a.Grow(1), a); d.Len() != 2*SpaceDim || d.NumPts() != 36-16 {
		t.Errorf("ring diff has %d pieces and %d points", d.Len(), d.NumPts())
	}
}

func TestMaxSize(t *testing.T) {
	b := box2(0, 0, 9, 9)
	bl := cellList(b).MaxSize(4)
	if bl.Len() != 16 {
		t.Errorf("got %d boxes, want 16", bl.Len())
	}
	for it := bl.Front(); it.Ok(); it = it.Next() {
		for d := 0; d < SpaceDim; d++ {
			if it.Box().Length(d) > 4 {
				t.Errorf("%v is too long along %d", it.Box(), d)
			}
		}
	}
	if bl.NumPts() != 100 || !bl.IsDisjoint() || !bl.ContainsBox(b) {
		t.Errorf("chunks do not partition the box: %v", bl)
	}

	n := cellList(b).SurroundingNodes().MaxSizeVect(IntVect{4, 20})
	for it := n.Front(); it.Ok(); it = it.Next() {
		if it.Box().Length(0) > 4 {
			t.Errorf("%v is too long", it.Box())
		}
	}
	if n.MinimalBox() != b.SurroundingNodes() {
		t.Errorf("node chunks cover %v", n.MinimalBox())
	}
	expectPanic(t, ErrGeometry, func() { cellList(b).SurroundingNodes().MaxSize(1) })
	expectPanic(t, ErrGeometry, func() { cellList(b).MaxSize(0) })
}

func TestBoxListIntersect(t *testing.T) {
	bl := cellList(box2(0, 0, 3, 3), box2(5, 5, 6, 6), box2(10, 10, 12, 12))
	IntersectBoxList(bl, box2(2, 2, 5, 5))
	if bl.Len() != 3 {
		t.Error("IntersectBoxList modified its argument")
	}
	bl.Intersect(box2(2, 2, 5, 5))
	want := []Box{box2(2, 2, 3, 3), box2(5, 5, 5, 5)}
	if diff := pretty.Diff(bl.Boxes(), want); len(diff) != 0 {
		t.Error(diff)
	}

	a := cellList(box2(0, 0, 3, 3), box2(4, 0, 7, 3))
	a.IntersectList(cellList(box2(2, 0, 5, 0), box2(0, 3, 7, 3)))
	want = []Box{box2(2, 0, 3, 0), box2(0, 3, 3, 3), box2(4, 0, 5, 0), box2(4, 3, 7, 3)}
	if diff := pretty.Diff(a.Boxes(), want); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestBoxListEditing(t *testing.T) {
	a, b, c := box2(0, 0, 0, 0), box2(1, 1, 1, 1), box2(2, 2, 2, 2)
	bl := NewBoxList(CellType())
	bl.Append(b)
	bl.Prepend(a)
	bl.InsertAfter(bl.Front().Next(), c)
	if diff := pretty.Diff(bl.Boxes(), []Box{a, b, c}); len(diff) != 0 {
		t.Error(diff)
	}
	it := bl.RemoveAt(bl.Front().Next())
	if it.Box() != c || bl.Len() != 2 {
		t.Errorf("RemoveAt returned %v", it.Box())
	}
	bl.InsertBefore(it, b)
	bl.Join(cellList(a))
	bl.Remove(a)
	if diff := pretty.Diff(bl.Boxes(), []Box{b, c}); len(diff) != 0 {
		t.Error(diff)
	}
	clone := bl.Clone()
	bl.Clear()
	if !bl.IsEmpty() || clone.Len() != 2 {
		t.Error("Clear or Clone")
	}
	if !clone.Equal(cellList(b, c)) || clone.Equal(cellList(c, b)) {
		t.Error("Equal")
	}
	expectPanic(t, ErrGeometry, func() { bl.Append(a.SurroundingNodes()) })
}

func TestBoxListQueries(t *testing.T) {
	bl := cellList(box2(0, 0, 3, 3), box2(4, 0, 7, 3))
	if !bl.ContainsBox(box2(2, 1, 5, 2)) {
		t.Error("union should contain a box straddling both")
	}
	if bl.ContainsBox(box2(2, 1, 8, 2)) {
		t.Error("union should not contain a box sticking out")
	}
	if !bl.ContainsList(cellList(box2(0, 0, 1, 1), box2(6, 2, 7, 3))) {
		t.Error("ContainsList")
	}
	if bl.MinimalBox() != box2(0, 0, 7, 3) {
		t.Errorf("MinimalBox: %v", bl.MinimalBox())
	}
	if !cellList().MinimalBox().IsEmpty() {
		t.Error("MinimalBox of an empty list should be empty")
	}
	if !bl.IsDisjoint() || cellList(box2(0, 0, 3, 3), box2(3, 3, 4, 4)).IsDisjoint() {
		t.Error("IsDisjoint")
	}
	if !bl.Ok() {
		t.Error("Ok")
	}
	if bl.Clone().Accrete(1).NumPts() != 2*36 {
		t.Error("Accrete")
	}
	r := bl.Clone().Refine(2).Coarsen(2)
	if !r.Equal(bl) {
		t.Errorf("refine/coarsen: %v", r)
	}
	sh := bl.Clone().ShiftHalf(0, 1)
	if sh.IxType() != CellType().Set(0) || sh.Front().Box().Type != sh.IxType() {
		t.Errorf("ShiftHalf list type %v", sh.IxType())
	}
	sh.ShiftHalf(0, -1)
	if !sh.Equal(bl) {
		t.Errorf("ShiftHalf round trip: %v", sh)
	}
	if n := bl.Clone().SurroundingNodes(); n.IxType() != NodeType() || !n.EnclosedCells().Equal(bl) {
		t.Errorf("SurroundingNodes: %v", n)
	}
}
