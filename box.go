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

// Box is a closed rectangle of integer indices. Lo and Hi are both
// inclusive. Type controls how Hi is interpreted when the box is refined,
// coarsened or converted: along a node-centered axis a box spanning the
// same physical extent as a cell-centered one has one more index.
//
// A Box with Lo > Hi on any axis is degenerate; it represents the empty
// set and is the result of intersecting boxes that do not overlap.
type Box struct {
	Lo, Hi IntVect
	Type   IndexType
}

// NewBox returns a cell-centered Box with the given corners.
func NewBox(lo, hi IntVect) Box {
	return Box{Lo: lo, Hi: hi}
}

// Ok reports whether b is non-degenerate.
func (b Box) Ok() bool {
	return b.Lo.LessEqual(b.Hi) && b.Type.Ok()
}

// IsEmpty reports whether b contains no indices.
func (b Box) IsEmpty() bool {
	return !b.Lo.LessEqual(b.Hi)
}

// Length returns the number of indices along axis dir.
func (b Box) Length(dir int) int {
	return b.Hi[dir] - b.Lo[dir] + 1
}

// Size returns the number of indices along each axis.
func (b Box) Size() IntVect {
	return b.Hi.Sub(b.Lo).Add(Uniform(1))
}

// NumPts returns the number of indices in b, or 0 if b is degenerate.
func (b Box) NumPts() int {
	if b.IsEmpty() {
		return 0
	}
	return b.Size().Product()
}

// Contains reports whether iv lies in b.
func (b Box) Contains(iv IntVect) bool {
	return b.Lo.LessEqual(iv) && iv.LessEqual(b.Hi)
}

// ContainsBox reports whether o lies entirely in b. The boxes must share
// an IndexType.
func (b Box) ContainsBox(o Box) bool {
	checkSameType("Box.ContainsBox", b.Type, o.Type)
	return b.Lo.LessEqual(o.Lo) && o.Hi.LessEqual(b.Hi)
}

// Intersects reports whether b and o share at least one index.
func (b Box) Intersects(o Box) bool {
	checkSameType("Box.Intersects", b.Type, o.Type)
	return intersects(b, o)
}

func intersects(a, b Box) bool {
	return a.Lo.Max(b.Lo).LessEqual(a.Hi.Min(b.Hi))
}

// Intersect returns the intersection of a and b. The result is degenerate
// when the boxes do not overlap; callers must check IsEmpty before using it.
func Intersect(a, b Box) Box {
	checkSameType("Intersect", a.Type, b.Type)
	return Box{Lo: a.Lo.Max(b.Lo), Hi: a.Hi.Min(b.Hi), Type: a.Type}
}

// MinBox returns the smallest Box containing both a and b.
func MinBox(a, b Box) Box {
	checkSameType("MinBox", a.Type, b.Type)
	return Box{Lo: a.Lo.Min(b.Lo), Hi: a.Hi.Max(b.Hi), Type: a.Type}
}

// Grow returns b expanded by n indices on every side. Negative n shrinks.
func (b Box) Grow(n int) Box {
	return b.GrowVect(Uniform(n))
}

// GrowVect returns b expanded by v[d] on both sides of each axis d.
func (b Box) GrowVect(v IntVect) Box {
	b.Lo = b.Lo.Sub(v)
	b.Hi = b.Hi.Add(v)
	return b
}

// GrowDir returns b expanded by nLow below and nHigh above along axis dir.
func (b Box) GrowDir(dir, nLow, nHigh int) Box {
	checkDir("Box.GrowDir", dir)
	b.Lo[dir] -= nLow
	b.Hi[dir] += nHigh
	return b
}

// GrowLo returns b with its lower bound along dir moved down by n.
func (b Box) GrowLo(dir, n int) Box { return b.GrowDir(dir, n, 0) }

// GrowHi returns b with its upper bound along dir moved up by n.
func (b Box) GrowHi(dir, n int) Box { return b.GrowDir(dir, 0, n) }

// Refine returns b refined by ratio on every axis.
func (b Box) Refine(ratio int) Box {
	return b.RefineVect(Uniform(ratio))
}

// RefineVect returns b refined by ratio[d] along each axis d. Every cell
// becomes ratio[d] cells; along node axes each interval between nodes is
// subdivided, so the upper node lands on Hi*ratio.
func (b Box) RefineVect(ratio IntVect) Box {
	checkRatio("Box.RefineVect", ratio)
	for d := range b.Lo {
		b.Lo[d] *= ratio[d]
		if b.Type.Test(d) {
			b.Hi[d] *= ratio[d]
		} else {
			b.Hi[d] = (b.Hi[d]+1)*ratio[d] - 1
		}
	}
	return b
}

// Coarsen returns b coarsened by ratio on every axis.
func (b Box) Coarsen(ratio int) Box {
	return b.CoarsenVect(Uniform(ratio))
}

// CoarsenVect returns b coarsened by ratio[d] along each axis d. Lower
// bounds and cell-centered upper bounds are floor-divided. Node-centered
// upper bounds are rounded up so that the coarse box still covers every
// fine node.
func (b Box) CoarsenVect(ratio IntVect) Box {
	checkRatio("Box.CoarsenVect", ratio)
	for d := range b.Lo {
		b.Lo[d] = floorDiv(b.Lo[d], ratio[d])
		if b.Type.Test(d) {
			b.Hi[d] = ceilDiv(b.Hi[d], ratio[d])
		} else {
			b.Hi[d] = floorDiv(b.Hi[d], ratio[d])
		}
	}
	return b
}

func checkRatio(op string, ratio IntVect) {
	for d, r := range ratio {
		if r <= 0 {
			fail(ErrGeometry, op, "ratio %d along axis %d must be positive", r, d)
		}
	}
}

// Convert returns b with IndexType t. Axes that change from cell to node
// gain one index at the top; axes that change from node to cell lose one.
func (b Box) Convert(t IndexType) Box {
	for d := range b.Lo {
		switch {
		case !b.Type.Test(d) && t.Test(d):
			b.Hi[d]++
		case b.Type.Test(d) && !t.Test(d):
			b.Hi[d]--
		}
	}
	b.Type = t
	return b
}

// SurroundingNodes returns the node-centered box enclosing b.
func (b Box) SurroundingNodes() Box {
	return b.Convert(NodeType())
}

// SurroundingNodesDir returns b converted to node centering along dir only.
func (b Box) SurroundingNodesDir(dir int) Box {
	checkDir("Box.SurroundingNodesDir", dir)
	return b.Convert(b.Type.Set(dir))
}

// EnclosedCells returns the cell-centered box enclosed by b.
func (b Box) EnclosedCells() Box {
	return b.Convert(CellType())
}

// EnclosedCellsDir returns b converted to cell centering along dir only.
func (b Box) EnclosedCellsDir(dir int) Box {
	checkDir("Box.EnclosedCellsDir", dir)
	return b.Convert(b.Type.Unset(dir))
}

// Shift returns b translated by n indices along dir.
func (b Box) Shift(dir, n int) Box {
	checkDir("Box.Shift", dir)
	b.Lo[dir] += n
	b.Hi[dir] += n
	return b
}

// ShiftVect returns b translated by v.
func (b Box) ShiftVect(v IntVect) Box {
	b.Lo = b.Lo.Add(v)
	b.Hi = b.Hi.Add(v)
	return b
}

// ShiftHalf returns b translated by nHalf half-cells along dir. An odd
// number of half shifts toggles the centering of dir: cell centers move
// onto nodes and nodes onto cell centers.
func (b Box) ShiftHalf(dir, nHalf int) Box {
	checkDir("Box.ShiftHalf", dir)
	odd := nHalf%2 != 0
	shift := nHalf / 2
	node := b.Type.Test(dir)
	if odd {
		b.Type = b.Type.Flip(dir)
		if nHalf < 0 && node {
			shift--
		} else if nHalf > 0 && !node {
			shift++
		}
	}
	b.Lo[dir] += shift
	b.Hi[dir] += shift
	return b
}

// ShiftHalfVect applies ShiftHalf(d, v[d]) along every axis.
func (b Box) ShiftHalfVect(v IntVect) Box {
	for d := range v {
		b = b.ShiftHalf(d, v[d])
	}
	return b
}

// Chop splits b along dir at pos and returns the lower and upper pieces.
// Along a cell axis the pieces are [Lo,pos-1] and [pos,Hi]; along a node
// axis they share the node at pos.
func (b Box) Chop(dir, pos int) (lower, upper Box) {
	checkDir("Box.Chop", dir)
	lower, upper = b, b
	if b.Type.Test(dir) {
		if pos <= b.Lo[dir] || pos >= b.Hi[dir] {
			fail(ErrGeometry, "Box.Chop", "node chop position %d not inside (%d,%d)", pos, b.Lo[dir], b.Hi[dir])
		}
		lower.Hi[dir] = pos
	} else {
		if pos <= b.Lo[dir] || pos > b.Hi[dir] {
			fail(ErrGeometry, "Box.Chop", "cell chop position %d not inside (%d,%d]", pos, b.Lo[dir], b.Hi[dir])
		}
		lower.Hi[dir] = pos - 1
	}
	upper.Lo[dir] = pos
	return lower, upper
}

// Index returns the offset of iv in a first-axis-fastest traversal of b.
func (b Box) Index(iv IntVect) int {
	idx, stride := 0, 1
	for d := range iv {
		idx += (iv[d] - b.Lo[d]) * stride
		stride *= b.Hi[d] - b.Lo[d] + 1
	}
	return idx
}

// sameExceptDir reports whether a and b have identical extents on every axis
// other than dir.
func sameExceptDir(a, b Box, dir int) bool {
	for d := range a.Lo {
		if d != dir && (a.Lo[d] != b.Lo[d] || a.Hi[d] != b.Hi[d]) {
			return false
		}
	}
	return true
}
