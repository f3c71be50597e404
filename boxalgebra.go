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

// Intersect replaces every box with its intersection with b, dropping
// boxes that do not overlap b.
func (bl *BoxList) Intersect(b Box) *BoxList {
	checkSameType("BoxList.Intersect", bl.btype, b.Type)
	for it := bl.Front(); it.Ok(); {
		isect := Intersect(it.Box(), b)
		if isect.IsEmpty() {
			it = bl.RemoveAt(it)
			continue
		}
		bl.Set(it, isect)
		it = it.Next()
	}
	return bl
}

// IntersectList replaces bl with every non-empty pairwise intersection of
// a box in bl with a box in o.
func (bl *BoxList) IntersectList(o *BoxList) *BoxList {
	checkSameType("BoxList.IntersectList", bl.btype, o.btype)
	out := NewBoxList(bl.btype)
	for a := bl.Front(); a.Ok(); a = a.Next() {
		for b := o.Front(); b.Ok(); b = b.Next() {
			if isect := Intersect(a.Box(), b.Box()); !isect.IsEmpty() {
				out.Append(isect)
			}
		}
	}
	bl.l = out.l
	return bl
}

// IntersectBoxList returns a new BoxList holding the intersection of bl
// with b. bl is not modified.
func IntersectBoxList(bl *BoxList, b Box) *BoxList {
	return bl.Clone().Intersect(b)
}

// BoxDiff returns the part of b1 that is not in b2 as a list of disjoint
// boxes. When b2 covers b1 the list is empty; when they do not overlap the
// list holds b1 alone.
func BoxDiff(b1, b2 Box) *BoxList {
	checkSameType("BoxDiff", b1.Type, b2.Type)
	bl := NewBoxList(b1.Type)
	boxDiffInto(bl, b1, b2)
	return bl
}

// boxDiffInto appends the pieces of b1 outside b2 to bl. Each axis in turn
// peels the slab of b1 below b2 and the slab above it; what is left after
// the last axis lies inside b2 and is dropped.
func boxDiffInto(bl *BoxList, b1, b2 Box) {
	if b1.IsEmpty() {
		return
	}
	if !intersects(b1, b2) {
		bl.l.PushBack(b1)
		return
	}
	for d := 0; d < SpaceDim; d++ {
		if b1.Lo[d] < b2.Lo[d] {
			piece := b1
			piece.Hi[d] = b2.Lo[d] - 1
			bl.l.PushBack(piece)
			b1.Lo[d] = b2.Lo[d]
		}
		if b1.Hi[d] > b2.Hi[d] {
			piece := b1
			piece.Lo[d] = b2.Hi[d] + 1
			bl.l.PushBack(piece)
			b1.Hi[d] = b2.Hi[d]
		}
	}
}

// ComplementIn returns the part of b not covered by any box in bl, as a
// list of disjoint boxes.
func ComplementIn(b Box, bl *BoxList) *BoxList {
	checkSameType("ComplementIn", b.Type, bl.btype)
	work := NewBoxList(b.Type)
	if !b.IsEmpty() {
		work.l.PushBack(b)
	}
	for it := bl.Front(); it.Ok() && !work.IsEmpty(); it = it.Next() {
		work = subtract(work, it.Box())
	}
	return work
}

// ComplementIn replaces bl with the complement of o in b.
func (bl *BoxList) ComplementIn(b Box, o *BoxList) *BoxList {
	c := ComplementIn(b, o)
	bl.l = c.l
	bl.btype = c.btype
	return bl
}

// subtract removes b from every box in work.
func subtract(work *BoxList, b Box) *BoxList {
	out := NewBoxList(work.btype)
	for it := work.Front(); it.Ok(); it = it.Next() {
		boxDiffInto(out, it.Box(), b)
	}
	return out
}

// Simplify makes one pass over bl, merging each box with any later box
// that has identical extents on all axes but one and abuts it on that
// axis. It returns the number of merges. Merging never changes the set of
// covered indices.
func (bl *BoxList) Simplify() int {
	count := 0
	for a := bl.Front(); a.Ok(); a = a.Next() {
		for b := a.Next(); b.Ok(); {
			if m, ok := merge(a.Box(), b.Box()); ok {
				bl.Set(a, m)
				b = bl.RemoveAt(b)
				count++
				continue
			}
			b = b.Next()
		}
	}
	return count
}

// Minimize repeats Simplify until no more boxes can be merged and returns
// the total number of merges.
func (bl *BoxList) Minimize() int {
	total := 0
	for {
		n := bl.Simplify()
		if n == 0 {
			return total
		}
		total += n
	}
}

// merge returns the union of a and b if it is itself a box.
func merge(a, b Box) (Box, bool) {
	for d := 0; d < SpaceDim; d++ {
		if !sameExceptDir(a, b, d) {
			continue
		}
		if a.Hi[d]+1 == b.Lo[d] || b.Hi[d]+1 == a.Lo[d] {
			return MinBox(a, b), true
		}
	}
	return Box{}, false
}

// MaxSize splits boxes until no side is longer than chunk.
func (bl *BoxList) MaxSize(chunk int) *BoxList {
	return bl.MaxSizeVect(Uniform(chunk))
}

// MaxSizeVect splits boxes until no side along axis d is longer than
// chunk[d]. Oversized boxes are bisected as evenly as integer division
// allows and the pieces are checked again. Node-centered axes need a
// chunk of at least 2 because the two pieces share a node.
func (bl *BoxList) MaxSizeVect(chunk IntVect) *BoxList {
	for d, c := range chunk {
		least := 1
		if bl.btype.Test(d) {
			least = 2
		}
		if c < least {
			fail(ErrGeometry, "BoxList.MaxSizeVect", "chunk %d along axis %d is below %d", c, d, least)
		}
	}
	for it := bl.Front(); it.Ok(); it = it.Next() {
		for {
			b := it.Box()
			dir := -1
			for d := range chunk {
				if b.Length(d) > chunk[d] {
					dir = d
					break
				}
			}
			if dir < 0 {
				break
			}
			n := b.Length(dir)
			pos := b.Lo[dir] + n/2
			if bl.btype.Test(dir) {
				pos = b.Lo[dir] + (n-1)/2
			}
			lower, upper := b.Chop(dir, pos)
			bl.Set(it, lower)
			bl.InsertAfter(it, upper)
		}
	}
	return bl
}
