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
	"fmt"
	"strings"
)

// CellIndex is the centering of a single axis.
type CellIndex int

// Axis centerings.
const (
	Cell CellIndex = 0
	Node CellIndex = 1
)

// IndexType records, one bit per axis, whether a Box is cell- or
// node-centered along that axis. The zero value is cell-centered on every
// axis.
type IndexType uint

// CellType returns an IndexType that is cell-centered on every axis.
func CellType() IndexType { return 0 }

// NodeType returns an IndexType that is node-centered on every axis.
func NodeType() IndexType { return IndexType(1<<SpaceDim - 1) }

// NewIndexType returns an IndexType with the given centering on each axis.
func NewIndexType(c [SpaceDim]CellIndex) IndexType {
	var t IndexType
	for d, ci := range c {
		t = t.SetType(d, ci)
	}
	return t
}

// Set returns t with axis dir set to Node.
func (t IndexType) Set(dir int) IndexType { return t | 1<<uint(dir) }

// Unset returns t with axis dir set to Cell.
func (t IndexType) Unset(dir int) IndexType { return t &^ (1 << uint(dir)) }

// Test reports whether axis dir is node-centered.
func (t IndexType) Test(dir int) bool { return t&(1<<uint(dir)) != 0 }

// Flip returns t with the centering of axis dir toggled.
func (t IndexType) Flip(dir int) IndexType { return t ^ 1<<uint(dir) }

// SetType returns t with axis dir set to c.
func (t IndexType) SetType(dir int, c CellIndex) IndexType {
	if c == Node {
		return t.Set(dir)
	}
	return t.Unset(dir)
}

// Type returns the centering of axis dir.
func (t IndexType) Type(dir int) CellIndex {
	if t.Test(dir) {
		return Node
	}
	return Cell
}

// Any reports whether any axis is node-centered.
func (t IndexType) Any() bool { return t != 0 }

// CellCentered reports whether every axis is cell-centered.
func (t IndexType) CellCentered() bool { return t == 0 }

// NodeCentered reports whether every axis is node-centered.
func (t IndexType) NodeCentered() bool { return t == NodeType() }

// Ok reports whether t uses only the low SpaceDim bits.
func (t IndexType) Ok() bool { return t&^NodeType() == 0 }

// IxType returns the centering as a 0/1 IntVect.
func (t IndexType) IxType() IntVect {
	var v IntVect
	for d := range v {
		v[d] = int(t.Type(d))
	}
	return v
}

// String formats t like an IntVect of 0 (cell) and 1 (node) flags.
func (t IndexType) String() string {
	return t.IxType().String()
}

func parseIndexType(s string) (IndexType, error) {
	v, err := parseIntVect(s)
	if err != nil {
		return 0, err
	}
	var t IndexType
	for d, x := range v {
		switch x {
		case 0:
		case 1:
			t = t.Set(d)
		default:
			return 0, fmt.Errorf("boxlib: IndexType %q: flag %d must be 0 or 1", strings.TrimSpace(s), x)
		}
	}
	return t, nil
}
