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
	"strconv"
	"strings"
)

// IntVect is an integer coordinate in the SpaceDim-dimensional index space.
type IntVect [SpaceDim]int

// Uniform returns an IntVect with every component set to n.
func Uniform(n int) IntVect {
	var v IntVect
	for d := range v {
		v[d] = n
	}
	return v
}

// Unit returns the unit vector in direction dir.
func Unit(dir int) IntVect {
	checkDir("Unit", dir)
	var v IntVect
	v[dir] = 1
	return v
}

// Add returns v + o.
func (v IntVect) Add(o IntVect) IntVect {
	for d := range v {
		v[d] += o[d]
	}
	return v
}

// Sub returns v - o.
func (v IntVect) Sub(o IntVect) IntVect {
	for d := range v {
		v[d] -= o[d]
	}
	return v
}

// Scale returns v with every component multiplied by s.
func (v IntVect) Scale(s int) IntVect {
	for d := range v {
		v[d] *= s
	}
	return v
}

// Mul returns the component-wise product of v and o.
func (v IntVect) Mul(o IntVect) IntVect {
	for d := range v {
		v[d] *= o[d]
	}
	return v
}

// Min returns the component-wise minimum of v and o.
func (v IntVect) Min(o IntVect) IntVect {
	for d := range v {
		if o[d] < v[d] {
			v[d] = o[d]
		}
	}
	return v
}

// Max returns the component-wise maximum of v and o.
func (v IntVect) Max(o IntVect) IntVect {
	for d := range v {
		if o[d] > v[d] {
			v[d] = o[d]
		}
	}
	return v
}

// Shift returns v moved by n in direction dir.
func (v IntVect) Shift(dir, n int) IntVect {
	v[dir] += n
	return v
}

// Coarsen returns v floor-divided by ratio on each axis.
func (v IntVect) Coarsen(ratio IntVect) IntVect {
	for d := range v {
		v[d] = floorDiv(v[d], ratio[d])
	}
	return v
}

// Less reports whether v is strictly less than o on every axis.
func (v IntVect) Less(o IntVect) bool {
	for d := range v {
		if v[d] >= o[d] {
			return false
		}
	}
	return true
}

// LessEqual reports whether v is less than or equal to o on every axis.
func (v IntVect) LessEqual(o IntVect) bool {
	for d := range v {
		if v[d] > o[d] {
			return false
		}
	}
	return true
}

// Sum returns the sum of the components.
func (v IntVect) Sum() int {
	s := 0
	for _, x := range v {
		s += x
	}
	return s
}

// Product returns the product of the components.
func (v IntVect) Product() int {
	p := 1
	for _, x := range v {
		p *= x
	}
	return p
}

// String formats v as (x,y,...).
func (v IntVect) String() string {
	parts := make([]string, SpaceDim)
	for d, x := range v {
		parts[d] = strconv.Itoa(x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// parseIntVect parses the output of IntVect.String.
func parseIntVect(s string) (IntVect, error) {
	var v IntVect
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return v, fmt.Errorf("boxlib: malformed IntVect %q", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != SpaceDim {
		return v, fmt.Errorf("boxlib: IntVect %q has %d components; want %d", s, len(parts), SpaceDim)
	}
	for d, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return v, fmt.Errorf("boxlib: parsing IntVect %q: %v", s, err)
		}
		v[d] = x
	}
	return v, nil
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ceilDiv is integer division rounding toward positive infinity.
func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
