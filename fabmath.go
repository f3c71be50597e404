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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Plus adds nComp components of src starting at srcComp to dst starting
// at dstComp, over region.
func Plus(dst, src Fab[float64], region Box, srcComp, dstComp, nComp int) {
	if region.IsEmpty() {
		return
	}
	checkComps("Plus", src, srcComp, nComp)
	checkComps("Plus", dst, dstComp, nComp)
	checkRegion("Plus", src, region)
	checkRegion("Plus", dst, region)
	sb, db := src.Box(), dst.Box()
	for c := 0; c < nComp; c++ {
		s, d := src.Data(srcComp+c), dst.Data(dstComp+c)
		forEachRow(region, func(start IntVect, n int) {
			si, di := sb.Index(start), db.Index(start)
			floats.Add(d[di:di+n], s[si:si+n])
		})
	}
}

// Mult multiplies nComp components of f starting at comp by a over region.
func Mult(f Fab[float64], a float64, region Box, comp, nComp int) {
	checkComps("Mult", f, comp, nComp)
	checkRegion("Mult", f, region)
	for c := comp; c < comp+nComp; c++ {
		rows(f, c, region, func(row []float64) { floats.Scale(a, row) })
	}
}

// Negate flips the sign of nComp components of f starting at comp over
// region.
func Negate(f Fab[float64], region Box, comp, nComp int) {
	Mult(f, -1, region, comp, nComp)
}

// Sum returns the sum of component comp of f over region.
func Sum(f Fab[float64], region Box, comp int) float64 {
	checkComps("Sum", f, comp, 1)
	checkRegion("Sum", f, region)
	var s float64
	rows(f, comp, region, func(row []float64) { s += floats.Sum(row) })
	return s
}

// Min returns the smallest value of component comp of f over region, or
// +Inf if region is empty.
func Min(f Fab[float64], region Box, comp int) float64 {
	checkComps("Min", f, comp, 1)
	checkRegion("Min", f, region)
	m := math.Inf(1)
	rows(f, comp, region, func(row []float64) { m = math.Min(m, floats.Min(row)) })
	return m
}

// Max returns the largest value of component comp of f over region, or
// -Inf if region is empty.
func Max(f Fab[float64], region Box, comp int) float64 {
	checkComps("Max", f, comp, 1)
	checkRegion("Max", f, region)
	m := math.Inf(-1)
	rows(f, comp, region, func(row []float64) { m = math.Max(m, floats.Max(row)) })
	return m
}

// Norm returns the p-norm of nComp components of f starting at comp over
// region. p == 0 is the maximum norm; otherwise p must be at least 1.
func Norm(f Fab[float64], p int, region Box, comp, nComp int) float64 {
	checkComps("Norm", f, comp, nComp)
	checkRegion("Norm", f, region)
	if p < 0 {
		fail(ErrIndex, "Norm", "norm order %d is negative", p)
	}
	var acc float64
	for c := comp; c < comp+nComp; c++ {
		rows(f, c, region, func(row []float64) {
			if p == 0 {
				acc = math.Max(acc, floats.Norm(row, math.Inf(1)))
				return
			}
			acc += math.Pow(floats.Norm(row, float64(p)), float64(p))
		})
	}
	if p <= 1 {
		return acc
	}
	return math.Pow(acc, 1/float64(p))
}

// NormFab returns the p-norm of nComp components of fa starting at comp
// over the valid regions. p == 0 is the maximum norm.
func NormFab(fa *FabArray[float64], p, comp, nComp int) float64 {
	fa.checkAllocated("NormFab")
	fa.checkComps("NormFab", comp, nComp)
	var acc float64
	for k, f := range fa.fabs {
		v := Norm(f, p, fa.Box(k), comp, nComp)
		switch {
		case p == 0:
			acc = math.Max(acc, v)
		case p == 1:
			acc += v
		default:
			acc += math.Pow(v, float64(p))
		}
	}
	if p <= 1 {
		return acc
	}
	return math.Pow(acc, 1/float64(p))
}

// SumFab returns the sum of component comp of fa over the valid regions.
func SumFab(fa *FabArray[float64], comp int) float64 {
	fa.checkAllocated("SumFab")
	fa.checkComps("SumFab", comp, 1)
	var s float64
	for k, f := range fa.fabs {
		s += Sum(f, fa.Box(k), comp)
	}
	return s
}

// MinFab returns the smallest value of component comp of fa over the valid
// regions, or +Inf if fa has no boxes.
func MinFab(fa *FabArray[float64], comp int) float64 {
	fa.checkAllocated("MinFab")
	fa.checkComps("MinFab", comp, 1)
	m := math.Inf(1)
	for k, f := range fa.fabs {
		m = math.Min(m, Min(f, fa.Box(k), comp))
	}
	return m
}

// MaxFab returns the largest value of component comp of fa over the valid
// regions, or -Inf if fa has no boxes.
func MaxFab(fa *FabArray[float64], comp int) float64 {
	fa.checkAllocated("MaxFab")
	fa.checkComps("MaxFab", comp, 1)
	m := math.Inf(-1)
	for k, f := range fa.fabs {
		m = math.Max(m, Max(f, fa.Box(k), comp))
	}
	return m
}
