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
	"math"
	"testing"

	"github.com/kr/pretty"
)

func TestBaseFabLayout(t *testing.T) {
	f := NewBaseFab[float64](box2(1, 1, 3, 2), 2)
	f.Set(IntVect{2, 2}, 1, 7)
	if d := f.Data(1); d[1+1*3] != 7 {
		t.Errorf("data layout: %v", d)
	}
	if f.Get(IntVect{2, 2}, 1) != 7 || f.Get(IntVect{2, 2}, 0) != 0 {
		t.Error("Get")
	}
	f.SetVal(3)
	if Sum(f, f.Box(), 0) != 18 {
		t.Errorf("SetVal: %v", f.Data(0))
	}
	expectPanic(t, ErrIndex, func() { f.Data(2) })
	expectPanic(t, ErrIndex, func() { f.Get(IntVect{0, 0}, 0) })
	expectPanic(t, ErrIndex, func() { NewBaseFab[int](box2(0, 0, 1, 1), 0) })
	expectPanic(t, ErrGeometry, func() { NewBaseFab[int](box2(0, 0, -1, 1), 1) })
}

func TestCopyRegion(t *testing.T) {
	src := NewBaseFab[int](box2(0, 0, 3, 3), 2)
	for i := range src.Data(1) {
		src.Data(1)[i] = i
	}
	dst := NewBaseFab[int](box2(2, 1, 5, 2), 1)
	CopyRegion[int](dst, 0, src, 1, box2(2, 1, 3, 2), 1)
	want := []int{
		6, 7, 0, 0,
		10, 11, 0, 0,
	}
	if diff := pretty.Diff(dst.Data(0), want); len(diff) != 0 {
		t.Error(diff)
	}
	CopyRegion[int](dst, 0, src, 0, Intersect(box2(9, 9, 9, 9), src.Box()), 1)
	expectPanic(t, ErrGeometry, func() { CopyRegion[int](dst, 0, src, 0, box2(0, 0, 3, 3), 1) })
	expectPanic(t, ErrIndex, func() { CopyRegion[int](dst, 0, src, 1, box2(2, 1, 3, 2), 2) })
}

func TestFillRegion(t *testing.T) {
	f := NewBaseFab[string](box2(0, 0, 2, 1), 1)
	FillRegion[string](f, "x", box2(1, 0, 2, 0), 0, 1)
	if diff := pretty.Diff(f.Data(0), []string{"", "x", "x", "", "", ""}); len(diff) != 0 {
		t.Error(diff)
	}
}

func TestFabMath(t *testing.T) {
	b := box2(0, 0, 1, 1)
	f := NewBaseFab[float64](b, 2)
	copy(f.Data(0), []float64{1, -2, 3, -4})
	copy(f.Data(1), []float64{1, 1, 1, 1})
	tests := []struct {
		name       string
		have, want float64
	}{
		{"sum", Sum(f, b, 0), -2},
		{"min", Min(f, b, 0), -4},
		{"max", Max(f, b, 0), 3},
		{"norm0", Norm(f, 0, b, 0, 2), 4},
		{"norm1", Norm(f, 1, b, 0, 2), 14},
		{"norm2", Norm(f, 2, b, 0, 1), math.Sqrt(30)},
		{"sub-region sum", Sum(f, box2(0, 1, 1, 1), 0), -1},
		{"empty min", Min(f, Intersect(b, box2(5, 5, 5, 5)), 0), math.Inf(1)},
	}
	for _, test := range tests {
		if math.Abs(test.have-test.want) > 1e-12 && test.have != test.want {
			t.Errorf("%s: %g != %g", test.name, test.have, test.want)
		}
	}

	g := NewBaseFab[float64](box2(-1, -1, 2, 2), 1)
	g.SetVal(10)
	Plus(g, f, b, 0, 0, 1)
	if g.Get(IntVect{1, 1}, 0) != 6 || g.Get(IntVect{-1, -1}, 0) != 10 {
		t.Errorf("Plus: %v", g.Data(0))
	}
	Mult(f, 2, box2(0, 0, 0, 1), 0, 1)
	if diff := pretty.Diff(f.Data(0), []float64{2, -2, 6, -4}); len(diff) != 0 {
		t.Error(diff)
	}
	Negate(f, b, 1, 1)
	if Sum(f, b, 1) != -4 {
		t.Errorf("Negate: %v", f.Data(1))
	}
	expectPanic(t, ErrIndex, func() { Norm(f, -1, b, 0, 1) })
}
