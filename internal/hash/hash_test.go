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
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.*/

package hash

import "testing"

func TestInts(t *testing.T) {
	a := Ints(1, 2, 3)
	if a != New().Int(1).Int(2).Int(3).Sum64() {
		t.Error("Ints and chained Int disagree")
	}
	if a == Ints(3, 2, 1) {
		t.Error("signature should depend on order")
	}
	if a == Ints(1, 2) || Ints() == Ints(0) {
		t.Error("signature should depend on length")
	}
	if Ints(-1) == Ints(1) {
		t.Error("signature should depend on sign")
	}
	// FNV-1a 64 of no input is its offset basis.
	if Ints() != 14695981039346656037 {
		t.Errorf("empty signature %d", Ints())
	}
}
