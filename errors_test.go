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
	"strings"
	"testing"
)

// expectPanic fails the test unless f panics with an *Error of the given
// kind.
func expectPanic(t *testing.T, kind ErrorKind, f func()) *Error {
	t.Helper()
	var e *Error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Errorf("expected a %s panic but there was none", kind)
				return
			}
			var ok bool
			if e, ok = r.(*Error); !ok {
				t.Errorf("panic value %#v is not an *Error", r)
				return
			}
			if e.Kind != kind {
				t.Errorf("panic kind %s, want %s: %v", e.Kind, kind, e)
			}
		}()
		f()
	}()
	return e
}

func TestErrorLocation(t *testing.T) {
	a := Box{Hi: Uniform(3)}
	b := a.SurroundingNodes()
	e := expectPanic(t, ErrGeometry, func() { Intersect(a, b) })
	if e == nil {
		return
	}
	if !strings.HasPrefix(e.Loc, "errors_test.go:") {
		t.Errorf("location %q should be in the calling test file", e.Loc)
	}
	if e.Op != "Intersect" {
		t.Errorf("op %q, want Intersect", e.Op)
	}
	if !strings.Contains(e.Error(), "geometry error") {
		t.Errorf("message %q should name the kind", e.Error())
	}
}

func TestErrorKindString(t *testing.T) {
	for k, want := range map[ErrorKind]string{
		ErrGeometry:  "geometry",
		ErrIndex:     "index",
		ErrState:     "state",
		ErrResource:  "resource",
		ErrorKind(9): "ErrorKind(9)",
	} {
		if k.String() != want {
			t.Errorf("%d: %q != %q", int(k), k.String(), want)
		}
	}
}
