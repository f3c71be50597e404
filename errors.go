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
	"path/filepath"
	"runtime"
	"strings"
)

// ErrorKind classifies a contract violation.
type ErrorKind int

// These are the kinds of contract violations.
const (
	// ErrGeometry is a geometric invariant violation, such as mismatched
	// IndexTypes or an invalid Box where a valid one is required.
	ErrGeometry ErrorKind = iota
	// ErrIndex is a grid or component index out of range.
	ErrIndex
	// ErrState is an operation on an object that is not in the
	// required state, for example using a FabArray before it is defined.
	ErrState
	// ErrResource is a failure to obtain storage.
	ErrResource
)

func (k ErrorKind) String() string {
	switch k {
	case ErrGeometry:
		return "geometry"
	case ErrIndex:
		return "index"
	case ErrState:
		return "state"
	case ErrResource:
		return "resource"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the value passed to panic when a caller violates the contract
// of an operation. These are programming errors: they are not returned and
// there is no retry.
type Error struct {
	Kind ErrorKind
	Op   string // operation that detected the violation
	Loc  string // file:line of the code that called into the package
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("boxlib: %s: %s error at %s: %s", e.Op, e.Kind, e.Loc, e.Msg)
}

// fail panics with an *Error located at the first caller outside this
// package.
func fail(kind ErrorKind, op, format string, args ...interface{}) {
	panic(&Error{Kind: kind, Op: op, Loc: callerOutside(), Msg: fmt.Sprintf(format, args...)})
}

// callerOutside returns the file:line of the innermost caller that is not
// in one of this package's source files. Test files count as outside.
func callerOutside() string {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		return "unknown"
	}
	dir := filepath.Dir(self)
	for skip := 2; ; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			return "unknown"
		}
		if filepath.Dir(file) != dir || strings.HasSuffix(file, "_test.go") {
			return fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}
}

func checkSameType(op string, a, b IndexType) {
	if a != b {
		fail(ErrGeometry, op, "mismatched IndexType %v and %v", a, b)
	}
}

func checkDir(op string, dir int) {
	if dir < 0 || dir >= SpaceDim {
		fail(ErrIndex, op, "direction %d out of range [0,%d)", dir, SpaceDim)
	}
}
