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

import "github.com/sirupsen/logrus"

// Option customizes construction of a FabArray or one of its operations.
// Each operation reads only the options that apply to it and ignores the
// rest.
type Option func(*options)

type options struct {
	noAlloc  bool
	arena    *AssocArena
	log      logrus.FieldLogger
	comps    bool
	srcComp  int
	dstComp  int
	nComp    int
	within   *Box
	ghost    int
	near     int
	nearIn   *BoxAssoc
	assoc    *BoxAssoc
	nWorkers int
}

func newOptions(opts []Option) *options {
	o := &options{ghost: -1, near: -1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// components returns the source component, destination component and
// component count to use, defaulting to all n components.
func (o *options) components(n int) (src, dst, count int) {
	if !o.comps {
		return 0, 0, n
	}
	return o.srcComp, o.dstComp, o.nComp
}

// NoAllocate defines a FabArray without allocating its buffers. Buffers
// are supplied later with SetFab.
func NoAllocate() Option {
	return func(o *options) { o.noAlloc = true }
}

// WithArena makes a FabArray keep its neighbor caches in a instead of
// DefaultArena.
func WithArena(a *AssocArena) Option {
	return func(o *options) { o.arena = a }
}

// WithLogger sets the logger of a FabArray.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// Components restricts an operation to n components starting at comp.
func Components(comp, n int) Option {
	return ComponentMap(comp, comp, n)
}

// ComponentMap makes a copy read n components starting at srcComp and
// write them starting at dstComp.
func ComponentMap(srcComp, dstComp, n int) Option {
	return func(o *options) {
		o.comps = true
		o.srcComp, o.dstComp, o.nComp = srcComp, dstComp, n
	}
}

// Within restricts an operation to the points in region.
func Within(region Box) Option {
	return func(o *options) { o.within = &region }
}

// Ghost sets how many ghost layers around each valid region an operation
// covers.
func Ghost(n int) Option {
	return func(o *options) { o.ghost = n }
}

// Near restricts a copy to the neighbors of grid k in the FabArray's own
// cache.
func Near(k int) Option {
	return func(o *options) { o.near = k }
}

// NearIn restricts a copy to the neighbors of grid k in a.
func NearIn(a *BoxAssoc, k int) Option {
	return func(o *options) {
		o.nearIn = a
		o.near = k
	}
}

// UsingAssoc makes FillBoundary use a instead of the FabArray's own cache.
func UsingAssoc(a *BoxAssoc) Option {
	return func(o *options) { o.assoc = a }
}

// Workers sets the number of goroutines an operation fans out over. Given
// to Define it sets the FabArray's default, which is otherwise
// runtime.GOMAXPROCS(0).
func Workers(n int) Option {
	return func(o *options) { o.nWorkers = n }
}
