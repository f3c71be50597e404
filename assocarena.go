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
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
)

// AssocHandle addresses a BoxAssoc held in an AssocArena.
type AssocHandle int

// NoAssoc is the handle of no cache.
const NoAssoc AssocHandle = -1

// AssocArena owns BoxAssoc caches and hands out handles to them. Holders
// of identical BoxArrays share one cache. A cache whose last holder
// releases it is parked rather than freed, so that a later Acquire for the
// same BoxArray can reuse it; the least recently parked caches are freed
// once more than the parking capacity are waiting.
//
// All methods are safe for concurrent use.
type AssocArena struct {
	// Log receives messages about cache builds, reuse and eviction.
	Log logrus.FieldLogger

	mu      sync.Mutex
	entries []*arenaEntry
	free    []int
	bySig   map[uint64][]int
	parked  *lru.Cache
}

type arenaEntry struct {
	assoc  *BoxAssoc
	sig    uint64
	parked bool
}

// DefaultArena is the arena used by FabArrays that are not given one.
var DefaultArena = NewAssocArena(16)

// NewAssocArena returns an empty arena that keeps at most maxParked unheld
// caches for reuse. With maxParked == 0 unheld caches are freed at once.
func NewAssocArena(maxParked int) *AssocArena {
	if maxParked < 0 {
		fail(ErrResource, "NewAssocArena", "negative parking capacity %d", maxParked)
	}
	a := &AssocArena{
		Log:   logrus.StandardLogger(),
		bySig: make(map[uint64][]int),
	}
	if maxParked > 0 {
		a.parked = lru.New(maxParked)
		a.parked.OnEvicted = a.evicted
	}
	return a
}

// Acquire returns a handle to a cache of ba at least width wide, creating
// the cache if no holder of an identical BoxArray has one. The caller must
// Release the handle when it no longer needs the cache.
func (a *AssocArena) Acquire(ba *BoxArray, width int) AssocHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	sig := ba.HashSig()
	for _, i := range a.bySig[sig] {
		e := a.entries[i]
		if !e.assoc.BoxArray().Same(ba) {
			continue
		}
		if e.parked {
			e.parked = false
			a.parked.Remove(i)
			a.Log.WithFields(logrus.Fields{
				"handle": i,
				"boxes":  ba.Len(),
			}).Debug("boxlib reusing parked BoxAssoc")
		}
		if e.assoc.SetCacheWidth(width) {
			a.Log.WithFields(logrus.Fields{
				"handle": i,
				"width":  width,
			}).Debug("boxlib widened BoxAssoc")
		}
		e.assoc.Retain()
		return AssocHandle(i)
	}

	e := &arenaEntry{assoc: NewBoxAssoc(ba, width), sig: sig}
	e.assoc.Retain()
	var i int
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[i] = e
	} else {
		i = len(a.entries)
		a.entries = append(a.entries, e)
	}
	a.bySig[sig] = append(a.bySig[sig], i)
	a.Log.WithFields(logrus.Fields{
		"handle": i,
		"boxes":  ba.Len(),
		"width":  width,
	}).Debug("boxlib built BoxAssoc")
	return AssocHandle(i)
}

// Get returns the cache addressed by h.
func (a *AssocArena) Get(h AssocHandle) *BoxAssoc {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entry("AssocArena.Get", h).assoc
}

// Release gives up one hold on the cache addressed by h. h must not be
// used after it is released.
func (a *AssocArena) Release(h AssocHandle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e := a.entry("AssocArena.Release", h)
	if e.assoc.Release() > 0 {
		return
	}
	if a.parked == nil {
		a.drop(int(h))
		return
	}
	e.parked = true
	a.parked.Add(int(h), e)
}

// Len returns the number of caches in the arena, parked ones included.
func (a *AssocArena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries) - len(a.free)
}

// Parked returns the number of caches with no holders.
func (a *AssocArena) Parked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.parked == nil {
		return 0
	}
	return a.parked.Len()
}

func (a *AssocArena) entry(op string, h AssocHandle) *arenaEntry {
	i := int(h)
	if i < 0 || i >= len(a.entries) || a.entries[i] == nil || a.entries[i].parked {
		fail(ErrState, op, "handle %d does not address a held cache", i)
	}
	return a.entries[i]
}

// evicted is called by the parking cache with a.mu held, both when a
// parked cache is pushed out and when Acquire takes one back.
func (a *AssocArena) evicted(key lru.Key, value interface{}) {
	e := value.(*arenaEntry)
	if !e.parked {
		return
	}
	i := key.(int)
	a.Log.WithFields(logrus.Fields{
		"handle": i,
		"boxes":  e.assoc.Len(),
	}).Debug("boxlib evicted parked BoxAssoc")
	a.drop(i)
}

// drop frees slot i.
func (a *AssocArena) drop(i int) {
	e := a.entries[i]
	same := a.bySig[e.sig]
	for j, k := range same {
		if k == i {
			same = append(same[:j], same[j+1:]...)
			break
		}
	}
	if len(same) == 0 {
		delete(a.bySig, e.sig)
	} else {
		a.bySig[e.sig] = same
	}
	a.entries[i] = nil
	a.free = append(a.free, i)
}
