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

// Package hash computes order-sensitive 64-bit signatures of integer
// sequences.
package hash

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// Sig accumulates a signature. The zero value is not usable; use New.
type Sig struct {
	h   hash.Hash64
	buf [8]byte
}

// New returns an empty signature accumulator.
func New() *Sig {
	return &Sig{h: fnv.New64a()}
}

// Int folds x into the signature.
func (s *Sig) Int(x int) *Sig {
	binary.LittleEndian.PutUint64(s.buf[:], uint64(int64(x)))
	s.h.Write(s.buf[:])
	return s
}

// Ints folds every element of xs into the signature, in order.
func (s *Sig) Ints(xs ...int) *Sig {
	for _, x := range xs {
		s.Int(x)
	}
	return s
}

// Sum64 returns the signature. Two different sequences produce the same
// signature with probability close to 2⁻⁶⁴.
func (s *Sig) Sum64() uint64 {
	return s.h.Sum64()
}

// Ints returns the signature of xs.
func Ints(xs ...int) uint64 {
	return New().Ints(xs...).Sum64()
}
