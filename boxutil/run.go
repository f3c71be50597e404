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

package boxutil

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/boxlib"
)

// Partition decomposes the domain in c and writes the BoxArray to output,
// or to w if output is empty.
func Partition(w io.Writer, c *boxlib.Config, output string) error {
	output, err := checkOutputFile(output)
	if err != nil {
		return err
	}
	log := c.Logger()
	ba := c.BoxArray()
	log.WithFields(logrus.Fields{
		"domain": c.Domain.String(),
		"holes":  len(c.Holes),
		"boxes":  ba.Len(),
		"cells":  ba.NumPts(),
	}).Info("boxlib partitioned domain")
	return writeBoxArray(w, ba, output)
}

// Assoc builds the neighbor cache of the BoxArray in the input file at the
// cache width in c and reports neighbor counts to w.
func Assoc(w io.Writer, c *boxlib.Config, input string) error {
	ba, err := readBoxArray(input)
	if err != nil {
		return err
	}
	log := c.Logger()
	arena := c.Arena()
	arena.Log = log
	h := arena.Acquire(ba, c.CacheWidth)
	defer arena.Release(h)
	a := arena.Get(h)

	minN, maxN, total := math.MaxInt32, 0, 0
	for k := 0; k < a.Len(); k++ {
		n := len(a.Neighbors(k)) - 1
		log.WithFields(logrus.Fields{
			"grid":      k,
			"box":       ba.Get(k).String(),
			"neighbors": n,
		}).Debug("boxlib neighbor count")
		if n < minN {
			minN = n
		}
		if n > maxN {
			maxN = n
		}
		total += n
	}
	if a.Len() == 0 {
		minN = 0
	}
	log.WithFields(logrus.Fields{
		"boxes": a.Len(),
		"width": a.CacheWidth(),
	}).Info("boxlib built neighbor cache")
	fmt.Fprintf(w, "boxes=%d width=%d neighbors min=%d max=%d total=%d\n",
		a.Len(), a.CacheWidth(), minN, maxN, total)
	return nil
}

// Complement writes the part of domain not covered by the BoxArray in the
// input file to output, or to w if output is empty. A nil domain means the
// smallest box containing the BoxArray.
func Complement(w io.Writer, domain *boxlib.Box, input, output string) error {
	output, err := checkOutputFile(output)
	if err != nil {
		return err
	}
	ba, err := readBoxArray(input)
	if err != nil {
		return err
	}
	var b boxlib.Box
	switch {
	case domain != nil:
		b = *domain
	case ba.Len() > 0:
		b = ba.MinimalBox()
	default:
		return fmt.Errorf("boxlib: complement of an empty BoxArray needs a Domain")
	}
	if ba.Len() > 0 && ba.IxType() != b.Type {
		return fmt.Errorf("boxlib: Domain has IndexType %v; BoxArray has %v", b.Type, ba.IxType())
	}
	return writeBoxArray(w, boxlib.ComplementInArray(b, ba), output)
}

// Fill allocates a buffer for every grid of the BoxArray in the input file,
// or of the domain decomposition in c if input is empty, sets each valid
// region to its grid index plus one, fills the ghost cells and reports the
// result to w. Ghost cells that no grid covers keep the value -1.
func Fill(w io.Writer, c *boxlib.Config, input string) error {
	var ba *boxlib.BoxArray
	if input == "" {
		ba = c.BoxArray()
	} else {
		var err error
		if ba, err = readBoxArray(input); err != nil {
			return err
		}
	}
	if !ba.Ok() {
		return fmt.Errorf("boxlib: BoxArray is not valid")
	}
	fa := boxlib.NewFabArray[float64](ba, c.NComp, c.NGrow, nil, c.Options()...)
	defer fa.Close()
	fa.SetCacheWidth(c.CacheWidth)

	fa.SetBndry(-1)
	for k := 0; k < fa.Len(); k++ {
		boxlib.FillRegion(fa.Fab(k), float64(k+1), fa.Box(k), 0, c.NComp)
	}
	fa.FillBoundary()

	unfilled := 0
	for k := 0; k < fa.Len(); k++ {
		f := fa.Fab(k)
		data := f.Data(0)
		for _, v := range data {
			if v == -1 {
				unfilled++
			}
		}
	}
	fa.Log.WithFields(logrus.Fields{
		"boxes":    fa.Len(),
		"ngrow":    fa.NGrow(),
		"unfilled": unfilled,
	}).Info("boxlib filled ghost cells")
	fmt.Fprintf(w, "boxes=%d ngrow=%d ncomp=%d unfilled=%d\n", fa.Len(), fa.NGrow(), fa.NComp(), unfilled)
	if fa.Len() > 0 {
		fmt.Fprintf(w, "min=%g max=%g norm0=%g norm1=%g norm2=%g\n",
			boxlib.MinFab(fa, 0), boxlib.MaxFab(fa, 0),
			boxlib.NormFab(fa, 0, 0, fa.NComp()),
			boxlib.NormFab(fa, 1, 0, fa.NComp()),
			boxlib.NormFab(fa, 2, 0, fa.NComp()))
	}
	return nil
}

func readBoxArray(input string) (*boxlib.BoxArray, error) {
	if input == "" {
		return nil, fmt.Errorf("boxlib: no input file specified")
	}
	f, err := os.Open(os.ExpandEnv(input))
	if err != nil {
		return nil, fmt.Errorf("boxlib: opening input file: %v", err)
	}
	defer f.Close()
	return boxlib.ReadBoxArray(f)
}

// writeBoxArray writes ba to output atomically, or to w if output is
// empty.
func writeBoxArray(w io.Writer, ba *boxlib.BoxArray, output string) error {
	var buf bytes.Buffer
	if err := ba.Write(&buf); err != nil {
		return err
	}
	if output == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := atomic.WriteFile(output, &buf); err != nil {
		return fmt.Errorf("boxlib: writing %s: %v", output, err)
	}
	return nil
}
