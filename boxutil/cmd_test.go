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

package boxutil

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spatialmodel/boxlib"
)

// execute runs the command line args and returns what it printed.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestVersion(t *testing.T) {
	if diff := cmp.Diff("boxlib v"+boxlib.Version+"\n", execute(t, "version")); diff != "" {
		t.Errorf("version output (-want +got):\n%s", diff)
	}
}

func TestGridCommands(t *testing.T) {
	dir := t.TempDir()
	grids := filepath.Join(dir, "grids.txt")
	hole := boxlib.NewBox(boxlib.IntVect{4, 4}, boxlib.IntVect{11, 11})

	Cfg.Set("Domain", "((0,0) (15,15) (0,0))")
	Cfg.Set("Holes", hole.String())
	Cfg.Set("MaxGridSize", 8)
	Cfg.Set("NGrow", 1)
	Cfg.Set("CacheWidth", 1)
	Cfg.Set("LogLevel", "error")

	t.Run("partition", func(t *testing.T) {
		Cfg.Set("output", grids)
		if out := execute(t, "partition"); out != "" {
			t.Errorf("partition to a file printed %q", out)
		}
		f, err := os.Open(grids)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		got, err := boxlib.ReadBoxArray(f)
		if err != nil {
			t.Fatal(err)
		}
		c := boxlib.DefaultConfig()
		c.Domain = boxlib.NewBox(boxlib.IntVect{0, 0}, boxlib.IntVect{15, 15})
		c.Holes = []boxlib.Box{hole}
		c.MaxGridSize = 8
		want := c.BoxArray()
		if diff := cmp.Diff(want.Boxes(), got.Boxes()); diff != "" {
			t.Errorf("partition (-want +got):\n%s", diff)
		}
		if got.Len() != 6 {
			t.Errorf("partition has %d boxes, want 6", got.Len())
		}
	})

	t.Run("assoc", func(t *testing.T) {
		Cfg.Set("input", grids)
		want := "boxes=6 width=1 neighbors min=2 max=2 total=12\n"
		if diff := cmp.Diff(want, execute(t, "assoc")); diff != "" {
			t.Errorf("assoc (-want +got):\n%s", diff)
		}
	})

	t.Run("complement", func(t *testing.T) {
		Cfg.Set("input", grids)
		Cfg.Set("output", "")
		want := boxlib.BoxArrayFromBoxes(hole).String()
		if diff := cmp.Diff(want, execute(t, "complement")); diff != "" {
			t.Errorf("complement (-want +got):\n%s", diff)
		}
	})

	t.Run("fill", func(t *testing.T) {
		Cfg.Set("input", "")
		Cfg.Set("Domain", "((0,0) (7,3) (0,0))")
		Cfg.Set("Holes", "")
		Cfg.Set("MaxGridSize", 4)
		out := execute(t, "fill")
		var boxes, ngrow, ncomp, unfilled int
		var min, max, norm0, norm1, norm2 float64
		_, err := fmt.Sscanf(out, "boxes=%d ngrow=%d ncomp=%d unfilled=%d\nmin=%g max=%g norm0=%g norm1=%g norm2=%g\n",
			&boxes, &ngrow, &ncomp, &unfilled, &min, &max, &norm0, &norm1, &norm2)
		if err != nil {
			t.Fatalf("parsing %q: %v", out, err)
		}
		got := []float64{float64(boxes), float64(ngrow), float64(ncomp), float64(unfilled), min, max, norm0, norm1, norm2}
		// Each 4×4 grid has 20 ghost cells, 4 of which the other grid fills.
		want := []float64{2, 1, 1, 32, 1, 2, 2, 48, math.Sqrt(80)}
		approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("fill (-want +got):\n%s", diff)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		Cfg.Set("input", "")
		Root.SetArgs([]string{"assoc"})
		Root.SetOutput(new(bytes.Buffer))
		if err := Root.Execute(); err == nil {
			t.Error("assoc without input should fail")
		}
	})
}

func TestGridConfig(t *testing.T) {
	Cfg.Set("Domain", "")
	Cfg.Set("Holes", "")
	if _, err := GridConfig(Cfg, true); err == nil {
		t.Error("a missing Domain should be an error")
	}
	c, err := GridConfig(Cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if c.NComp != 1 || c.AssocCacheSize != 16 {
		t.Errorf("defaults not applied: %+v", c)
	}

	holes, err := toBoxesE([]interface{}{"((0,0) (1,1) (0,0)) ((2,2) (3,3) (0,0))", "((5,5) (6,6) (0,0))"})
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 3 || holes[2].Lo != (boxlib.IntVect{5, 5}) {
		t.Errorf("holes = %v", holes)
	}
	if _, err := toBoxesE("((0,0) (1,1)"); err == nil {
		t.Error("a malformed box should be an error")
	}
}
