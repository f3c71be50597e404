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
	"io"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config describes a domain decomposition and the FabArrays built on it.
// Boxes are written in their text form, for example
//
//	Domain = "((0,0) (63,63) (0,0))"
//	Holes = ["((16,16) (31,31) (0,0))"]
//	MaxGridSize = 16
type Config struct {
	// Domain is the region to decompose.
	Domain Box

	// Holes are removed from Domain before it is decomposed.
	Holes []Box

	// MaxGridSize is the largest side length of a grid. Zero means no
	// limit.
	MaxGridSize int

	// NGrow is the number of ghost layers around each grid.
	NGrow int

	// NComp is the number of components of each buffer.
	NComp int

	// CacheWidth is the width neighbor caches are built with. It is raised
	// to NGrow if smaller.
	CacheWidth int

	// Workers is the number of goroutines exchanges fan out over. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int

	// AssocCacheSize is the number of unheld neighbor caches an arena
	// keeps for reuse.
	AssocCacheSize int

	// LogLevel is a logrus level name.
	LogLevel string
}

// DefaultConfig returns a Config holding the default settings.
func DefaultConfig() *Config {
	return &Config{
		NComp:          1,
		AssocCacheSize: 16,
		LogLevel:       "info",
	}
}

// LoadConfig reads a TOML configuration from r on top of the defaults and
// checks it.
func LoadConfig(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeReader(r, c)
	if err != nil {
		return nil, fmt.Errorf("boxlib: decoding configuration: %v", err)
	}
	if !md.IsDefined("Domain") {
		return nil, fmt.Errorf("boxlib: configuration Domain is not set")
	}
	if err := c.Setup(); err != nil {
		return nil, err
	}
	return c, nil
}

// Setup checks the configuration and fills in derived settings.
func (c *Config) Setup() error {
	if !c.Domain.Ok() {
		return fmt.Errorf("boxlib: configuration Domain %v is not a valid box", c.Domain)
	}
	for i, h := range c.Holes {
		if h.Type != c.Domain.Type {
			return fmt.Errorf("boxlib: configuration Holes[%d] has IndexType %v; Domain has %v", i, h.Type, c.Domain.Type)
		}
	}
	ints := []int{c.MaxGridSize, c.NGrow, c.CacheWidth, c.Workers, c.AssocCacheSize}
	names := []string{"MaxGridSize", "NGrow", "CacheWidth", "Workers", "AssocCacheSize"}
	for i, v := range ints {
		if v < 0 {
			return fmt.Errorf("boxlib: configuration %s=%d but should be >= 0", names[i], v)
		}
	}
	if c.MaxGridSize > 0 && c.MaxGridSize < 2 && c.Domain.Type.Any() {
		return fmt.Errorf("boxlib: configuration MaxGridSize=%d but node-centered domains need >= 2", c.MaxGridSize)
	}
	if c.NComp < 1 {
		return fmt.Errorf("boxlib: configuration NComp=%d but should be >= 1", c.NComp)
	}
	if c.CacheWidth < c.NGrow {
		c.CacheWidth = c.NGrow
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("boxlib: configuration LogLevel: %v", err)
	}
	return nil
}

// BoxArray decomposes the domain: it removes the holes, merges the
// remainder into as few boxes as it can and splits them to MaxGridSize.
func (c *Config) BoxArray() *BoxArray {
	holes := BoxListFromBoxes(c.Domain.Type, c.Holes...)
	bl := ComplementIn(c.Domain, holes)
	bl.Minimize()
	if c.MaxGridSize > 0 {
		bl.MaxSize(c.MaxGridSize)
	}
	return BoxArrayFromList(bl)
}

// Arena returns a new AssocArena sized by AssocCacheSize.
func (c *Config) Arena() *AssocArena {
	return NewAssocArena(c.AssocCacheSize)
}

// Logger returns a logger at LogLevel.
func (c *Config) Logger() logrus.FieldLogger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.Level = lvl
	}
	return l
}

// Options returns the FabArray options the configuration implies. Each
// call creates a new arena.
func (c *Config) Options() []Option {
	return []Option{WithArena(c.Arena()), WithLogger(c.Logger()), Workers(c.Workers)}
}
