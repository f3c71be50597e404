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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/boxlib"
	"github.com/spf13/cast"
)

// GridConfig unmarshals a viper configuration for a domain decomposition.
// If requireDomain is false and no Domain is set, the Domain of the result
// is the zero Box and Holes are ignored.
func GridConfig(cfg *viper.Viper, requireDomain bool) (*boxlib.Config, error) {
	c := boxlib.DefaultConfig()
	c.MaxGridSize = cfg.GetInt("MaxGridSize")
	c.NGrow = cfg.GetInt("NGrow")
	c.NComp = cfg.GetInt("NComp")
	c.CacheWidth = cfg.GetInt("CacheWidth")
	c.Workers = cfg.GetInt("Workers")
	c.AssocCacheSize = cfg.GetInt("AssocCacheSize")
	c.LogLevel = os.ExpandEnv(cfg.GetString("LogLevel"))

	domain := strings.TrimSpace(os.ExpandEnv(cfg.GetString("Domain")))
	switch {
	case domain != "":
		b, err := boxlib.ParseBox(domain)
		if err != nil {
			return nil, fmt.Errorf("parsing grid configuration: Domain: %v", err)
		}
		c.Domain = b
		holes, err := toBoxesE(cfg.Get("Holes"))
		if err != nil {
			return nil, fmt.Errorf("parsing grid configuration: Holes: %v", err)
		}
		c.Holes = holes
	case requireDomain:
		return nil, fmt.Errorf("parsing grid configuration: Domain is not specified")
	}

	if err := c.Setup(); err != nil {
		return nil, err
	}
	return c, nil
}

// toBoxesE converts a list of boxes from a configuration file, or a single
// string holding boxes one after another, to boxes.
func toBoxesE(v interface{}) ([]boxlib.Box, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return boxlib.ParseBoxes(os.ExpandEnv(s))
	}
	ss, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, err
	}
	var boxes []boxlib.Box
	for _, s := range ss {
		bs, err := boxlib.ParseBoxes(os.ExpandEnv(s))
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, bs...)
	}
	return boxes, nil
}

// checkOutputFile makes sure that the directory of the output file exists,
// and expands any environment variables. An empty name means standard
// output.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("boxlib: the output directory doesn't exist: %v", err)
	}
	return f, nil
}
