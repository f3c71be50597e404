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

// Package boxutil contains the command-line interface to boxlib.
package boxutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/boxlib"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	gridSets := []*pflag.FlagSet{partitionCmd.Flags(), complementCmd.Flags(), fillCmd.Flags(), assocCmd.Flags()}

	// Options are the configuration options available to boxlib.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input specifies a BoxArray file to read. If it is empty,
              fill decomposes the configured Domain instead.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{assocCmd.Flags(), complementCmd.Flags(), fillCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the file to write a BoxArray to. If it is
              empty the BoxArray is written to standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{partitionCmd.Flags(), complementCmd.Flags()},
		},
		{
			name: "Domain",
			usage: `
              Domain is the box to decompose, in the form
              ((lo0,lo1) (hi0,hi1) (t0,t1)) where t is 0 for a
              cell-centered axis and 1 for a node-centered one.`,
			defaultVal: "",
			flagsets:   gridSets,
		},
		{
			name: "Holes",
			usage: `
              Holes are boxes removed from Domain before it is
              decomposed, written one after another in the same form as
              Domain.`,
			defaultVal: "",
			flagsets:   gridSets,
		},
		{
			name: "MaxGridSize",
			usage: `
              MaxGridSize is the largest side length of a grid. 0 means
              no limit.`,
			defaultVal: 0,
			flagsets:   gridSets,
		},
		{
			name: "NGrow",
			usage: `
              NGrow is the number of ghost layers around each grid.`,
			defaultVal: 1,
			flagsets:   gridSets,
		},
		{
			name: "NComp",
			usage: `
              NComp is the number of components of each buffer.`,
			defaultVal: 1,
			flagsets:   gridSets,
		},
		{
			name: "CacheWidth",
			usage: `
              CacheWidth is the width neighbor caches are built with. It is
              raised to NGrow if smaller.`,
			defaultVal: 0,
			flagsets:   gridSets,
		},
		{
			name: "Workers",
			usage: `
              Workers is the number of goroutines exchanges fan out over.
              0 means one per processor.`,
			defaultVal: 0,
			flagsets:   gridSets,
		},
		{
			name: "AssocCacheSize",
			usage: `
              AssocCacheSize is the number of unused neighbor caches kept
              for reuse.`,
			defaultVal: 16,
			flagsets:   gridSets,
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the level of log messages to show: one of panic,
              fatal, error, warning, info or debug.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("BOXLIB")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(partitionCmd)
	Root.AddCommand(assocCmd)
	Root.AddCommand(complementCmd)
	Root.AddCommand(fillCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("boxlib: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "boxlib",
	Short: "Decompose block-structured grids and exchange ghost cells.",
	Long: `boxlib decomposes rectangular index domains into grids, computes which
grids neighbor each other, and exercises ghost-cell exchange between them.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'BOXLIB_var' where 'var' is the
name of the variable to be set.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of boxlib.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "boxlib v%s\n", boxlib.Version)
	},
	DisableAutoGenTag: true,
}

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Decompose the domain into grids",
	Long: `partition removes the Holes from the Domain, merges what remains into as
few boxes as it can, splits them so no side is longer than MaxGridSize,
and writes the resulting BoxArray.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GridConfig(Cfg, true)
		if err != nil {
			return err
		}
		return Partition(cmd.OutOrStdout(), c, Cfg.GetString("output"))
	},
	DisableAutoGenTag: true,
}

var assocCmd = &cobra.Command{
	Use:   "assoc",
	Short: "Build the neighbor cache of a BoxArray",
	Long: `assoc reads the BoxArray in the input file, builds its neighbor cache
at CacheWidth, and reports how many neighbors each grid has.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GridConfig(Cfg, false)
		if err != nil {
			return err
		}
		return Assoc(cmd.OutOrStdout(), c, Cfg.GetString("input"))
	},
	DisableAutoGenTag: true,
}

var complementCmd = &cobra.Command{
	Use:   "complement",
	Short: "Find the part of a box not covered by a BoxArray",
	Long: `complement reads the BoxArray in the input file and writes the part of
the Domain it does not cover. If Domain is not set the smallest box
containing the BoxArray is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GridConfig(Cfg, false)
		if err != nil {
			return err
		}
		var domain *boxlib.Box
		if Cfg.GetString("Domain") != "" {
			domain = &c.Domain
		}
		return Complement(cmd.OutOrStdout(), domain, Cfg.GetString("input"), Cfg.GetString("output"))
	},
	DisableAutoGenTag: true,
}

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Exchange ghost cells",
	Long: `fill allocates a buffer for every grid of a BoxArray, sets each grid's
valid region to its index plus one, fills the ghost cells from neighboring
grids, and reports norms of the result along with the number of ghost
cells no grid could fill.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GridConfig(Cfg, Cfg.GetString("input") == "")
		if err != nil {
			return err
		}
		return Fill(cmd.OutOrStdout(), c, Cfg.GetString("input"))
	},
	DisableAutoGenTag: true,
}
