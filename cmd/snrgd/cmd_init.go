// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/synergy-network/snrg/config"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize a node",
	Run:   initNode,
	Args:  cobra.NoArgs,
}

var flagInit struct {
	Reset         bool
	ListenAddress string
	Memory        bool
}

func init() {
	cmdMain.AddCommand(cmdInit)

	cmdInit.Flags().BoolVar(&flagInit.Reset, "reset", false, "Delete any existing configuration and data")
	cmdInit.Flags().StringVarP(&flagInit.ListenAddress, "listen", "l", "", "API listen address")
	cmdInit.Flags().BoolVar(&flagInit.Memory, "memory", false, "Use in-memory storage instead of Badger")
}

func initNode(_ *cobra.Command, _ []string) {
	if flagInit.Reset {
		checkf(os.RemoveAll(flagMain.WorkDir), "reset %q", flagMain.WorkDir)
	}

	c := config.Default()
	if flagInit.ListenAddress != "" {
		c.API.ListenAddress = flagInit.ListenAddress
	}
	if flagInit.Memory {
		c.Storage.Type = config.MemoryStorage
	}

	checkf(config.Store(flagMain.WorkDir, c), "write config to %q", flagMain.WorkDir)
	color.HiGreen("Wrote %s", filepath.Join(flagMain.WorkDir, "config", "snrg.toml"))
}
