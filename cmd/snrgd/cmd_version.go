// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/synergy-network/snrg"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Display version",
	Run:   printVersion,
	Args:  cobra.NoArgs,
}

func init() {
	cmdMain.AddCommand(cmdVersion)
}

func printVersion(*cobra.Command, []string) {
	fmt.Println(snrg.Version)
	if snrg.Commit != "" {
		fmt.Println(snrg.Commit)
	}
}
