package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-sod/sleepq/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Info.String())
	},
}
