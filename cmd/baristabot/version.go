package main

import (
	"fmt"

	"github.com/aretw0/baristabot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of baristabot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "baristabot version %s\n", baristabot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
