package main

import (
	"fmt"

	"github.com/aretw0/bakingapp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bakingapp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bakingapp version %s\n", bakingapp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
