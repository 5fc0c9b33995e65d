package main

import (
	"os"

	"github.com/aretw0/bakingapp/internal/cli"
	"github.com/aretw0/bakingapp/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Fetch and print the recipe list",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		app, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.RunRecipes(cmd.Context(), app, os.Stdout, tui.Width(os.Stdout), jsonMode)
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	recipesCmd.Flags().Bool("json", false, "Print the recipes as JSON")
}
