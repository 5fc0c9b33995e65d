package main

import (
	"context"
	"os"

	"github.com/aretw0/bakingapp/internal/cli"
	"github.com/aretw0/bakingapp/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recipes interactively",
	Long: `Shows the recipe grid, a recipe's ingredients and steps, and walks the steps
with [p]revious and [n]ext. With --session the position is saved after every move
and resumed on the next run without fetching the recipes again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		app, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.RunBrowse(ctx, app, cli.BrowseOptions{
			SessionID: sessionID,
			In:        os.Stdin,
			Out:       os.Stdout,
			Width:     tui.Width(os.Stdout),
			Banner:    app.Config.UI.Banner && !noBanner && tui.IsTerminal(os.Stdout),
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringP("session", "s", "", "Persist and resume the step position under this session id")
	browseCmd.Flags().Bool("no-banner", false, "Do not print the banner")

	// browse is the default command.
	rootCmd.RunE = browseCmd.RunE
	rootCmd.Flags().AddFlagSet(browseCmd.Flags())
}
