package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bakingapp/internal/cli"
	"github.com/aretw0/bakingapp/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bakingapp",
	Short: "Browse recipes and walk through them step by step",
	Long: `bakingapp fetches a recipe collection from a remote JSON feed, shows it as a grid
and walks a recipe's instructions one step at a time. It can also serve the same
navigation over an HTTP API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// newApp loads the configuration and wires the application for cmd.
func newApp(cmd *cobra.Command, interactive bool) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(cfg.Log, debug, interactive)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cfg, cli.WithAppLogger(logger))
}
