package main

import (
	"fmt"
	"os"

	"github.com/gracepath/core/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "gracepath",
		Short:         "GracePath content generation service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Path to YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newScriptureCmd(),
		newModerateCmd(&configPath),
		newCacheCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configPath)
		},
	}
}
