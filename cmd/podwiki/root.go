package main

import (
	"github.com/spf13/cobra"
)

// skipConfigLoad marks commands that must run before a config file exists.
const skipConfigLoad = "skipConfigLoad"

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "podwiki",
		Short:         "Keep the podcast wiki in step with the episode feed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newSyncCommand(ctx))
	rootCmd.AddCommand(newPreviewCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigLoad] == "true" {
			return true
		}
	}
	return false
}
