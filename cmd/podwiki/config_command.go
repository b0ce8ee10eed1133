package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podwiki/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the podwiki configuration file",
		Annotations: map[string]string{skipConfigLoad: "true"},
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration to fill in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := config.WriteSample(path, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", written)
			fmt.Fprintln(cmd.OutOrStdout(), "Point feed.url and wiki.api_url at your show, then add a bot password under [wiki] before running sync.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Where to write the file (default ~/.config/podwiki/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
