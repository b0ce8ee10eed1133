package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent wiki writes from the sync journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			j, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer closeJournal(cmd.Context(), j, logger)

			events, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No sync history recorded.")
				return nil
			}
			fmt.Fprintln(out, historyTable(events))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	return cmd
}
