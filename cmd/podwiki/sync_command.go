package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podwiki/pkg/parser"
	"podwiki/pkg/reconcile"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Add episodes that are in the feed but missing from the wiki",
		Long: `Find the newest episode already on the wiki and add every newer feed
entry, oldest first: upload its image, link it from the previous episode,
create its page and add it to the episode list. Rerunning is always safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if !dryRun {
				lock, err := reconcile.AcquireLock(cfg.LockPath)
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.Warn().Err(err).Msg("failed to release sync lock")
					}
				}()
			}

			store, err := ctx.openStore(cmd.Context(), logger, dryRun)
			if err != nil {
				return err
			}

			j, err := ctx.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer closeJournal(cmd.Context(), j, logger)

			r := reconcile.New(parser.NewRSSParser(nil, cfg.Feed.UserAgent), store, j, logger, reconcile.Options{
				FeedURL:  cfg.Feed.URL,
				ListPage: cfg.Wiki.ListPage,
				Category: cfg.Wiki.Category,
				DryRun:   dryRun,
			})

			res, err := r.Run(cmd.Context())
			if err != nil {
				logger.Error().Err(err).Msg("sync failed")
				return err
			}

			verb := "Added"
			if dryRun {
				verb = "Would add"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d episode(s) with %d wiki write(s)\n", verb, len(res.Added), res.Writes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the writes a sync would make without sending them")
	return cmd
}
