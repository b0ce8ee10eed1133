package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podwiki/pkg/parser"
	"podwiki/pkg/reconcile"
	"podwiki/pkg/wikitext"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print the pages the next sync would create",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			store, err := ctx.openStore(cmd.Context(), logger, true)
			if err != nil {
				return err
			}

			r := reconcile.New(parser.NewRSSParser(nil, cfg.Feed.UserAgent), store, nil, logger, reconcile.Options{
				FeedURL:  cfg.Feed.URL,
				ListPage: cfg.Wiki.ListPage,
				Category: cfg.Wiki.Category,
			})
			episodes, err := r.Plan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(episodes) == 0 {
				fmt.Fprintln(out, "The wiki is up to date.")
				return nil
			}
			for _, ep := range episodes {
				fmt.Fprintf(out, "===== %s =====\n%s\n\n", ep.Title, wikitext.RenderEpisodePage(ep, cfg.Wiki.Category))
				fmt.Fprintf(out, "List entry: %s\n\n", wikitext.EpisodeListLine(ep))
			}
			return nil
		},
	}
}
