// Package reconcile brings the wiki up to date with the podcast feed.
package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"podwiki/pkg/domain"
	"podwiki/pkg/episode"
	"podwiki/pkg/journal"
	"podwiki/pkg/wiki"
	"podwiki/pkg/wikitext"
)

// Edit summaries shown in the wiki's page history.
const (
	summaryNextLink   = "Added next episode"
	summaryCreatePage = "Created page"
	summaryList       = "Updated episode list"
)

// FeedSource supplies the podcast feed, newest entry first.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) (*domain.Feed, error)
}

// Options holds per-pass settings.
type Options struct {
	FeedURL  string
	ListPage string
	Category string
	DryRun   bool
}

// Result summarizes one pass.
type Result struct {
	RunID string
	// Newest is the sanitized title of the newest feed entry.
	Newest string
	// LastOnWiki is the newest episode that already had a page, "" if none did.
	LastOnWiki string
	// Added lists the episodes processed, oldest first.
	Added  []string
	Writes int
}

// Reconciler runs reconciliation passes. It is not safe for concurrent use;
// see AcquireLock for cross-process exclusion.
type Reconciler struct {
	feed    FeedSource
	store   wiki.Store
	journal journal.Journal
	logger  zerolog.Logger
	opts    Options
	now     func() time.Time
}

// New creates a Reconciler. A nil journal records nothing.
func New(feed FeedSource, store wiki.Store, j journal.Journal, logger zerolog.Logger, opts Options) *Reconciler {
	if j == nil {
		j = journal.Nop{}
	}
	return &Reconciler{
		feed:    feed,
		store:   store,
		journal: j,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// Run performs one pass: it finds the newest episode already on the wiki and
// adds every newer feed entry, oldest first. Each write is guarded by an
// existence or containment check, so an interrupted pass can simply be rerun.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	logger := r.logger.With().Str("run_id", res.RunID).Logger()

	feed, boundary, err := r.scan(ctx)
	if err != nil {
		return res, err
	}

	newest, _ := feed.Newest()
	res.Newest, _ = episode.SanitizeTitle(newest)
	logger.Info().Str("title", res.Newest).Msg("newest episode")

	if boundary < feed.Len() {
		res.LastOnWiki, _ = episode.SanitizeTitle(feed.At(boundary))
		logger.Info().Str("title", res.LastOnWiki).Msg("wiki has every episode through")
	} else {
		logger.Info().Int("entries", feed.Len()).Msg("wiki has none of the feed's episodes")
	}

	for i := boundary - 1; i >= 0; i-- {
		title, err := r.addEpisode(ctx, logger, feed, i, res)
		if err != nil {
			return res, fmt.Errorf("add %s: %w", title, err)
		}
		res.Added = append(res.Added, title)
	}

	logger.Info().Int("added", len(res.Added)).Int("writes", res.Writes).Msg("done")
	return res, nil
}

// Plan returns the records for the entries a pass would add, oldest first,
// without writing anything.
func (r *Reconciler) Plan(ctx context.Context) ([]*domain.Episode, error) {
	feed, boundary, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	episodes := make([]*domain.Episode, 0, boundary)
	for i := boundary - 1; i >= 0; i-- {
		ep, err := episode.Extract(feed, i)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

// scan fetches the feed and returns the boundary: the index of the newest entry
// that is fully on the wiki, or feed.Len() when none is. Every title up to that point
// must sanitize; the first that does not aborts the pass before any write.
func (r *Reconciler) scan(ctx context.Context) (*domain.Feed, int, error) {
	feed, err := r.feed.Fetch(ctx, r.opts.FeedURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch feed: %w", err)
	}
	if feed.Len() == 0 {
		return nil, 0, fmt.Errorf("fetch feed: no entries")
	}

	for i := 0; i < feed.Len(); i++ {
		title, err := episode.SanitizeTitle(feed.At(i))
		if err != nil {
			return nil, 0, fmt.Errorf("scan feed: %w", err)
		}
		exists, err := r.store.PageExists(ctx, title)
		if err != nil {
			return nil, 0, fmt.Errorf("check page %s: %w", title, err)
		}
		if exists {
			boundary, err := r.resumePoint(ctx, i, title)
			return feed, boundary, err
		}
	}
	return feed, feed.Len(), nil
}

// resumePoint decides whether the newest existing page at index i is complete.
// Page creation comes before the list update, so a pass that died in between
// leaves a page the list does not mention yet; that episode is redone.
func (r *Reconciler) resumePoint(ctx context.Context, i int, title string) (int, error) {
	list, err := r.store.PageText(ctx, r.opts.ListPage)
	if err != nil {
		return 0, fmt.Errorf("read list page: %w", err)
	}
	if strings.Contains(list, title) {
		return i, nil
	}
	r.logger.Info().Str("title", title).Msg("resuming interrupted episode")
	return i + 1, nil
}

func (r *Reconciler) addEpisode(ctx context.Context, logger zerolog.Logger, feed *domain.Feed, i int, res *Result) (string, error) {
	ep, err := episode.Extract(feed, i)
	if err != nil {
		return feed.At(i).Title, err
	}
	logger = logger.With().Str("episode", ep.Title).Logger()
	logger.Info().Msg("adding episode to wiki")

	if err := r.uploadImage(ctx, logger, ep, res); err != nil {
		return ep.Title, err
	}
	if err := r.linkPrevious(ctx, logger, ep, res); err != nil {
		return ep.Title, err
	}
	if err := r.createPage(ctx, logger, ep, res); err != nil {
		return ep.Title, err
	}
	if err := r.updateList(ctx, logger, ep, res); err != nil {
		return ep.Title, err
	}
	return ep.Title, nil
}

func (r *Reconciler) uploadImage(ctx context.Context, logger zerolog.Logger, ep *domain.Episode, res *Result) error {
	if ep.ImageFilename == "" {
		logger.Warn().Msg("episode has no image")
		return nil
	}

	exists, err := r.store.FileExists(ctx, ep.ImageFilename)
	if err != nil {
		return fmt.Errorf("check image %s: %w", ep.ImageFilename, err)
	}
	if exists {
		return nil
	}

	if err := r.store.UploadFromURL(ctx, ep.ImageFilename, ep.ImageURL); err != nil {
		return fmt.Errorf("upload image %s: %w", ep.ImageFilename, err)
	}
	r.record(ctx, logger, res, ep, journal.ActionUploadImage, ep.ImageFilename)
	return nil
}

func (r *Reconciler) linkPrevious(ctx context.Context, logger zerolog.Logger, ep *domain.Episode, res *Result) error {
	if ep.PreviousTitle == "" {
		return nil
	}

	text, err := r.store.PageText(ctx, ep.PreviousTitle)
	if err != nil {
		return fmt.Errorf("read previous page: %w", err)
	}

	patched, changed, err := wikitext.PatchNextLink(text, ep.PreviousTitle, ep)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := r.store.EditPage(ctx, ep.PreviousTitle, patched, summaryNextLink); err != nil {
		return fmt.Errorf("edit previous page: %w", err)
	}
	r.record(ctx, logger, res, ep, journal.ActionLinkPrevious, ep.PreviousTitle)
	return nil
}

func (r *Reconciler) createPage(ctx context.Context, logger zerolog.Logger, ep *domain.Episode, res *Result) error {
	exists, err := r.store.PageExists(ctx, ep.Title)
	if err != nil {
		return fmt.Errorf("check page: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.store.EditPage(ctx, ep.Title, wikitext.RenderEpisodePage(ep, r.opts.Category), summaryCreatePage); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	r.record(ctx, logger, res, ep, journal.ActionCreatePage, ep.Title)
	return nil
}

func (r *Reconciler) updateList(ctx context.Context, logger zerolog.Logger, ep *domain.Episode, res *Result) error {
	text, err := r.store.PageText(ctx, r.opts.ListPage)
	if err != nil {
		return fmt.Errorf("read list page: %w", err)
	}
	if strings.Contains(text, ep.Title) {
		return nil
	}

	patched, err := wikitext.PatchEpisodeList(text, r.opts.ListPage, ep)
	if err != nil {
		return err
	}
	if err := r.store.EditPage(ctx, r.opts.ListPage, patched, summaryList); err != nil {
		return fmt.Errorf("edit list page: %w", err)
	}
	r.record(ctx, logger, res, ep, journal.ActionUpdateList, r.opts.ListPage)
	return nil
}

// record counts a write and appends it to the journal. Journal failures are
// logged only; the wiki is the source of truth.
func (r *Reconciler) record(ctx context.Context, logger zerolog.Logger, res *Result, ep *domain.Episode, action journal.Action, target string) {
	res.Writes++
	logger.Debug().Str("action", string(action)).Str("target", target).Msg("wiki updated")

	evt := journal.Event{
		RunID:   res.RunID,
		At:      r.now().UTC(),
		Episode: ep.Title,
		Action:  action,
		Target:  target,
		DryRun:  r.opts.DryRun,
	}
	if err := r.journal.Record(ctx, evt); err != nil {
		logger.Warn().Err(err).Str("action", string(action)).Msg("failed to record journal event")
	}
}
