package wiki

import (
	"context"

	"github.com/rs/zerolog"
)

// DryRun reads through to a live store but keeps writes in a local overlay.
// Later reads in the same pass see the overlay, so a multi-episode plan
// behaves as it would against the real wiki.
type DryRun struct {
	store   Store
	overlay *Memory
	logger  zerolog.Logger
}

// NewDryRun wraps store so that no write ever reaches it.
func NewDryRun(store Store, logger zerolog.Logger) *DryRun {
	return &DryRun{
		store:   store,
		overlay: NewMemory(nil),
		logger:  logger.With().Bool("dry_run", true).Logger(),
	}
}

func (d *DryRun) PageExists(ctx context.Context, title string) (bool, error) {
	if _, ok := d.overlay.Page(title); ok {
		return true, nil
	}
	return d.store.PageExists(ctx, title)
}

func (d *DryRun) PageText(ctx context.Context, title string) (string, error) {
	if text, ok := d.overlay.Page(title); ok {
		return text, nil
	}
	return d.store.PageText(ctx, title)
}

func (d *DryRun) EditPage(ctx context.Context, title, text, summary string) error {
	d.logger.Info().Str("page", title).Str("summary", summary).Int("bytes", len(text)).Msg("would edit page")
	return d.overlay.EditPage(ctx, title, text, summary)
}

func (d *DryRun) FileExists(ctx context.Context, filename string) (bool, error) {
	if ok, _ := d.overlay.FileExists(ctx, filename); ok {
		return true, nil
	}
	return d.store.FileExists(ctx, filename)
}

func (d *DryRun) UploadFromURL(ctx context.Context, filename, sourceURL string) error {
	d.logger.Info().Str("file", filename).Str("source", sourceURL).Msg("would upload file")
	return d.overlay.UploadFromURL(ctx, filename, sourceURL)
}

// Writes returns the writes that were suppressed.
func (d *DryRun) Writes() []Write {
	return d.overlay.Writes()
}
