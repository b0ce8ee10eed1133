// Package wiki provides access to the wiki that mirrors the podcast feed.
package wiki

import (
	"context"
	"errors"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// Store is the subset of wiki operations a reconciliation pass needs.
// Pages are keyed by title, files by bare filename (no "File:" prefix).
type Store interface {
	PageExists(ctx context.Context, title string) (bool, error)
	PageText(ctx context.Context, title string) (string, error)
	EditPage(ctx context.Context, title, text, summary string) error
	FileExists(ctx context.Context, filename string) (bool, error)
	UploadFromURL(ctx context.Context, filename, sourceURL string) error
}
