// Package journal keeps an audit trail of the writes each reconciliation pass
// makes to the wiki. It is written during a pass and never read back by it:
// every idempotence check goes to the wiki itself.
package journal

import (
	"context"
	"fmt"
	"time"
)

// Action names one kind of wiki write.
type Action string

const (
	ActionUploadImage  Action = "upload_image"
	ActionLinkPrevious Action = "link_previous"
	ActionCreatePage   Action = "create_page"
	ActionUpdateList   Action = "update_list"
)

// Event is one wiki write performed (or, in a dry run, suppressed) during a pass.
type Event struct {
	RunID   string    `bson:"run_id" json:"run_id"`
	At      time.Time `bson:"at" json:"at"`
	Episode string    `bson:"episode" json:"episode"`
	Action  Action    `bson:"action" json:"action"`
	Target  string    `bson:"target" json:"target"`
	DryRun  bool      `bson:"dry_run" json:"dry_run"`
}

// Journal stores events.
type Journal interface {
	Record(ctx context.Context, evt Event) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)
	Close(ctx context.Context) error
}

// Config selects and configures a backend.
type Config struct {
	Driver     string // none, sqlite, postgres or mongo
	Path       string // sqlite database file
	DSN        string // postgres connection string
	MongoURI   string
	Database   string
	Collection string
}

// Open returns the journal named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Journal, error) {
	switch cfg.Driver {
	case "", "none":
		return Nop{}, nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.Path)
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN)
	case "mongo":
		client := NewMongo(cfg.MongoURI, cfg.Database, cfg.Collection)
		if err := client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect mongo journal: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown journal driver %q", cfg.Driver)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

func (Nop) Recent(context.Context, int) ([]Event, error) { return nil, nil }

func (Nop) Close(context.Context) error { return nil }
