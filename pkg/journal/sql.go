package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type dialect struct {
	driver   string
	idColumn string
	// bind returns the placeholder for the n-th (1-based) argument.
	bind func(n int) string
}

var (
	sqliteDialect = dialect{
		driver:   "sqlite",
		idColumn: "id INTEGER PRIMARY KEY AUTOINCREMENT",
		bind:     func(int) string { return "?" },
	}
	postgresDialect = dialect{
		driver:   "pgx",
		idColumn: "id BIGSERIAL PRIMARY KEY",
		bind:     func(n int) string { return "$" + strconv.Itoa(n) },
	}
)

// SQL is a journal backed by a database/sql handle.
type SQL struct {
	db *sql.DB
	d  dialect
}

// OpenSQLite opens (creating if needed) a journal in the SQLite file at path.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	return openSQL(ctx, sqliteDialect, path)
}

// OpenPostgres opens a journal in the Postgres database at dsn.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}
	return openSQL(ctx, postgresDialect, dsn)
}

func openSQL(ctx context.Context, d dialect, dsn string) (*SQL, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}

	j := &SQL{db: db, d: d}
	if err := j.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *SQL) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS sync_events (
		` + j.d.idColumn + `,
		run_id TEXT NOT NULL,
		at TEXT NOT NULL,
		episode TEXT NOT NULL,
		action TEXT NOT NULL,
		target TEXT NOT NULL,
		dry_run INTEGER NOT NULL DEFAULT 0
	)`
	if _, err := j.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create sync_events table: %w", err)
	}
	return nil
}

func (j *SQL) Record(ctx context.Context, evt Event) error {
	dry := 0
	if evt.DryRun {
		dry = 1
	}
	stmt := fmt.Sprintf(
		`INSERT INTO sync_events (run_id, at, episode, action, target, dry_run) VALUES (%s, %s, %s, %s, %s, %s)`,
		j.d.bind(1), j.d.bind(2), j.d.bind(3), j.d.bind(4), j.d.bind(5), j.d.bind(6),
	)
	_, err := j.db.ExecContext(ctx, stmt,
		evt.RunID, evt.At.UTC().Format(time.RFC3339Nano), evt.Episode, string(evt.Action), evt.Target, dry)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

func (j *SQL) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT run_id, at, episode, action, target, dry_run FROM sync_events ORDER BY id DESC LIMIT ` + j.d.bind(1)
	rows, err := j.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			evt    Event
			at     string
			action string
			dry    int
		)
		if err := rows.Scan(&evt.RunID, &at, &evt.Episode, &action, &evt.Target, &dry); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if evt.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse event time %q: %w", at, err)
		}
		evt.Action = Action(action)
		evt.DryRun = dry != 0
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (j *SQL) Close(context.Context) error {
	return j.db.Close()
}
