package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podwiki/pkg/journal"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podwiki", "config.toml")

	out, err := runCommand(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[wiki]")

	_, err = runCommand(t, "config", "init", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestHistory(t *testing.T) {
	t.Setenv("PODWIKI_WIKI_USERNAME", "")
	t.Setenv("PODWIKI_WIKI_PASSWORD", "")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[journal]\ndriver = \"sqlite\"\npath = \""+filepath.ToSlash(dbPath)+"\"\n"), 0o644))

	out, err := runCommand(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sync history recorded.")

	ctx := context.Background()
	j, err := journal.OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, journal.Event{
		RunID:   "0123456789abcdef",
		At:      time.Now(),
		Episode: "Episode 2: Beta",
		Action:  journal.ActionCreatePage,
		Target:  "Episode 2: Beta",
	}))
	require.NoError(t, j.Close(ctx))

	out, err = runCommand(t, "--config", cfgPath, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Episode 2: Beta")
	assert.Contains(t, out, "create_page")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
}

func TestSyncRequiresCredentials(t *testing.T) {
	t.Setenv("PODWIKI_WIKI_USERNAME", "")
	t.Setenv("PODWIKI_WIKI_PASSWORD", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := "lock_path = \"" + filepath.ToSlash(filepath.Join(dir, "sync.lock")) + "\"\n[journal]\ndriver = \"none\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	_, err := runCommand(t, "--config", cfgPath, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[journal]\ndriver = \"redis\"\n"), 0o644))

	_, err := runCommand(t, "--config", cfgPath, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal.driver")
}

type failingJournal struct {
	journal.Nop
}

func (failingJournal) Close(context.Context) error {
	return errors.New("disk full")
}

func TestCloseJournalLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	closeJournal(context.Background(), failingJournal{}, zerolog.New(&buf))

	assert.Contains(t, buf.String(), "failed to close sync journal")
	assert.Contains(t, buf.String(), "disk full")
}

func TestHistoryTableMergesRuns(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []journal.Event{
		{RunID: "aaaaaaaa-1111", At: at, Episode: "Episode 3", Action: journal.ActionUpdateList, Target: "Episodes"},
		{RunID: "aaaaaaaa-1111", At: at, Episode: "Episode 3", Action: journal.ActionCreatePage, Target: "Episode 3"},
		{RunID: "bbbbbbbb-2222", At: at, Episode: "Episode 2", Action: journal.ActionCreatePage, Target: "Episode 2", DryRun: true},
	}

	out := historyTable(events)
	assert.Equal(t, 1, strings.Count(out, "aaaaaaaa"))
	assert.Contains(t, out, "bbbbbbbb")
	assert.NotContains(t, out, "-1111")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "3 event(s)")
}
