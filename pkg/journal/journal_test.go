package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteJournal(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer j.Close(ctx)

	base := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, j.Record(ctx, Event{RunID: "r1", At: base, Episode: "Episode 2", Action: ActionCreatePage, Target: "Episode 2"}))
	require.NoError(t, j.Record(ctx, Event{RunID: "r1", At: base.Add(time.Second), Episode: "Episode 2", Action: ActionUpdateList, Target: "List", DryRun: true}))

	events, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, ActionUpdateList, events[0].Action, "newest first")
	assert.True(t, events[0].DryRun)
	assert.Equal(t, "List", events[0].Target)
	assert.Equal(t, ActionCreatePage, events[1].Action)
	assert.True(t, events[1].At.Equal(base))

	limited, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteJournal_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, Event{RunID: "r1", At: time.Now(), Episode: "E", Action: ActionUploadImage, Target: "e.png"}))
	require.NoError(t, j.Close(ctx))

	j, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer j.Close(ctx)

	events, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	j, err := Open(ctx, Config{Driver: "none"})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, j)

	_, err = Open(ctx, Config{Driver: "carrier-pigeon"})
	assert.Error(t, err)

	_, err = Open(ctx, Config{Driver: "sqlite"})
	assert.Error(t, err, "sqlite needs a path")
}

// TestMongoJournal runs against a real server when PODWIKI_TEST_MONGO_URI is set.
func TestMongoJournal(t *testing.T) {
	uri := os.Getenv("PODWIKI_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PODWIKI_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	j, err := Open(ctx, Config{Driver: "mongo", MongoURI: uri, Database: "podwiki_test", Collection: "events_" + time.Now().Format("150405")})
	require.NoError(t, err)
	defer j.Close(ctx)

	require.NoError(t, j.Record(ctx, Event{RunID: "r1", At: time.Now().UTC(), Episode: "E", Action: ActionCreatePage, Target: "E"}))
	events, err := j.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
