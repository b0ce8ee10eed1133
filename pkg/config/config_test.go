package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PODWIKI_WIKI_USERNAME", "")
	t.Setenv("PODWIKI_WIKI_PASSWORD", "")
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, defaultFeedURL, cfg.Feed.URL)
	assert.Equal(t, defaultListPage, cfg.Wiki.ListPage)
	assert.True(t, filepath.IsAbs(cfg.LockPath))
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[feed]
url = "https://example.com/feed.rss"

[wiki]
api_url = "https://wiki.example.com/api.php"
username = "Bot@sync"
password = "from-file"
list_page = "Example Show"

[journal]
driver = "NONE"

[log]
format = "json"
level = "DEBUG"
`)
	t.Setenv("PODWIKI_WIKI_USERNAME", "")
	t.Setenv("PODWIKI_WIKI_PASSWORD", "from-env")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/feed.rss", cfg.Feed.URL)
	assert.Equal(t, "from-env", cfg.Wiki.Password)
	assert.Equal(t, "Example Show", cfg.Wiki.ListPage)
	assert.Equal(t, defaultListPage, cfg.Wiki.Category, "category keeps its default unless set")
	assert.Equal(t, "none", cfg.Journal.Driver)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.HasCredentials())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"relative feed", "[feed]\nurl = \"/feed\"\n", "feed.url"},
		{"unknown journal", "[journal]\ndriver = \"redis\"\n", "journal.driver"},
		{"mongo without uri", "[journal]\ndriver = \"mongo\"\n", "journal.mongo_uri"},
		{"half credentials", "[wiki]\nusername = \"Bot\"\n", "set together"},
		{"bad format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"bad toml", "[wiki\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PODWIKI_WIKI_USERNAME", "")
			t.Setenv("PODWIKI_WIKI_PASSWORD", "")
			_, _, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	cfg := Default()
	require.NoError(t, toml.NewDecoder(strings.NewReader(SampleConfig())).Decode(&cfg))
	require.NoError(t, cfg.normalize())
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.Journal.Driver)
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	written, err := WriteSample(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = WriteSample(path, false)
	require.ErrorIs(t, err, ErrConfigExists)

	require.NoError(t, os.WriteFile(path, []byte("edited"), 0o600))
	_, err = WriteSample(path, true)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SampleConfig(), string(data))
}
