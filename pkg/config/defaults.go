package config

const (
	defaultFeedURL            = "https://pgenpod.com/updates?format=rss"
	defaultWikiAPIURL         = "https://perfectlygeneric.fandom.com/api.php"
	defaultListPage           = "Perfectly Generic Podcast"
	defaultWikiTimeoutSeconds = 30
	defaultLockPath           = "~/.local/state/podwiki/sync.lock"
	defaultJournalDriver      = "sqlite"
	defaultJournalPath        = "~/.local/state/podwiki/journal.db"
	defaultMongoDatabase      = "podwiki"
	defaultMongoCollection    = "sync_events"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LockPath: defaultLockPath,
		Feed: Feed{
			URL: defaultFeedURL,
		},
		Wiki: Wiki{
			APIURL:         defaultWikiAPIURL,
			ListPage:       defaultListPage,
			Category:       defaultListPage,
			TimeoutSeconds: defaultWikiTimeoutSeconds,
		},
		Journal: Journal{
			Driver:     defaultJournalDriver,
			Path:       defaultJournalPath,
			Database:   defaultMongoDatabase,
			Collection: defaultMongoCollection,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
