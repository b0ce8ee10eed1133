package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const defaultConfigPath = "~/.config/podwiki/config.toml"

// Feed configures where episodes are read from.
type Feed struct {
	URL       string `toml:"url"`
	UserAgent string `toml:"user_agent"`
}

// Wiki configures the MediaWiki site that mirrors the feed.
type Wiki struct {
	APIURL         string `toml:"api_url"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	ListPage       string `toml:"list_page"`
	Category       string `toml:"category"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Journal configures the audit trail of wiki writes.
type Journal struct {
	Driver     string `toml:"driver"`
	Path       string `toml:"path"`
	DSN        string `toml:"dsn"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Logging configures log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for podwiki.
type Config struct {
	LockPath string  `toml:"lock_path"`
	Feed     Feed    `toml:"feed"`
	Wiki     Wiki    `toml:"wiki"`
	Journal  Journal `toml:"journal"`
	Logging  Logging `toml:"log"`
}

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load parses the configuration file at path (or the default location when
// path is empty), applies environment overrides, and validates the result.
// A missing file is not an error; defaults are used.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("PODWIKI_WIKI_USERNAME")); v != "" {
		c.Wiki.Username = v
	}
	if v := os.Getenv("PODWIKI_WIKI_PASSWORD"); v != "" {
		c.Wiki.Password = v
	}
}

func (c *Config) normalize() error {
	var err error
	if c.LockPath, err = expandPath(c.LockPath); err != nil {
		return fmt.Errorf("lock_path: %w", err)
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}

	c.Feed.URL = strings.TrimSpace(c.Feed.URL)
	c.Wiki.APIURL = strings.TrimSpace(c.Wiki.APIURL)
	c.Wiki.Username = strings.TrimSpace(c.Wiki.Username)
	c.Journal.Driver = strings.ToLower(strings.TrimSpace(c.Journal.Driver))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Wiki.Category == "" {
		c.Wiki.Category = c.Wiki.ListPage
	}
	if c.Wiki.TimeoutSeconds <= 0 {
		c.Wiki.TimeoutSeconds = defaultWikiTimeoutSeconds
	}
	if c.Journal.Driver == "" {
		c.Journal.Driver = "none"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ErrConfigExists is returned by WriteSample when it would replace a file.
var ErrConfigExists = errors.New("config file already exists")

// WriteSample writes the sample configuration and returns the path written.
// An empty path means DefaultConfigPath. The file holds the wiki password,
// so it is created owner-only.
func WriteSample(path string, overwrite bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	target, err := expandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	if !overwrite {
		_, err := os.Stat(target)
		switch {
		case err == nil:
			return target, fmt.Errorf("%w at %s", ErrConfigExists, target)
		case !errors.Is(err, fs.ErrNotExist):
			return target, fmt.Errorf("check config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return target, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(sampleConfig), 0o600); err != nil {
		return target, fmt.Errorf("write sample config: %w", err)
	}
	return target, nil
}
