package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validateURL("feed.url", c.Feed.URL); err != nil {
		return err
	}
	if err := validateURL("wiki.api_url", c.Wiki.APIURL); err != nil {
		return err
	}
	if c.Wiki.ListPage == "" {
		return errors.New("wiki.list_page is required")
	}
	if (c.Wiki.Username == "") != (c.Wiki.Password == "") {
		return errors.New("wiki.username and wiki.password must be set together")
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	if !slices.Contains([]string{"console", "json"}, c.Logging.Format) {
		return fmt.Errorf("log.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// HasCredentials reports whether a wiki login is configured.
func (c *Config) HasCredentials() bool {
	return c.Wiki.Username != "" && c.Wiki.Password != ""
}

func (c *Config) validateJournal() error {
	switch c.Journal.Driver {
	case "none":
	case "sqlite":
		if c.Journal.Path == "" {
			return errors.New("journal.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Journal.DSN == "" {
			return errors.New("journal.dsn is required for the postgres driver")
		}
	case "mongo":
		if c.Journal.MongoURI == "" {
			return errors.New("journal.mongo_uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("journal.driver must be one of none, sqlite, postgres, mongo; got %q", c.Journal.Driver)
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", field, raw)
	}
	return nil
}
