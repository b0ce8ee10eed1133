package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"podwiki/pkg/config"
	"podwiki/pkg/httpclient"
	"podwiki/pkg/journal"
	"podwiki/pkg/logging"
	"podwiki/pkg/wiki"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, _, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(w io.Writer) (zerolog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return zerolog.Nop(), err
	}
	level := cfg.Logging.Level
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		level = *c.logLevelFlag
	}
	return logging.New(logging.Options{Level: level, Format: cfg.Logging.Format, Output: w})
}

// openStore connects to the wiki. Without credentials only reads work, which
// is enough for dry runs and previews; those get a DryRun wrapper so nothing
// can be written.
func (c *commandContext) openStore(ctx context.Context, logger zerolog.Logger, readOnly bool) (wiki.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	client, err := httpclient.NewClient(cfg.Wiki.UserAgent, time.Duration(cfg.Wiki.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	mw := wiki.NewMediaWiki(cfg.Wiki.APIURL, client)

	if cfg.HasCredentials() {
		if err := mw.Login(ctx, cfg.Wiki.Username, cfg.Wiki.Password); err != nil {
			return nil, err
		}
		logger.Debug().Str("user", cfg.Wiki.Username).Msg("logged in to wiki")
	} else if !readOnly {
		return nil, fmt.Errorf("%w: set wiki.username and wiki.password (or PODWIKI_WIKI_USERNAME/PODWIKI_WIKI_PASSWORD)", wiki.ErrNotLoggedIn)
	}

	if readOnly {
		return wiki.NewDryRun(mw, logger), nil
	}
	return mw, nil
}

func (c *commandContext) openJournal(ctx context.Context) (journal.Journal, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return journal.Open(ctx, journal.Config{
		Driver:     cfg.Journal.Driver,
		Path:       cfg.Journal.Path,
		DSN:        cfg.Journal.DSN,
		MongoURI:   cfg.Journal.MongoURI,
		Database:   cfg.Journal.Database,
		Collection: cfg.Journal.Collection,
	})
}

// closeJournal flushes the journal on the way out. A failed close loses at
// most the audit trail, so it is logged rather than returned.
func closeJournal(ctx context.Context, j journal.Journal, logger zerolog.Logger) {
	if err := j.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to close sync journal")
	}
}
