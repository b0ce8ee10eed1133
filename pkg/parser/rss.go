package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"podwiki/pkg/domain"
)

// ErrEmptyFeed is returned when the feed parses but has no items.
var ErrEmptyFeed = errors.New("feed contains no items")

// RSSParser fetches the podcast feed and maps its items to entries
type RSSParser struct {
	feedParser *gofeed.Parser
}

// NewRSSParser creates a new RSS parser. client and userAgent may be zero values.
func NewRSSParser(client *http.Client, userAgent string) *RSSParser {
	fp := gofeed.NewParser()
	if client != nil {
		fp.Client = client
	}
	if userAgent != "" {
		fp.UserAgent = userAgent
	}
	return &RSSParser{
		feedParser: fp,
	}
}

// Fetch downloads and parses the feed at feedURL. Items keep feed order,
// which podcast hosts publish newest first.
func (p *RSSParser) Fetch(ctx context.Context, feedURL string) (*domain.Feed, error) {
	feed, err := p.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}
	return toFeed(feed)
}

// Parse parses an already downloaded feed document.
func (p *RSSParser) Parse(body string) (*domain.Feed, error) {
	feed, err := p.feedParser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}
	return toFeed(feed)
}

func toFeed(feed *gofeed.Feed) (*domain.Feed, error) {
	if feed == nil || len(feed.Items) == 0 {
		return nil, ErrEmptyFeed
	}

	entries := make([]domain.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toEntry(item))
	}
	return domain.NewFeed(entries), nil
}

func toEntry(item *gofeed.Item) domain.Entry {
	entry := domain.Entry{
		Title:   strings.TrimSpace(item.Title),
		Link:    strings.TrimSpace(item.Link),
		Tags:    item.Categories,
		Summary: item.Description,
	}

	if entry.Summary == "" {
		entry.Summary = item.Content
	}
	if item.PublishedParsed != nil {
		entry.Published = *item.PublishedParsed
	}
	if item.Image != nil {
		entry.ImageURL = item.Image.URL
	}
	if item.ITunesExt != nil {
		entry.Duration = item.ITunesExt.Duration
		if entry.ImageURL == "" {
			entry.ImageURL = item.ITunesExt.Image
		}
	}
	return entry
}
