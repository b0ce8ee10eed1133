package episode

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"podwiki/pkg/content"
	"podwiki/pkg/domain"
)

// DateFormat is how release dates appear in the episode infobox.
const DateFormat = "Jan 02, 2006"

// Extract builds the episode record for the feed entry at position i.
func Extract(feed *domain.Feed, i int) (*domain.Episode, error) {
	if i < 0 || i >= feed.Len() {
		return nil, fmt.Errorf("%w: %d (feed has %d entries)", ErrIndexOutOfRange, i, feed.Len())
	}
	entry := feed.At(i)

	title, err := SanitizeTitle(entry)
	if err != nil {
		return nil, err
	}

	if len(entry.Tags) == 0 {
		return nil, fmt.Errorf("%s: %w", title, ErrNoContributors)
	}

	ep := &domain.Episode{
		Title:         title,
		Number:        Number(entry),
		ImageURL:      entry.ImageURL,
		ImageFilename: ImageFilename(entry.ImageURL),
		Featuring:     append([]string(nil), entry.Tags...),
		Duration:      entry.Duration,
		Link:          entry.Link,
	}

	if !entry.Published.IsZero() {
		ep.Date = entry.Published.Format(DateFormat)
	}

	if older, ok := feed.Older(i); ok {
		if ep.PreviousTitle, err = SanitizeTitle(older); err != nil {
			return nil, fmt.Errorf("previous episode of %s: %w", title, err)
		}
	}
	if newer, ok := feed.Newer(i); ok {
		if ep.NextTitle, err = SanitizeTitle(newer); err != nil {
			return nil, fmt.Errorf("next episode of %s: %w", title, err)
		}
	}

	// A missing summary leaves the body blank rather than failing the run.
	ep.Summary, err = content.FirstParagraph(entry.Summary)
	if err != nil && !errors.Is(err, content.ErrEmptySummary) {
		return nil, fmt.Errorf("summary of %s: %w", title, err)
	}

	return ep, nil
}

// Number returns the display label for the episode: the last path segment of
// its link, prefixed with "Bonus " for bonus episodes.
func Number(entry domain.Entry) string {
	link := strings.TrimRight(entry.Link, "/")
	segment := link[strings.LastIndex(link, "/")+1:]
	if IsBonus(entry) {
		return "Bonus " + segment
	}
	return segment
}

// ImageFilename returns the basename of the image URL, without any query string.
func ImageFilename(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return imageURL[strings.LastIndex(imageURL, "/")+1:]
}
