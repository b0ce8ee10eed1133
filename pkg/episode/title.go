// Package episode turns raw feed entries into the normalized records used to
// build and link wiki pages.
package episode

import (
	"errors"
	"fmt"
	"strings"

	"podwiki/pkg/domain"
)

const (
	episodeMarker = "Episode"
	bonusMarker   = "Bonus"
	bonusLinkPart = "bonus"
)

var (
	ErrInvalidTitle    = errors.New("invalid episode title")
	ErrNoContributors  = errors.New("episode has no contributors")
	ErrIndexOutOfRange = errors.New("feed index out of range")
)

// InvalidTitleError reports a feed title that carries no episode marker.
type InvalidTitleError struct {
	Raw    string
	Link   string
	Marker string
}

func (e *InvalidTitleError) Error() string {
	return fmt.Sprintf("invalid episode title %q: no %q marker (link %s)", e.Raw, e.Marker, e.Link)
}

func (e *InvalidTitleError) Is(target error) bool {
	return target == ErrInvalidTitle
}

// IsBonus reports whether the entry is a bonus episode, judged by its link.
func IsBonus(entry domain.Entry) bool {
	return strings.Contains(entry.Link, bonusLinkPart)
}

// SanitizeTitle strips whatever precedes the episode marker in the entry title.
// Bonus entries are cut at "Bonus", all others at "Episode".
func SanitizeTitle(entry domain.Entry) (string, error) {
	marker := episodeMarker
	if IsBonus(entry) {
		marker = bonusMarker
	}

	idx := strings.Index(entry.Title, marker)
	if idx < 0 {
		return "", &InvalidTitleError{Raw: entry.Title, Link: entry.Link, Marker: marker}
	}
	return entry.Title[idx:], nil
}
