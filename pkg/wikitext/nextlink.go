package wikitext

import (
	"strings"

	"podwiki/pkg/domain"
)

// NextMarker is the infobox parameter that links an episode page to its successor.
const NextMarker = "|next="

// PatchNextLink points the previous episode's infobox at ep.
//
// It reports false and returns the page untouched when ep's title already
// appears in it. The marker must occur exactly once.
func PatchNextLink(page, pageTitle string, ep *domain.Episode) (string, bool, error) {
	if strings.Contains(page, ep.Title) {
		return page, false, nil
	}

	switch n := strings.Count(page, NextMarker); {
	case n == 0:
		return "", false, &StructureError{Page: pageTitle, Anchor: NextMarker}
	case n > 1:
		return "", false, &StructureError{Page: pageTitle, Anchor: NextMarker, Reason: "occurs more than once"}
	}

	before, after, _ := strings.Cut(page, NextMarker)
	return before + NextMarker + domain.WikiLink(ep.Title) + after, true, nil
}
