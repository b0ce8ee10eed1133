package wikitext

import (
	"fmt"
	"strings"

	"podwiki/pkg/domain"
)

// DefaultCategory is the show category appended to every episode page.
const DefaultCategory = "Perfectly Generic Podcast"

// RenderEpisodePage returns the full source of a new episode page.
//
// The infobox field order and placeholders are read by the wiki's
// "Podcast episode" template and must not change.
func RenderEpisodePage(ep *domain.Episode, category string) string {
	if category == "" {
		category = DefaultCategory
	}

	var b strings.Builder
	b.WriteString("{{Podcast episode")
	fmt.Fprintf(&b, "\n |title1=%s", ep.Title)
	fmt.Fprintf(&b, "\n |image1=%s", ep.ImageFilename)
	fmt.Fprintf(&b, "\n |caption1=%s", ep.Link)
	fmt.Fprintf(&b, "\n |episode=%s", ep.Number)
	fmt.Fprintf(&b, "\n |featuring=[[%s]] (host)<br>", ep.Host())
	for _, name := range ep.Featuring[min(1, len(ep.Featuring)):] {
		fmt.Fprintf(&b, "[[%s]]<br>", name)
	}
	fmt.Fprintf(&b, "\n |release_date=%s", ep.Date)
	fmt.Fprintf(&b, "\n |duration=%s", ep.Duration)
	b.WriteString("\n |transcriber=\n |intro_music=\n |outro_music=\n |other_music=")
	fmt.Fprintf(&b, "\n |previous=%s", ep.PreviousLink())
	fmt.Fprintf(&b, "\n |next=%s", ep.NextLink())
	b.WriteString("\n}}")

	fmt.Fprintf(&b, "\n\n%s", ep.Summary)
	fmt.Fprintf(&b, "\n\nListen to this episode at %s", ep.Link)
	b.WriteString("\n\n== Transcript ==\n\n''This episode has not yet been transcribed.''")
	fmt.Fprintf(&b, "\n\n[[Category:Episodes]]\n[[Category:%s]]", category)

	return b.String()
}
