package domain

import "time"

// Entry represents one item of the podcast feed as published, before any cleanup.
type Entry struct {
	// Title is the raw feed title, possibly carrying promotional prefixes.
	Title string

	// Link is the canonical episode URL. Its last path segment is the episode number.
	Link string

	// ImageURL is the episode artwork URL.
	ImageURL string

	// Published is when the episode was released.
	Published time.Time

	// Duration is the itunes:duration value, empty when the feed omits it.
	Duration string

	// Tags are the category terms in feed order; the first one names the host.
	Tags []string

	// Summary is the HTML description of the episode.
	Summary string
}

// Episode is the normalized record derived from an Entry and its neighbours in the feed.
type Episode struct {
	Title         string
	Number        string
	ImageURL      string
	ImageFilename string
	Featuring     []string
	Date          string
	Duration      string
	PreviousTitle string
	NextTitle     string
	Summary       string
	Link          string
}

// Host returns the first contributor, or "" when there are none.
func (e *Episode) Host() string {
	if len(e.Featuring) == 0 {
		return ""
	}
	return e.Featuring[0]
}

// PreviousLink returns the wiki link to the chronologically previous episode,
// or "" for the oldest episode in the feed.
func (e *Episode) PreviousLink() string {
	return WikiLink(e.PreviousTitle)
}

// NextLink returns the wiki link to the chronologically next episode,
// or "" for the newest episode in the feed.
func (e *Episode) NextLink() string {
	return WikiLink(e.NextTitle)
}

// WikiLink wraps a page title in link brackets. An empty title yields "".
func WikiLink(title string) string {
	if title == "" {
		return ""
	}
	return "[[" + title + "]]"
}
