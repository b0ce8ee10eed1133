package wikitext

import (
	"fmt"
	"slices"
	"strings"

	"podwiki/pkg/domain"
)

const (
	// EpisodesHeader anchors the first list entry when an episode has no predecessor.
	EpisodesHeader = "== Episodes =="

	// PanelHeader opens the contributor roster, which runs until the next blank line.
	PanelHeader = "== Panel =="

	hostSuffix = " (host)"
)

// EpisodeListLine formats the episode list entry for ep. The trailing "**"
// marks the description as still to be written by an editor. ep must have at
// least one contributor; episode.Extract rejects entries without tags.
func EpisodeListLine(ep *domain.Episode) string {
	links := make([]string, len(ep.Featuring))
	for i, name := range ep.Featuring {
		links[i] = domain.WikiLink(name)
	}

	var with string
	switch len(links) {
	case 1:
		with = links[0]
	case 2:
		with = links[0] + " and " + links[1]
	default:
		with = strings.Join(links[:len(links)-1], ", ") + ", and " + links[len(links)-1]
	}
	return fmt.Sprintf("* %s with %s **", domain.WikiLink(ep.Title), with)
}

// PatchEpisodeList adds ep to the master list page: a list entry right after
// the previous episode's entry, and any new contributors to the panel roster.
func PatchEpisodeList(page, pageTitle string, ep *domain.Episode) (string, error) {
	if len(ep.Featuring) == 0 {
		return "", fmt.Errorf("episode %q has no contributors", ep.Title)
	}

	lines := Lines(page)

	lines, err := insertListEntry(lines, ep)
	if err != nil {
		return "", withPage(err, pageTitle)
	}

	start, end, err := Section(lines, PanelHeader, "")
	if err != nil {
		return "", withPage(err, pageTitle)
	}
	panel, err := SyncPanel(lines[start:end], ep.Featuring)
	if err != nil {
		return "", withPage(err, pageTitle)
	}
	lines = Splice(lines, start, end, panel)

	return Join(lines), nil
}

func insertListEntry(lines []string, ep *domain.Episode) ([]string, error) {
	anchor := ep.PreviousLink()
	var (
		at int
		ok bool
	)
	if anchor == "" {
		anchor = EpisodesHeader
		at, ok = FindLine(lines, anchor, 0)
	} else {
		at, ok = FindLineContaining(lines, anchor, 0)
	}
	if !ok {
		return nil, &StructureError{Anchor: anchor}
	}
	return InsertAfter(lines, at, EpisodeListLine(ep)), nil
}

// SyncPanel returns the roster bullets with every contributor present and the
// host (featuring[0]) annotated. Existing bullets are never removed; when a
// bullet is added the block is re-sorted case-insensitively. A host bullet
// already tagged " (host)" anywhere is left alone; otherwise the tag goes
// right after the link.
func SyncPanel(panel []string, featuring []string) ([]string, error) {
	out := slices.Clone(panel)

	for i, name := range featuring {
		link := domain.WikiLink(name)

		if _, found := FindLineContaining(out, link, 0); !found {
			out = append(out, "* "+link)
			slices.SortStableFunc(out, func(a, b string) int {
				return strings.Compare(strings.ToLower(a), strings.ToLower(b))
			})
		}

		if i != 0 {
			continue
		}

		idx, _ := FindLineContaining(out, link, 0)
		if _, dup := FindLineContaining(out, link, idx+1); dup {
			return nil, &StructureError{Anchor: link, Reason: "has more than one panel bullet"}
		}
		if !strings.Contains(out[idx], hostSuffix) {
			out[idx] = strings.Replace(out[idx], link, link+hostSuffix, 1)
		}
	}

	return out, nil
}
