// Package wikitext renders episode pages and applies small anchored edits to
// existing wiki markup.
//
// Pages are treated as ordered lines. Every edit locates an anchor by exact
// or substring match and fails with a StructureError when the anchor is
// absent, so a page whose layout drifted is reported instead of corrupted.
package wikitext

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPageStructure is matched by every StructureError.
var ErrPageStructure = errors.New("page structure mismatch")

// StructureError names the page and the anchor that could not be located.
type StructureError struct {
	Page   string
	Anchor string
	Reason string
}

func (e *StructureError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "not found"
	}
	return fmt.Sprintf("page %q: anchor %q %s", e.Page, e.Anchor, reason)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrPageStructure
}

// Lines splits page text into lines. Join reverses it exactly.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Join reassembles lines into page text.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// FindLine returns the index of the first line equal to anchor at or after from.
func FindLine(lines []string, anchor string, from int) (int, bool) {
	for i := max(from, 0); i < len(lines); i++ {
		if lines[i] == anchor {
			return i, true
		}
	}
	return -1, false
}

// FindLineContaining returns the index of the first line containing substr at or after from.
func FindLineContaining(lines []string, substr string, from int) (int, bool) {
	for i := max(from, 0); i < len(lines); i++ {
		if strings.Contains(lines[i], substr) {
			return i, true
		}
	}
	return -1, false
}

// InsertAfter returns lines with line inserted right after position i.
func InsertAfter(lines []string, i int, line string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:i+1]...)
	out = append(out, line)
	return append(out, lines[i+1:]...)
}

// Section locates the lines following the header line and ending before the
// next line equal to terminator. It returns the half-open span [start, end).
func Section(lines []string, header, terminator string) (start, end int, err error) {
	h, ok := FindLine(lines, header, 0)
	if !ok {
		return 0, 0, &StructureError{Anchor: header}
	}
	start = h + 1
	end, ok = FindLine(lines, terminator, start)
	if !ok {
		return 0, 0, &StructureError{Anchor: header, Reason: "has no terminating blank line"}
	}
	return start, end, nil
}

// Splice replaces lines[start:end] with repl.
func Splice(lines []string, start, end int, repl []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(repl))
	out = append(out, lines[:start]...)
	out = append(out, repl...)
	return append(out, lines[end:]...)
}

// withPage fills in the page name on structure errors raised by the primitives.
func withPage(err error, page string) error {
	var se *StructureError
	if errors.As(err, &se) && se.Page == "" {
		se.Page = page
	}
	return err
}
