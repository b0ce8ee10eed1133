package wiki

import (
	"context"
	"fmt"
	"sync"
)

// Write records one mutation applied to a Memory store.
type Write struct {
	Kind    string // "edit" or "upload"
	Target  string
	Summary string
}

// Memory is an in-process Store. It backs tests and dry runs.
type Memory struct {
	mu     sync.Mutex
	pages  map[string]string
	files  map[string]string
	writes []Write
}

// NewMemory creates a store seeded with the given pages.
func NewMemory(pages map[string]string) *Memory {
	m := &Memory{
		pages: make(map[string]string, len(pages)),
		files: make(map[string]string),
	}
	for title, text := range pages {
		m.pages[title] = text
	}
	return m
}

func (m *Memory) PageExists(ctx context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pages[title]
	return ok, nil
}

func (m *Memory) PageText(ctx context.Context, title string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.pages[title]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, title)
	}
	return text, nil
}

func (m *Memory) EditPage(ctx context.Context, title, text, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[title] = text
	m.writes = append(m.writes, Write{Kind: "edit", Target: title, Summary: summary})
	return nil
}

func (m *Memory) FileExists(ctx context.Context, filename string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filename]
	return ok, nil
}

func (m *Memory) UploadFromURL(ctx context.Context, filename, sourceURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filename] = sourceURL
	m.writes = append(m.writes, Write{Kind: "upload", Target: filename})
	return nil
}

// Page returns the current text of a page and whether it exists.
func (m *Memory) Page(title string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.pages[title]
	return text, ok
}

// Writes returns every mutation applied so far, in order.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Write(nil), m.writes...)
}
