package domain

// Feed is the ordered list of feed entries, newest first.
//
// Adjacency follows feed position: the entry at i+1 is the chronologically
// previous (older) episode and the entry at i-1 is the next (newer) one.
type Feed struct {
	entries []Entry
}

// NewFeed wraps entries that are already ordered newest first.
func NewFeed(entries []Entry) *Feed {
	return &Feed{entries: entries}
}

// Len returns the number of entries.
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// At returns the entry at position i. It panics when i is out of range, like a slice index.
func (f *Feed) At(i int) Entry {
	return f.entries[i]
}

// Newest returns the most recently published entry.
func (f *Feed) Newest() (Entry, bool) {
	if f.Len() == 0 {
		return Entry{}, false
	}
	return f.entries[0], true
}

// Older returns the entry published just before the one at i.
func (f *Feed) Older(i int) (Entry, bool) {
	if f.IsOldest(i) {
		return Entry{}, false
	}
	return f.entries[i+1], true
}

// Newer returns the entry published just after the one at i.
func (f *Feed) Newer(i int) (Entry, bool) {
	if f.IsNewest(i) {
		return Entry{}, false
	}
	return f.entries[i-1], true
}

// IsOldest reports whether i is the last position in the feed.
func (f *Feed) IsOldest(i int) bool {
	return i >= f.Len()-1
}

// IsNewest reports whether i is the first position in the feed.
func (f *Feed) IsNewest(i int) bool {
	return i <= 0
}
