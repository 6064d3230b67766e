package notes

import "time"

// HistoryEntry records one completed notes download. Location is the local
// file path; URL allows re-downloading the same document.
type HistoryEntry struct {
	Timestamp time.Time
	Format    string
	Filename  string
	Location  string
	URL       string
}

// History is the in-memory download log for the current process, newest
// entry first. It is not persisted; a new run starts empty.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns an empty log.
func NewHistory() *History {
	return &History{}
}

// Add prepends an entry.
func (h *History) Add(entry HistoryEntry) {
	h.entries = append([]HistoryEntry{entry}, h.entries...)
}

// Entries returns the log, newest first.
func (h *History) Entries() []HistoryEntry {
	result := make([]HistoryEntry, len(h.entries))
	copy(result, h.entries)
	return result
}

// Len is the number of recorded downloads.
func (h *History) Len() int {
	return len(h.entries)
}
