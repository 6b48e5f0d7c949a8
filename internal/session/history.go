package session

// historyBuffer keeps every submitted line in order. Entries are never
// deduplicated or dropped.
type historyBuffer struct {
	entries []string
}

func (h *historyBuffer) Append(entry string) {
	h.entries = append(h.entries, entry)
}

func (h *historyBuffer) Len() int {
	return len(h.entries)
}

func (h *historyBuffer) At(i int) string {
	return h.entries[i]
}

func (h *historyBuffer) Entries() []string {
	return append([]string(nil), h.entries...)
}
