package termconsole

import (
	"pkt.systems/devconsole/internal/format"
	"pkt.systems/devconsole/schema"
)

const defaultMaxLines = 1000

// displayLine is one screen row of a console entry.
type displayLine struct {
	text     string
	severity schema.Severity
	// first marks the row that carries the entry's timestamp and marker.
	first bool
}

// scrollbackView is a snapshot of the visible rows.
type scrollbackView struct {
	Lines        []displayLine
	TotalLines   int
	ScrollOffset int
	AtBottom     bool
}

// scrollback stores console rows and scroll state.
// scrollOffset is the number of rows from the bottom; 0 means at bottom.
type scrollback struct {
	lines        []displayLine
	scrollOffset int
	maxLines     int
	renderer     *format.PlainRenderer
}

func newScrollback(maxLines int) *scrollback {
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}
	return &scrollback{maxLines: maxLines, renderer: format.NewPlainRenderer()}
}

// AppendEntry splits entry into rows. If the view is scrolled up, the offset
// grows so the visible rows stay put.
func (b *scrollback) AppendEntry(entry schema.LogEntry) {
	rows := b.renderer.FormatEntry(entry)
	if len(rows) == 0 {
		return
	}
	for i, row := range rows {
		b.lines = append(b.lines, displayLine{text: row, severity: entry.Severity, first: i == 0})
	}
	if b.scrollOffset > 0 {
		b.scrollOffset += len(rows)
	}
	if len(b.lines) > b.maxLines {
		trim := len(b.lines) - b.maxLines
		b.lines = append([]displayLine(nil), b.lines[trim:]...)
		if b.scrollOffset > len(b.lines) {
			b.scrollOffset = len(b.lines)
		}
	}
}

// Clear drops every row and returns to the bottom.
func (b *scrollback) Clear() {
	b.lines = nil
	b.scrollOffset = 0
}

// ResetScroll returns the view to the bottom.
func (b *scrollback) ResetScroll() {
	b.scrollOffset = 0
}

// Scroll adjusts the offset by delta. Positive delta scrolls up (older rows).
// limit is the viewport height.
func (b *scrollback) Scroll(delta, limit int) {
	b.scrollOffset = clampScroll(b.scrollOffset+delta, len(b.lines), limit)
}

// Snapshot returns the rows visible in a viewport of limit rows.
func (b *scrollback) Snapshot(limit int) scrollbackView {
	total := len(b.lines)
	if limit <= 0 || limit > total {
		limit = total
	}
	if max := maxScroll(total, limit); b.scrollOffset > max {
		b.scrollOffset = max
	}
	end := total - b.scrollOffset
	start := end - limit
	if start < 0 {
		start = 0
	}
	lines := make([]displayLine, end-start)
	copy(lines, b.lines[start:end])
	return scrollbackView{
		Lines:        lines,
		TotalLines:   total,
		ScrollOffset: b.scrollOffset,
		AtBottom:     b.scrollOffset == 0,
	}
}

func maxScroll(total, limit int) int {
	if total <= 0 || limit <= 0 || total <= limit {
		return 0
	}
	return total - limit
}

func clampScroll(offset, total, limit int) int {
	max := maxScroll(total, limit)
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
