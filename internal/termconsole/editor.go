package termconsole

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// lineEditor holds the command line typed after the console prompt. The
// session only sees whole strings; cursor movement stays here.
type lineEditor struct {
	text []rune
	pos  int
}

func (e *lineEditor) String() string {
	return string(e.text)
}

// Len is the number of runes on the command line.
func (e *lineEditor) Len() int {
	return len(e.text)
}

func (e *lineEditor) Clear() {
	e.text = nil
	e.pos = 0
}

// SetString replaces the command line, e.g. with a recalled history entry or
// a completion, and parks the cursor after it.
func (e *lineEditor) SetString(value string) {
	if value == "" {
		e.Clear()
		return
	}
	e.text = []rune(value)
	e.pos = len(e.text)
}

func (e *lineEditor) InsertRune(r rune) {
	e.clamp()
	tail := append([]rune{r}, e.text[e.pos:]...)
	e.text = append(e.text[:e.pos], tail...)
	e.pos++
}

// Backspace removes the rune left of the cursor.
func (e *lineEditor) Backspace() {
	if e.pos <= 0 {
		return
	}
	e.text = append(e.text[:e.pos-1], e.text[e.pos:]...)
	e.pos--
}

// Delete removes the rune under the cursor.
func (e *lineEditor) Delete() {
	if e.pos < 0 || e.pos >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.pos], e.text[e.pos+1:]...)
}

func (e *lineEditor) MoveLeft() {
	if e.pos > 0 {
		e.pos--
	}
}

func (e *lineEditor) MoveRight() {
	if e.pos < len(e.text) {
		e.pos++
	}
}

func (e *lineEditor) MoveStart() {
	e.pos = 0
}

func (e *lineEditor) MoveEnd() {
	e.pos = len(e.text)
}

// MoveWordLeft jumps to the start of the current or previous argument.
func (e *lineEditor) MoveWordLeft() {
	e.pos = e.argStart()
}

// MoveWordRight jumps past the next argument.
func (e *lineEditor) MoveWordRight() {
	i := e.pos
	for i < len(e.text) && unicode.IsSpace(e.text[i]) {
		i++
	}
	for i < len(e.text) && !unicode.IsSpace(e.text[i]) {
		i++
	}
	e.pos = i
}

// DeleteWordBackward drops the argument left of the cursor (ctrl-w).
func (e *lineEditor) DeleteWordBackward() {
	start := e.argStart()
	if start >= e.pos {
		return
	}
	e.text = append(e.text[:start], e.text[e.pos:]...)
	e.pos = start
}

// KillLineStart drops everything left of the cursor (ctrl-u).
func (e *lineEditor) KillLineStart() {
	if e.pos <= 0 {
		return
	}
	e.text = append([]rune(nil), e.text[e.pos:]...)
	e.pos = 0
}

// KillLineEnd drops everything from the cursor on (ctrl-k).
func (e *lineEditor) KillLineEnd() {
	if e.pos >= len(e.text) {
		return
	}
	e.text = e.text[:e.pos]
}

// CursorColumn is the display width of the text left of the cursor, used to
// place the terminal cursor after the prompt.
func (e *lineEditor) CursorColumn() int {
	e.clamp()
	return runewidth.StringWidth(string(e.text[:e.pos]))
}

// argStart finds where the argument ending at the cursor begins, skipping
// separating spaces first.
func (e *lineEditor) argStart() int {
	i := e.pos
	for i > 0 && unicode.IsSpace(e.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.text[i-1]) {
		i--
	}
	return i
}

func (e *lineEditor) clamp() {
	e.pos = max(0, min(e.pos, len(e.text)))
}
