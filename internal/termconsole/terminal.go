// Package termconsole is the local terminal front end of the console. It
// decodes keys, keeps the input line in sync with the console session and
// renders the broadcast into a scrollback on the alternate screen.
package termconsole

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"pkt.systems/devconsole/internal/command"
	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/internal/session"
	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

const (
	defaultWidth         = 80
	defaultHeight        = 24
	defaultFrameInterval = 100 * time.Millisecond
	hiddenHint           = "console hidden, press F1 to open"
)

// Console is the part of the console the terminal drives.
type Console interface {
	ID() schema.SessionID
	Session() *session.Session
	Submit(ctx context.Context, line string) (command.Result, error)
	Subscribe(fn func(eventbus.Event)) func()
	Toggle() bool
	Visible() bool
}

// Host is the application behind the console. It is advanced once per frame.
type Host interface {
	Frame(dt time.Duration)
	Status() string
}

// Config configures the terminal.
type Config struct {
	Prompt          string
	Theme           schema.ThemeName
	ScrollbackLines int
	FrameInterval   time.Duration
	SuggestionLines int
}

// Terminal runs the console on a local TTY.
type Terminal struct {
	console Console
	host    Host
	cfg     Config
	in      io.Reader
	screen  *screen
	styles  styles
	editor  lineEditor

	fd     int
	hasTTY bool
	width  int
	height int

	mu     sync.Mutex
	scroll *scrollback

	redrawCh chan struct{}
	dirty    bool
}

// New constructs a terminal reading keys from in and drawing to out. When in
// is a terminal it is switched to raw mode for the duration of Run.
func New(console Console, host Host, in io.Reader, out io.Writer, cfg Config) *Terminal {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = defaultFrameInterval
	}
	if cfg.SuggestionLines < 0 {
		cfg.SuggestionLines = 0
	}
	t := &Terminal{
		console:  console,
		host:     host,
		cfg:      cfg,
		in:       in,
		screen:   newScreen(out),
		styles:   stylesFor(cfg.Theme),
		scroll:   newScrollback(cfg.ScrollbackLines),
		redrawCh: make(chan struct{}, 1),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if f, ok := in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.hasTTY = true
	}
	return t
}

// SetSize sets the frame size; non-positive values fall back to 80x24.
func (t *Terminal) SetSize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	t.width = width
	t.height = height
}

// Run draws the console until ctx is done, input ends or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	if ctx == nil {
		return schema.ErrMissingContext
	}
	log := pslog.Ctx(ctx)
	if t.hasTTY {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("terminal raw mode: %w", err)
		}
		defer func() { _ = term.Restore(t.fd, state) }()
		t.refreshSize()
	}
	t.screen.EnterAltScreen()
	defer t.screen.ExitAltScreen()

	cancel := t.console.Subscribe(t.onEvent)
	defer cancel()

	t.editor.SetString(t.console.Session().Input())
	t.render(log)
	log.Info("terminal session start", "width", t.width, "height", t.height, "tty", t.hasTTY)

	keys := make(chan key, 16)
	go readKeys(t.in, keys)

	ticker := time.NewTicker(t.cfg.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Info("terminal session end", "reason", "context")
			return nil
		case k, ok := <-keys:
			if !ok {
				log.Info("terminal session end", "reason", "input closed")
				return nil
			}
			if t.handleKey(ctx, k) {
				log.Info("terminal session end", "reason", "quit")
				return nil
			}
		case now := <-ticker.C:
			if t.host != nil {
				t.host.Frame(now.Sub(last))
			}
			last = now
			if t.hasTTY && t.refreshSize() {
				t.screen.Invalidate()
				log.Debug("terminal resize", "width", t.width, "height", t.height)
			}
			t.dirty = true
		case <-t.redrawCh:
			t.dirty = true
		}

		if t.dirty {
			t.render(log)
			t.dirty = false
		}
	}
}

// onEvent runs on the publishing goroutine, which may not be the Run loop.
func (t *Terminal) onEvent(ev eventbus.Event) {
	t.mu.Lock()
	switch ev.Type {
	case eventbus.EventLog:
		t.scroll.AppendEntry(ev.Entry)
	case eventbus.EventClear:
		t.scroll.Clear()
	}
	t.mu.Unlock()
	t.requestRedraw()
}

func (t *Terminal) requestRedraw() {
	select {
	case t.redrawCh <- struct{}{}:
	default:
	}
}

// handleKey applies one key and reports whether the terminal should exit.
// It must not hold t.mu while calling into the console: console calls can
// log, and forwarded host logs come back through onEvent.
func (t *Terminal) handleKey(ctx context.Context, k key) bool {
	t.dirty = true
	if !t.console.Visible() {
		switch k.kind {
		case keyToggle:
			t.toggle()
		case keyCtrlC, keyCtrlD:
			return true
		}
		return false
	}
	sess := t.console.Session()
	switch k.kind {
	case keyToggle:
		t.toggle()
	case keyCtrlD:
		if t.editor.Len() == 0 {
			return true
		}
		t.editor.Delete()
		t.inputChanged()
	case keyCtrlC:
		t.editor.Clear()
		t.inputChanged()
	case keyEnter:
		t.submit(ctx)
	case keyRune:
		t.editor.InsertRune(k.r)
		t.inputChanged()
	case keyBackspace:
		t.editor.Backspace()
		t.inputChanged()
	case keyDelete:
		t.editor.Delete()
		t.inputChanged()
	case keyCtrlW:
		t.editor.DeleteWordBackward()
		t.inputChanged()
	case keyCtrlU:
		t.editor.KillLineStart()
		t.inputChanged()
	case keyCtrlK:
		t.editor.KillLineEnd()
		t.inputChanged()
	case keyLeft:
		t.editor.MoveLeft()
	case keyRight:
		t.editor.MoveRight()
	case keyHome, keyCtrlA:
		t.editor.MoveStart()
	case keyEnd, keyCtrlE:
		t.editor.MoveEnd()
	case keyAltB:
		t.editor.MoveWordLeft()
	case keyAltF:
		t.editor.MoveWordRight()
	case keyTab:
		if text, ok := sess.TabComplete(); ok {
			t.editor.SetString(text)
		}
	case keyUp:
		if text, ok := sess.HistoryPrev(); ok {
			t.editor.SetString(text)
		}
	case keyDown:
		if text, ok := sess.HistoryNext(); ok {
			t.editor.SetString(text)
		}
	case keyPageUp:
		t.scrollBy(1)
	case keyPageDown:
		t.scrollBy(-1)
	case keyCtrlL:
		t.mu.Lock()
		t.scroll.Clear()
		t.mu.Unlock()
	}
	return false
}

func (t *Terminal) inputChanged() {
	t.console.Session().InputChanged(t.editor.String())
}

func (t *Terminal) submit(ctx context.Context) {
	line := t.editor.String()
	t.mu.Lock()
	t.scroll.ResetScroll()
	t.mu.Unlock()
	if _, err := t.console.Submit(ctx, line); err != nil {
		pslog.Ctx(ctx).Debug("terminal submit", "err", err)
	}
	t.editor.SetString(t.console.Session().Input())
}

func (t *Terminal) toggle() {
	t.console.Toggle()
	t.editor.SetString(t.console.Session().Input())
}

func (t *Terminal) scrollBy(direction int) {
	limit := t.outputHeight(len(t.suggestions()))
	if limit <= 0 {
		return
	}
	t.mu.Lock()
	t.scroll.Scroll(direction*limit, limit)
	t.mu.Unlock()
}

func (t *Terminal) refreshSize() bool {
	width, height, err := term.GetSize(t.fd)
	if err != nil || (width == t.width && height == t.height) {
		return false
	}
	t.SetSize(width, height)
	return true
}

// suggestions returns the autocomplete rows shown under the prompt.
func (t *Terminal) suggestions() []string {
	limit := t.cfg.SuggestionLines
	matches := t.console.Session().Matches()
	if limit == 0 || len(matches) == 0 {
		return nil
	}
	if len(matches) <= limit {
		return matches
	}
	out := append([]string(nil), matches[:limit-1]...)
	return append(out, fmt.Sprintf("... %d more", len(matches)-(limit-1)))
}

// outputHeight is the scrollback viewport: everything but the header, the
// prompt and the suggestion rows.
func (t *Terminal) outputHeight(suggestions int) int {
	h := t.height - 2 - suggestions
	if h < 0 {
		return 0
	}
	return h
}

func (t *Terminal) header(width int, scrolled int) string {
	parts := []string{" devconsole"}
	if id := string(t.console.ID()); id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		parts = append(parts, "session "+id)
	}
	if t.host != nil {
		if status := t.host.Status(); status != "" {
			parts = append(parts, status)
		}
	}
	if scrolled > 0 {
		parts = append(parts, fmt.Sprintf("scrolled +%d", scrolled))
	}
	return t.styles.header.Width(width).MaxWidth(width).Render(strings.Join(parts, " | "))
}

// frame builds the rows of the current frame and the 1-based cursor position.
func (t *Terminal) frame() ([]string, int, int, bool) {
	width, height := t.width, t.height
	lines := make([]string, 0, height)

	if !t.console.Visible() {
		lines = append(lines, t.header(width, 0))
		lines = append(lines, t.styles.hint.MaxWidth(width).Render(hiddenHint))
		for len(lines) < height {
			lines = append(lines, "")
		}
		return lines, height, 1, false
	}

	suggestions := t.suggestions()
	outputHeight := t.outputHeight(len(suggestions))
	t.mu.Lock()
	view := t.scroll.Snapshot(outputHeight)
	t.mu.Unlock()

	lines = append(lines, t.header(width, view.ScrollOffset))
	for i := len(view.Lines); i < outputHeight; i++ {
		lines = append(lines, "")
	}
	for _, line := range view.Lines {
		lines = append(lines, t.styles.row(line, width))
	}

	prompt := t.styles.prompt.Render(t.cfg.Prompt)
	lines = append(lines, prompt+t.editor.String())
	cursorRow := len(lines)
	cursorCol := lipgloss.Width(prompt) + t.editor.CursorColumn() + 1

	for _, suggestion := range suggestions {
		row := strings.Repeat(" ", lipgloss.Width(prompt)) + suggestion
		lines = append(lines, t.styles.suggestion.MaxWidth(width).Render(row))
	}
	return lines, cursorRow, cursorCol, true
}

func (t *Terminal) render(log pslog.Logger) {
	lines, row, col, showCursor := t.frame()
	if err := t.screen.Render(lines, row, col, showCursor); err != nil {
		log.Warn("terminal render failed", "err", err)
	}
}
