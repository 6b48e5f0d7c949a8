// Package session holds the state of the console input line: submission
// history with clamped navigation and prefix autocompletion over the
// registered command names.
package session

import (
	"context"
	"iter"
	"slices"
	"strings"

	"pkt.systems/devconsole/internal/command"
	"pkt.systems/devconsole/schema"
)

// Executor runs a submitted command line.
type Executor interface {
	Execute(ctx context.Context, line string) (command.Result, error)
}

// Commands lists the names autocomplete draws from.
type Commands interface {
	Keys() iter.Seq[string]
}

// Session is the state behind one console input line. It is not safe for
// concurrent use; the input source drives it from a single goroutine.
type Session struct {
	id       schema.SessionID
	commands Commands
	exec     Executor

	history historyBuffer
	// index == history.Len() means the user is editing a live line.
	index   int
	pending string
	input   string

	matches []string
	base    string
}

// New constructs a session.
func New(id schema.SessionID, commands Commands, exec Executor) *Session {
	return &Session{
		id:       id,
		commands: commands,
		exec:     exec,
	}
}

// ID returns the session id.
func (s *Session) ID() schema.SessionID {
	return s.id
}

// Input returns the current input text.
func (s *Session) Input() string {
	return s.input
}

// Matches returns the current autocomplete suggestions, sorted.
func (s *Session) Matches() []string {
	return append([]string(nil), s.matches...)
}

// History returns submitted lines, oldest first.
func (s *Session) History() []string {
	return s.history.Entries()
}

// HistoryIndex returns the navigation cursor into History.
func (s *Session) HistoryIndex() int {
	return s.index
}

// Browsing reports whether the input currently shows a history entry.
func (s *Session) Browsing() bool {
	return s.index < s.history.Len()
}

// InputChanged records an edit made by the user and refreshes autocomplete.
func (s *Session) InputChanged(text string) {
	s.input = text
	s.refreshMatches()
}

// Submit appends text to history, returns to live editing and runs it.
// Empty or whitespace-only text is ignored.
func (s *Session) Submit(ctx context.Context, text string) (command.Result, error) {
	if strings.TrimSpace(text) == "" {
		return command.Result{}, nil
	}
	s.history.Append(text)
	s.index = s.history.Len()
	s.pending = ""
	s.input = ""
	var (
		result command.Result
		err    error
	)
	if s.exec != nil {
		result, err = s.exec.Execute(ctx, text)
	}
	s.resetAutocomplete()
	return result, err
}

// TabComplete replaces the input with the first match plus a trailing space
// and recomputes the matches for the completed text.
func (s *Session) TabComplete() (string, bool) {
	if len(s.matches) == 0 {
		return s.input, false
	}
	s.input = s.matches[0] + " "
	s.refreshMatches()
	return s.input, true
}

// HistoryPrev moves one entry back, clamping at the oldest. Leaving live
// editing stashes the current input so HistoryNext can restore it.
func (s *Session) HistoryPrev() (string, bool) {
	n := s.history.Len()
	if n == 0 {
		return s.input, false
	}
	if s.index == n {
		s.pending = s.input
	}
	if s.index > 0 {
		s.index--
	}
	s.input = s.history.At(s.index)
	s.refreshMatches()
	return s.input, true
}

// HistoryNext moves one entry forward. Stepping past the newest entry
// restores the stashed live input. It does nothing while already live.
func (s *Session) HistoryNext() (string, bool) {
	n := s.history.Len()
	if s.index >= n {
		return s.input, false
	}
	s.index++
	if s.index == n {
		s.input = s.pending
	} else {
		s.input = s.history.At(s.index)
	}
	s.refreshMatches()
	return s.input, true
}

// Reset clears the input and autocomplete without touching history.
func (s *Session) Reset() {
	s.input = ""
	s.index = s.history.Len()
	s.pending = ""
	s.resetAutocomplete()
}

// refreshMatches keeps the matches in step with the input. They are
// recomputed only when the lower-cased input differs from the base they were
// computed from, so repeated refreshes with the same text are no-ops.
func (s *Session) refreshMatches() {
	if strings.TrimSpace(s.input) == "" {
		s.resetAutocomplete()
		return
	}
	base := strings.ToLower(s.input)
	if base == s.base {
		return
	}
	s.base = base
	s.matches = s.complete(base)
}

func (s *Session) resetAutocomplete() {
	s.matches = nil
	s.base = ""
}

func (s *Session) complete(prefix string) []string {
	if s.commands == nil {
		return nil
	}
	var matches []string
	for key := range s.commands.Keys() {
		name := strings.ToLower(key)
		if name != prefix && strings.HasPrefix(name, prefix) {
			matches = append(matches, key)
		}
	}
	slices.Sort(matches)
	return matches
}
