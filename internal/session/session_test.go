package session

import (
	"context"
	"slices"
	"testing"

	"pkt.systems/devconsole/internal/command"
	"pkt.systems/devconsole/schema"
)

type fakeExecutor struct {
	lines []string
}

func (f *fakeExecutor) Execute(_ context.Context, line string) (command.Result, error) {
	f.lines = append(f.lines, line)
	return command.OK("ran " + line), nil
}

func newSession(t *testing.T, names ...string) (*Session, *fakeExecutor) {
	t.Helper()
	reg := command.NewRegistry(nil)
	for _, name := range names {
		spec := command.Spec{Name: schema.CommandName(name), Handler: command.Action(func([]string) {})}
		if err := reg.Register(spec); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	exec := &fakeExecutor{}
	return New("s1", reg, exec), exec
}

func TestInputChangedComputesSortedStrictPrefixMatches(t *testing.T) {
	s, _ := newSession(t, "time-scale", "help", "time", "timer", "teleport")

	s.InputChanged("TI")
	if got := s.Matches(); !slices.Equal(got, []string{"time", "time-scale", "timer"}) {
		t.Fatalf("unexpected matches: %v", got)
	}

	s.InputChanged("time")
	if got := s.Matches(); !slices.Equal(got, []string{"time-scale", "timer"}) {
		t.Fatalf("expected exact match to be excluded, got %v", got)
	}

	s.InputChanged("help")
	if got := s.Matches(); len(got) != 0 {
		t.Fatalf("expected no matches for a complete name, got %v", got)
	}

	s.InputChanged("   ")
	if got := s.Matches(); len(got) != 0 {
		t.Fatalf("expected whitespace to clear matches, got %v", got)
	}
}

func TestInputChangedIsIdempotent(t *testing.T) {
	s, _ := newSession(t, "help", "hello")
	s.InputChanged("he")
	first := s.Matches()
	s.InputChanged("he")
	s.InputChanged("HE")
	if !slices.Equal(first, s.Matches()) {
		t.Fatalf("expected identical matches, got %v then %v", first, s.Matches())
	}
}

func TestInputChangedSeesCommandsRegisteredLater(t *testing.T) {
	reg := command.NewRegistry(nil)
	s := New("s1", reg, nil)
	s.InputChanged("sp")
	if len(s.Matches()) != 0 {
		t.Fatalf("expected no matches yet")
	}
	_ = reg.Register(command.Spec{Name: "spawn", Handler: command.Action(func([]string) {})})
	s.InputChanged("s")
	if !slices.Equal(s.Matches(), []string{"spawn"}) {
		t.Fatalf("expected new command to be suggested, got %v", s.Matches())
	}
}

func TestTabCompleteRecomputesMatches(t *testing.T) {
	s, _ := newSession(t, "help", "hello", "hello-world")
	s.InputChanged("he")

	text, ok := s.TabComplete()
	if !ok || text != "hello " || s.Input() != "hello " {
		t.Fatalf("expected first sorted match plus space, got %q (%v)", text, ok)
	}
	if len(s.Matches()) != 0 {
		t.Fatalf("expected no matches for the completed text, got %v", s.Matches())
	}

	text, ok = s.TabComplete()
	if ok || text != "hello " {
		t.Fatalf("expected repeated tab to keep the completed text, got %q (%v)", text, ok)
	}
}

func TestTabCompleteWithoutMatches(t *testing.T) {
	s, _ := newSession(t, "help")
	s.InputChanged("zz")
	text, ok := s.TabComplete()
	if ok || text != "zz" {
		t.Fatalf("expected no change, got %q (%v)", text, ok)
	}
}

func TestSubmitAppendsHistoryAndExecutes(t *testing.T) {
	s, exec := newSession(t, "help")
	s.InputChanged("he")
	result, err := s.Submit(context.Background(), "help me")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Text != "ran help me" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !slices.Equal(exec.lines, []string{"help me"}) {
		t.Fatalf("expected one execution, got %v", exec.lines)
	}
	if !slices.Equal(s.History(), []string{"help me"}) {
		t.Fatalf("unexpected history: %v", s.History())
	}
	if s.HistoryIndex() != 1 || s.Browsing() {
		t.Fatalf("expected live edit after submit, index=%d", s.HistoryIndex())
	}
	if s.Input() != "" || len(s.Matches()) != 0 {
		t.Fatalf("expected cleared input and matches, got %q %v", s.Input(), s.Matches())
	}
}

func TestSubmitKeepsDuplicatesAndIgnoresBlank(t *testing.T) {
	s, exec := newSession(t)
	for _, line := range []string{"a", "a", "", "   ", "b"} {
		if _, err := s.Submit(context.Background(), line); err != nil {
			t.Fatalf("Submit %q: %v", line, err)
		}
	}
	if !slices.Equal(s.History(), []string{"a", "a", "b"}) {
		t.Fatalf("unexpected history: %v", s.History())
	}
	if len(exec.lines) != 3 {
		t.Fatalf("expected 3 executions, got %v", exec.lines)
	}
}

func TestHistoryPrevClampsAtOldest(t *testing.T) {
	s, _ := newSession(t)
	for _, line := range []string{"one", "two", "three"} {
		_, _ = s.Submit(context.Background(), line)
	}
	var text string
	for i := 0; i < 3+5; i++ {
		text, _ = s.HistoryPrev()
	}
	if text != "one" || s.HistoryIndex() != 0 {
		t.Fatalf("expected clamp at oldest, got %q index=%d", text, s.HistoryIndex())
	}
}

func TestHistoryNextRestoresPendingLine(t *testing.T) {
	s, _ := newSession(t)
	for _, line := range []string{"one", "two"} {
		_, _ = s.Submit(context.Background(), line)
	}
	s.InputChanged("draft")

	if text, _ := s.HistoryPrev(); text != "two" {
		t.Fatalf("expected newest entry, got %q", text)
	}
	if text, _ := s.HistoryPrev(); text != "one" {
		t.Fatalf("expected oldest entry, got %q", text)
	}
	if text, _ := s.HistoryNext(); text != "two" {
		t.Fatalf("expected forward step, got %q", text)
	}
	text, changed := s.HistoryNext()
	if !changed || text != "draft" {
		t.Fatalf("expected pending line restored, got %q (%v)", text, changed)
	}
	if s.Browsing() {
		t.Fatalf("expected live edit after restore")
	}

	for i := 0; i < 5; i++ {
		text, changed = s.HistoryNext()
	}
	if changed || text != "draft" || s.HistoryIndex() != 2 {
		t.Fatalf("expected clamp at live edit, got %q (%v) index=%d", text, changed, s.HistoryIndex())
	}
}

func TestHistoryOnEmptyHistory(t *testing.T) {
	s, _ := newSession(t)
	s.InputChanged("typed")
	if text, ok := s.HistoryPrev(); ok || text != "typed" {
		t.Fatalf("expected no-op prev, got %q (%v)", text, ok)
	}
	if text, ok := s.HistoryNext(); ok || text != "typed" {
		t.Fatalf("expected no-op next, got %q (%v)", text, ok)
	}
}

func TestResetKeepsHistory(t *testing.T) {
	s, _ := newSession(t, "help")
	_, _ = s.Submit(context.Background(), "x")
	s.InputChanged("he")
	_, _ = s.HistoryPrev()
	s.Reset()
	if s.Input() != "" || len(s.Matches()) != 0 || s.Browsing() {
		t.Fatalf("expected clean live line, got %q %v browsing=%v", s.Input(), s.Matches(), s.Browsing())
	}
	if len(s.History()) != 1 {
		t.Fatalf("expected history kept, got %v", s.History())
	}
}

func TestHistoryNavigationRefreshesMatches(t *testing.T) {
	s, _ := newSession(t, "help", "time-scale")
	_, _ = s.Submit(context.Background(), "time-scale 2")
	_, _ = s.Submit(context.Background(), "ti")
	s.InputChanged("h")
	if !slices.Equal(s.Matches(), []string{"help"}) {
		t.Fatalf("expected help for live input, got %v", s.Matches())
	}

	if text, _ := s.HistoryPrev(); text != "ti" {
		t.Fatalf("expected newest entry, got %q", text)
	}
	if !slices.Equal(s.Matches(), []string{"time-scale"}) {
		t.Fatalf("expected matches for recalled entry, got %v", s.Matches())
	}

	if text, _ := s.HistoryPrev(); text != "time-scale 2" {
		t.Fatalf("expected oldest entry, got %q", text)
	}
	if len(s.Matches()) != 0 {
		t.Fatalf("expected no matches for recalled command line, got %v", s.Matches())
	}
	if text, ok := s.TabComplete(); ok || text != "time-scale 2" {
		t.Fatalf("expected tab to keep the recalled line, got %q (%v)", text, ok)
	}

	if text, _ := s.HistoryNext(); text != "ti" {
		t.Fatalf("expected forward step, got %q", text)
	}
	if !slices.Equal(s.Matches(), []string{"time-scale"}) {
		t.Fatalf("expected matches after stepping forward, got %v", s.Matches())
	}

	if text, _ := s.HistoryNext(); text != "h" {
		t.Fatalf("expected pending line restored, got %q", text)
	}
	if !slices.Equal(s.Matches(), []string{"help"}) {
		t.Fatalf("expected matches for restored pending line, got %v", s.Matches())
	}
	if text, ok := s.TabComplete(); !ok || text != "help " {
		t.Fatalf("expected tab to complete restored line, got %q (%v)", text, ok)
	}
}

func TestHistoryRecallOfBlankPendingClearsMatches(t *testing.T) {
	s, _ := newSession(t, "help")
	_, _ = s.Submit(context.Background(), "he")
	if text, _ := s.HistoryPrev(); text != "he" {
		t.Fatalf("expected recalled entry, got %q", text)
	}
	if !slices.Equal(s.Matches(), []string{"help"}) {
		t.Fatalf("expected matches for recalled entry, got %v", s.Matches())
	}
	if text, _ := s.HistoryNext(); text != "" {
		t.Fatalf("expected empty pending line, got %q", text)
	}
	if len(s.Matches()) != 0 {
		t.Fatalf("expected matches cleared for empty input, got %v", s.Matches())
	}
}
