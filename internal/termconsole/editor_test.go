package termconsole

import "testing"

func TestLineEditorEditing(t *testing.T) {
	var e lineEditor
	for _, r := range "time scale" {
		e.InsertRune(r)
	}
	e.MoveWordLeft()
	e.Backspace()
	e.InsertRune('-')
	if got := e.String(); got != "time-scale" {
		t.Fatalf("expected time-scale, got %q", got)
	}
	e.MoveEnd()
	e.InsertRune(' ')
	e.InsertRune('2')
	e.DeleteWordBackward()
	if got := e.String(); got != "time-scale " {
		t.Fatalf("expected trailing word removed, got %q", got)
	}
	e.MoveStart()
	e.Delete()
	if got := e.String(); got != "ime-scale " {
		t.Fatalf("expected first rune deleted, got %q", got)
	}
	e.MoveWordRight()
	e.KillLineEnd()
	if got := e.String(); got != "ime-scale" {
		t.Fatalf("expected kill to end, got %q", got)
	}
	e.MoveLeft()
	e.KillLineStart()
	if got := e.String(); got != "e" {
		t.Fatalf("expected kill to start, got %q", got)
	}
	e.Clear()
	if e.Len() != 0 || e.CursorColumn() != 0 {
		t.Fatalf("expected empty editor")
	}
}

func TestLineEditorCursorColumnUsesDisplayWidth(t *testing.T) {
	var e lineEditor
	e.SetString("界a")
	if got := e.CursorColumn(); got != 3 {
		t.Fatalf("expected width 3, got %d", got)
	}
	e.MoveLeft()
	if got := e.CursorColumn(); got != 2 {
		t.Fatalf("expected width 2, got %d", got)
	}
}
