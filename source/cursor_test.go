package source

import "testing"

func TestCursorAdvanceTracksLineColumn(t *testing.T) {
	c := NewCursor([]byte("ab\ncd"))
	c.Advance(2)
	if c.Line() != 1 || c.Column() != 3 {
		t.Fatalf("after advancing 2: line=%d col=%d", c.Line(), c.Column())
	}
	c.Advance(1) // consumes the newline
	if c.Line() != 2 || c.Column() != 1 {
		t.Fatalf("after consuming newline: line=%d col=%d", c.Line(), c.Column())
	}
	if c.IsFinished() {
		t.Fatal("should not be finished yet")
	}
	c.Advance(2)
	if !c.IsFinished() {
		t.Fatal("should be finished")
	}
}

func TestCursorContextWindow(t *testing.T) {
	c := NewCursor([]byte("0123456789"))
	c.Advance(3)
	if got := c.ContextWindow(4); got != "3456" {
		t.Fatalf("ContextWindow(4) = %q", got)
	}
}
