package notion

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestRichTextTruncatesOnRuneBoundary(t *testing.T) {
	// Multi-byte runes placed so a byte-based cut would land mid-rune.
	long := strings.Repeat("é", maxRichTextLen+50)

	rt := richText(long)
	if len(rt) != 1 {
		t.Fatalf("richText returned %d runs, want 1", len(rt))
	}
	got := rt[0].Text.Content
	if !utf8.ValidString(got) {
		t.Error("truncated content is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != maxRichTextLen {
		t.Errorf("truncated content has %d runes, want %d", n, maxRichTextLen)
	}
}

func TestRichTextShortTextUntouched(t *testing.T) {
	rt := richText("binary search trees")
	if got := rt[0].Text.Content; got != "binary search trees" {
		t.Errorf("content = %q, want input unchanged", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{75 * time.Second, "1:15"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 5*time.Second, "1:00:05"},
		{2*time.Hour + 34*time.Minute + 56*time.Second, "2:34:56"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.d); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
