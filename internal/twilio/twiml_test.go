package twilio

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderMessage(t *testing.T) {
	t.Parallel()
	got := RenderMessage("Hola & adiós <3")
	if !strings.HasPrefix(got, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing XML header: %q", got)
	}
	if !strings.Contains(got, "<Response><Message>") || !strings.Contains(got, "</Message></Response>") {
		t.Fatalf("unexpected document shape: %q", got)
	}
	// Reserved characters must be escaped, not emitted raw.
	if strings.Contains(got, "& adiós") || strings.Contains(got, "<3") {
		t.Fatalf("unescaped content: %q", got)
	}
}

func TestTruncateReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		max     int
		wantLen int
		cut     bool
	}{
		{
			name:    "short text untouched",
			text:    "hola",
			max:     1500,
			wantLen: 4,
		},
		{
			name:    "exact length untouched",
			text:    strings.Repeat("a", 1500),
			max:     1500,
			wantLen: 1500,
		},
		{
			name:    "long text cut to cap with marker",
			text:    strings.Repeat("a", 2000),
			max:     1500,
			wantLen: 1500,
			cut:     true,
		},
		{
			name:    "non-positive max uses default",
			text:    strings.Repeat("a", 2000),
			max:     0,
			wantLen: DefaultMaxReplyLength,
			cut:     true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TruncateReply(tt.text, tt.max)
			if len(got) != tt.wantLen {
				t.Fatalf("length = %d, want %d", len(got), tt.wantLen)
			}
			if tt.cut && !strings.HasSuffix(got, "...") {
				t.Fatalf("truncated reply must end with ellipsis marker: %q", got[len(got)-10:])
			}
		})
	}
}

func TestTruncateReplyRuneBoundary(t *testing.T) {
	t.Parallel()
	// Multi-byte runes across the cut point must not be split.
	text := strings.Repeat("ñ", 1200) // 2400 bytes
	got := TruncateReply(text, 1500)
	if len(got) > 1500 {
		t.Fatalf("length = %d, want <= 1500", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing marker")
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune")
	}
}
