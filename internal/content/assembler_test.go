package content

import (
	"context"
	"log/slog"
	"testing"

	"github.com/chasquibot/chasqui/internal/conversation"
	"github.com/chasquibot/chasqui/internal/twilio"
)

// fakeFetcher maps URLs to payloads; unknown URLs fail the fetch.
type fakeFetcher struct {
	payloads map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, bool) {
	data, ok := f.payloads[url]
	return data, ok
}

func newTestAssembler(payloads map[string][]byte) *Assembler {
	return NewAssembler(slog.Default(), &fakeFetcher{payloads: payloads})
}

func TestAssembleTextOnly(t *testing.T) {
	t.Parallel()
	a := newTestAssembler(nil)
	parts := a.Assemble(context.Background(), "Hola", nil)
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
	if parts[0].Kind != conversation.PartText || parts[0].Text != "Hola" {
		t.Fatalf("unexpected part: %+v", parts[0])
	}
}

func TestAssembleEmpty(t *testing.T) {
	t.Parallel()
	a := newTestAssembler(nil)
	if parts := a.Assemble(context.Background(), "", nil); len(parts) != 0 {
		t.Fatalf("empty inbound should assemble to nothing, got %d parts", len(parts))
	}
}

func TestAssembleAudio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		item     twilio.MediaItem
		payloads map[string][]byte
		wantMIME string
		wantText string
		wantBlob bool
	}{
		{
			name:     "fetch succeeds",
			item:     twilio.MediaItem{URL: "https://api.example/m0", ContentType: "audio/ogg"},
			payloads: map[string][]byte{"https://api.example/m0": []byte("OggS")},
			wantMIME: "audio/ogg",
			wantText: audioInstruction,
			wantBlob: true,
		},
		{
			name:     "fetch fails",
			item:     twilio.MediaItem{URL: "https://api.example/m0", ContentType: "audio/ogg"},
			payloads: nil,
			wantText: audioFailure,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := newTestAssembler(tt.payloads)
			parts := a.Assemble(context.Background(), "", []twilio.MediaItem{tt.item})
			if tt.wantBlob {
				if len(parts) != 2 {
					t.Fatalf("parts = %d, want blob+instruction", len(parts))
				}
				if parts[0].Kind != conversation.PartBlob || parts[0].MIME != tt.wantMIME {
					t.Fatalf("unexpected blob part: %+v", parts[0])
				}
				if parts[1].Text != tt.wantText {
					t.Fatalf("instruction = %q, want %q", parts[1].Text, tt.wantText)
				}
				return
			}
			if len(parts) != 1 || parts[0].Kind != conversation.PartText {
				t.Fatalf("expected single text placeholder, got %+v", parts)
			}
			if parts[0].Text != tt.wantText {
				t.Fatalf("placeholder = %q, want %q", parts[0].Text, tt.wantText)
			}
		})
	}
}

func TestAssembleImage(t *testing.T) {
	t.Parallel()
	a := newTestAssembler(map[string][]byte{"https://api.example/img": {0xFF, 0xD8}})
	parts := a.Assemble(context.Background(), "", []twilio.MediaItem{
		{URL: "https://api.example/img", ContentType: "image/jpeg"},
	})
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if parts[0].Kind != conversation.PartBlob || parts[0].MIME != "image/jpeg" {
		t.Fatalf("unexpected blob: %+v", parts[0])
	}
	if parts[1].Text != imageInstruction {
		t.Fatalf("instruction = %q", parts[1].Text)
	}
}

func TestAssembleUnsupportedType(t *testing.T) {
	t.Parallel()
	a := newTestAssembler(nil)
	parts := a.Assemble(context.Background(), "", []twilio.MediaItem{
		{URL: "https://api.example/doc", ContentType: "application/pdf"},
	})
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
	want := "El usuario envió un archivo de tipo application/pdf que no puedo procesar."
	if parts[0].Text != want {
		t.Fatalf("placeholder = %q, want %q", parts[0].Text, want)
	}
}

func TestAssembleOrderPreserved(t *testing.T) {
	t.Parallel()
	a := newTestAssembler(map[string][]byte{
		"https://api.example/a": []byte("audio"),
		"https://api.example/b": []byte("image"),
	})
	parts := a.Assemble(context.Background(), "¿qué te parece?", []twilio.MediaItem{
		{URL: "https://api.example/a", ContentType: "audio/mpeg"},
		{URL: "https://api.example/missing", ContentType: "image/png"},
		{URL: "https://api.example/b", ContentType: "image/png"},
	})

	// audio blob + instruction, image placeholder, image blob + instruction, body.
	wantKinds := []conversation.PartKind{
		conversation.PartBlob, conversation.PartText,
		conversation.PartText,
		conversation.PartBlob, conversation.PartText,
		conversation.PartText,
	}
	if len(parts) != len(wantKinds) {
		t.Fatalf("parts = %d, want %d", len(parts), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if parts[i].Kind != kind {
			t.Fatalf("part %d kind = %s, want %s", i, parts[i].Kind, kind)
		}
	}
	if parts[len(parts)-1].Text != "¿qué te parece?" {
		t.Fatalf("body must come last, got %q", parts[len(parts)-1].Text)
	}
}
