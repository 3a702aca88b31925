// Package content turns an inbound message (text plus attachments) into
// the ordered content parts submitted to the model.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chasquibot/chasqui/internal/conversation"
	"github.com/chasquibot/chasqui/internal/twilio"
)

// User-facing instruction and placeholder strings. The bot speaks Spanish
// to its operator's audience; the model is told to match the user's language.
const (
	audioInstruction  = "Escucha este audio y responde apropiadamente."
	audioFailure      = "El usuario intentó enviar un audio pero no se pudo procesar."
	imageInstruction  = "Describe esta imagen y responde si el usuario pregunta algo sobre ella."
	imageFailure      = "El usuario envió una imagen que no se pudo procesar."
	unsupportedFormat = "El usuario envió un archivo de tipo %s que no puedo procesar."

	defaultAudioMIME = "audio/ogg"
)

// Fetcher retrieves attachment bytes; absence means the attachment could
// not be resolved and a textual placeholder goes to the model instead.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, bool)
}

// Assembler builds model content from inbound messages.
type Assembler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewAssembler creates an Assembler over the given media fetcher.
func NewAssembler(log *slog.Logger, fetcher Fetcher) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{
		fetcher: fetcher,
		logger:  log.With(slog.String("service", "content")),
	}
}

// Assemble produces the ordered part sequence for one inbound message:
// each attachment in arrival order (binary part followed by its
// instruction, or a placeholder when the fetch fails), then the message
// body as a final text part when present. An empty result means there is
// nothing to submit; the caller short-circuits without invoking the model.
func (a *Assembler) Assemble(ctx context.Context, body string, media []twilio.MediaItem) []conversation.Part {
	var parts []conversation.Part
	for _, item := range media {
		switch {
		case strings.HasPrefix(item.ContentType, "audio/"):
			parts = append(parts, a.audioParts(ctx, item)...)
		case strings.HasPrefix(item.ContentType, "image/"):
			parts = append(parts, a.imageParts(ctx, item)...)
		default:
			a.logger.Info("unsupported attachment", slog.String("content_type", item.ContentType))
			parts = append(parts, conversation.NewText(fmt.Sprintf(unsupportedFormat, item.ContentType)))
		}
	}
	if body != "" {
		parts = append(parts, conversation.NewText(body))
	}
	return parts
}

func (a *Assembler) audioParts(ctx context.Context, item twilio.MediaItem) []conversation.Part {
	data, ok := a.fetcher.Fetch(ctx, item.URL)
	if !ok {
		return []conversation.Part{conversation.NewText(audioFailure)}
	}
	mime := item.ContentType
	if mime == "" {
		mime = defaultAudioMIME
	}
	return []conversation.Part{
		conversation.NewBlob(mime, data),
		conversation.NewText(audioInstruction),
	}
}

func (a *Assembler) imageParts(ctx context.Context, item twilio.MediaItem) []conversation.Part {
	data, ok := a.fetcher.Fetch(ctx, item.URL)
	if !ok {
		return []conversation.Part{conversation.NewText(imageFailure)}
	}
	return []conversation.Part{
		conversation.NewBlob(item.ContentType, data),
		conversation.NewText(imageInstruction),
	}
}
