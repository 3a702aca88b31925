// Package handlers contains the HTTP endpoints served by chasqui.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chasquibot/chasqui/internal/content"
	"github.com/chasquibot/chasqui/internal/respond"
	"github.com/chasquibot/chasqui/internal/twilio"
)

// Replies for the two paths that never reach the model.
const (
	emptyInboundReply = "🤔 No pude entender eso. Envíame un texto o una nota de voz."
	apologyReply      = "⚠️ Algo salió mal. Por favor, intenta de nuevo."
)

// WebhookHandler receives Twilio messaging webhooks, drives content
// assembly and the responder, and answers with TwiML.
type WebhookHandler struct {
	assembler *content.Assembler
	responder *respond.Responder
	replyMax  int
	logger    *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler. replyMax caps outbound
// reply length; non-positive values use the transport default.
func NewWebhookHandler(log *slog.Logger, assembler *content.Assembler, responder *respond.Responder, replyMax int) *WebhookHandler {
	return &WebhookHandler{
		assembler: assembler,
		responder: responder,
		replyMax:  replyMax,
		logger:    log.With(slog.String("handler", "webhook")),
	}
}

// Register registers the webhook route.
func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST("/webhook", h.Receive)
}

// Receive handles one inbound message. Every path, including panics from
// deeper layers, terminates in a 200 TwiML reply: the transport retries
// on errors and the user would otherwise see nothing at all.
func (h *WebhookHandler) Receive(c echo.Context) error {
	reply := h.buildReply(c)
	return c.XMLBlob(http.StatusOK, []byte(twilio.RenderMessage(reply)))
}

func (h *WebhookHandler) buildReply(c echo.Context) (reply string) {
	requestID := uuid.NewString()
	log := h.logger.With(slog.String("request_id", requestID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("webhook panic", slog.Any("panic", r))
			reply = apologyReply
		}
	}()

	form, err := c.FormParams()
	if err != nil {
		log.Error("parse form failed", slog.Any("error", err))
		return apologyReply
	}
	msg := twilio.ParseInbound(form)
	log.Info("inbound received",
		slog.String("from", msg.From),
		slog.Int("media", len(msg.Media)),
		slog.Bool("has_body", msg.Body != ""),
	)

	ctx := c.Request().Context()
	parts := h.assembler.Assemble(ctx, msg.Body, msg.Media)
	if len(parts) == 0 {
		return emptyInboundReply
	}

	text, err := h.responder.Respond(ctx, msg.From, parts)
	if err != nil {
		return respond.UserMessage(err)
	}
	return twilio.TruncateReply(text, h.replyMax)
}
