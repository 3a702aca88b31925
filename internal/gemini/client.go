// Package gemini is a minimal client for the Google Generative Language
// API generateContent endpoint, with a two-tier model configuration and a
// quota-aware error taxonomy.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chasquibot/chasqui/internal/conversation"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// SystemInstruction is the fixed persona preamble sent with every request.
const SystemInstruction = `Eres un asistente amigable y útil en WhatsApp.
Responde de forma natural, concisa y en el mismo idioma que te escriban.
Si te envían un audio, escúchalo y responde apropiadamente.
Mantén las respuestas breves ya que es una conversación por chat.`

// Client submits conversation turns to the Generative Language API.
type Client struct {
	apiKey        string
	baseURL       string
	primaryModel  string
	fallbackModel string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a Client. The timeout bounds each generateContent call;
// non-positive values default to 60 seconds.
func NewClient(log *slog.Logger, apiKey, baseURL, primaryModel, fallbackModel string, timeout time.Duration) *Client {
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:        apiKey,
		baseURL:       baseURL,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        log.With(slog.String("service", "gemini")),
	}
}

// Model returns the configured model name for a tier.
func (c *Client) Model(tier Tier) string {
	if tier == TierFallback {
		return c.fallbackModel
	}
	return c.primaryModel
}

// Generate submits the live parts as a user message, seeded with the prior
// history and the fixed system instruction, against the tier's model.
// It returns the model's reply text.
func (c *Client) Generate(ctx context.Context, tier Tier, history []conversation.Turn, live []conversation.Part) (string, error) {
	model := c.Model(tier)
	payload := wireRequest{
		SystemInstruction: &wireContent{Parts: []wirePart{{Text: SystemInstruction}}},
		Contents:          make([]wireContent, 0, len(history)+1),
	}
	for _, turn := range history {
		payload.Contents = append(payload.Contents, encodeTurn(turn))
	}
	payload.Contents = append(payload.Contents, wireContent{
		Role:  string(conversation.RoleUser),
		Parts: encodeParts(live),
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", model, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeAPIError(resp.StatusCode, respBody)
	}

	var parsed wireResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	text := candidateText(parsed)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model %s returned no text candidates", model)
	}
	return text, nil
}

func decodeAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
	var parsed wireError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Status = parsed.Error.Status
		apiErr.Message = parsed.Error.Message
		if parsed.Error.Code != 0 {
			apiErr.StatusCode = parsed.Error.Code
		}
	}
	return apiErr
}

func candidateText(resp wireResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		// Only the first candidate is used.
		break
	}
	return sb.String()
}

func encodeTurn(turn conversation.Turn) wireContent {
	return wireContent{
		Role:  string(turn.Role),
		Parts: encodeParts(turn.Parts),
	}
}

func encodeParts(parts []conversation.Part) []wirePart {
	out := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case conversation.PartBlob:
			out = append(out, wirePart{InlineData: &wireInlineData{
				MIMEType: p.MIME,
				Data:     base64.StdEncoding.EncodeToString(p.Data),
			}})
		default:
			out = append(out, wirePart{Text: p.Text})
		}
	}
	return out
}
