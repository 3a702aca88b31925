// Package twilio covers the transport edge: inbound webhook field parsing,
// authenticated media retrieval, and TwiML reply rendering.
package twilio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultMediaTimeout bounds a single media download.
const DefaultMediaTimeout = 30 * time.Second

// MediaClient fetches message attachments from Twilio's media endpoints
// using the account's basic-auth credentials.
type MediaClient struct {
	accountSID string
	authToken  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewMediaClient creates a MediaClient. Non-positive timeouts fall back
// to DefaultMediaTimeout.
func NewMediaClient(log *slog.Logger, accountSID, authToken string, timeout time.Duration) *MediaClient {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultMediaTimeout
	}
	return &MediaClient{
		accountSID: accountSID,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.With(slog.String("service", "twilio_media")),
	}
}

// Fetch downloads the attachment at url. Any transport failure or
// non-200 status yields (nil, false); the caller always has a textual
// fallback to offer the model, so absence is not an error here.
func (c *MediaClient) Fetch(ctx context.Context, url string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("build media request failed", slog.Any("error", err))
		return nil, false
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("media download failed", slog.String("url", url), slog.Any("error", err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("media download status", slog.String("url", url), slog.Int("status", resp.StatusCode))
		return nil, false
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("media read failed", slog.String("url", url), slog.Any("error", err))
		return nil, false
	}
	return data, true
}
