package twilio

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MediaItem references one inbound attachment by URL and declared type.
type MediaItem struct {
	URL         string
	ContentType string
}

// InboundMessage is a parsed Twilio messaging webhook request.
type InboundMessage struct {
	From  string
	Body  string
	Media []MediaItem
}

// ParseInbound reads the form-encoded webhook fields: sender, body text,
// and the per-attachment URL/content-type pairs announced by NumMedia.
func ParseInbound(form url.Values) InboundMessage {
	msg := InboundMessage{
		From: strings.TrimSpace(form.Get("From")),
		Body: strings.TrimSpace(form.Get("Body")),
	}
	if msg.From == "" {
		msg.From = "unknown"
	}
	numMedia, err := strconv.Atoi(strings.TrimSpace(form.Get("NumMedia")))
	if err != nil || numMedia <= 0 {
		return msg
	}
	msg.Media = make([]MediaItem, 0, numMedia)
	for i := 0; i < numMedia; i++ {
		item := MediaItem{
			URL:         strings.TrimSpace(form.Get(fmt.Sprintf("MediaUrl%d", i))),
			ContentType: strings.TrimSpace(form.Get(fmt.Sprintf("MediaContentType%d", i))),
		}
		if item.URL == "" {
			continue
		}
		msg.Media = append(msg.Media, item)
	}
	return msg
}

// IsEmpty reports whether the message carries neither text nor media.
func (m InboundMessage) IsEmpty() bool {
	return m.Body == "" && len(m.Media) == 0
}
