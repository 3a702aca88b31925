package twilio

import (
	"encoding/xml"
	"unicode/utf8"
)

// DefaultMaxReplyLength caps outbound message text; WhatsApp rejects
// bodies past 1600 characters, so replies are cut a little short of that.
const DefaultMaxReplyLength = 1500

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

type messagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// RenderMessage produces a TwiML messaging response carrying one reply.
func RenderMessage(text string) string {
	doc, err := xml.Marshal(messagingResponse{Message: text})
	if err != nil {
		// Marshal of a plain string cannot fail; keep the transport contract anyway.
		return xmlHeader + "<Response></Response>"
	}
	return xmlHeader + string(doc)
}

// TruncateReply bounds reply text to max bytes, replacing the tail with
// an ellipsis marker when the cut happens. The result is exactly max
// bytes long unless a rune boundary forces it slightly shorter.
// Non-positive max falls back to DefaultMaxReplyLength.
func TruncateReply(text string, max int) string {
	if max <= 0 {
		max = DefaultMaxReplyLength
	}
	if len(text) <= max {
		return text
	}
	const marker = "..."
	limit := max - len(marker)
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + marker
}
