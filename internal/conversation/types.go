// Package conversation holds per-user chat history: the content parts that
// make up a turn, the turn roles, and a bounded in-memory store.
package conversation

// Role attributes a turn to one side of the conversation.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// PartKind identifies the variant of a content part.
type PartKind string

const (
	PartText PartKind = "text"
	PartBlob PartKind = "blob"
)

// Part is a single unit of submitted content: either plain text or a
// MIME-typed binary payload. Order within a turn is significant; binary
// parts are expected to precede their instruction text.
type Part struct {
	Kind PartKind
	Text string
	MIME string
	Data []byte
}

// NewText builds a text part.
func NewText(text string) Part {
	return Part{Kind: PartText, Text: text}
}

// NewBlob builds a binary part with its MIME type.
func NewBlob(mime string, data []byte) Part {
	return Part{Kind: PartBlob, MIME: mime, Data: data}
}

// Turn is one exchange unit: a role plus its ordered content parts.
type Turn struct {
	Role  Role
	Parts []Part
}
