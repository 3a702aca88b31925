package gemini

// Tier selects which configured model a generation request targets.
// Selection is decided per call; the fallback tier is only used after a
// quota-class failure on the primary.
type Tier int

const (
	TierPrimary Tier = iota
	TierFallback
)

// String returns the tier name for logging.
func (t Tier) String() string {
	if t == TierFallback {
		return "fallback"
	}
	return "primary"
}

// Tiers lists the tiers in submission order.
var Tiers = []Tier{TierPrimary, TierFallback}

// --- wire types (Generative Language API, v1beta generateContent) ---

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inlineData,omitempty"`
}

type wireInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	SystemInstruction *wireContent  `json:"systemInstruction,omitempty"`
	Contents          []wireContent `json:"contents"`
}

type wireResponse struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
}

type wireError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
