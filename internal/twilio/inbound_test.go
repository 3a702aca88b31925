package twilio

import (
	"net/url"
	"testing"
)

func TestParseInbound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		form      url.Values
		wantFrom  string
		wantBody  string
		wantMedia int
	}{
		{
			name: "text only",
			form: url.Values{
				"From": {"whatsapp:+34612345678"},
				"Body": {"  Hola  "},
			},
			wantFrom: "whatsapp:+34612345678",
			wantBody: "Hola",
		},
		{
			name:     "missing sender",
			form:     url.Values{"Body": {"hey"}},
			wantFrom: "unknown",
			wantBody: "hey",
		},
		{
			name: "media items",
			form: url.Values{
				"From":              {"whatsapp:+34612345678"},
				"NumMedia":          {"2"},
				"MediaUrl0":         {"https://api.twilio.example/m0"},
				"MediaContentType0": {"audio/ogg"},
				"MediaUrl1":         {"https://api.twilio.example/m1"},
				"MediaContentType1": {"image/jpeg"},
			},
			wantFrom:  "whatsapp:+34612345678",
			wantMedia: 2,
		},
		{
			name: "bogus media count",
			form: url.Values{
				"From":     {"whatsapp:+34612345678"},
				"Body":     {"hola"},
				"NumMedia": {"many"},
			},
			wantFrom: "whatsapp:+34612345678",
			wantBody: "hola",
		},
		{
			name: "announced media without url is skipped",
			form: url.Values{
				"From":              {"whatsapp:+34612345678"},
				"NumMedia":          {"2"},
				"MediaUrl0":         {"https://api.twilio.example/m0"},
				"MediaContentType0": {"audio/ogg"},
			},
			wantFrom:  "whatsapp:+34612345678",
			wantMedia: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseInbound(tt.form)
			if got.From != tt.wantFrom {
				t.Fatalf("From = %q, want %q", got.From, tt.wantFrom)
			}
			if got.Body != tt.wantBody {
				t.Fatalf("Body = %q, want %q", got.Body, tt.wantBody)
			}
			if len(got.Media) != tt.wantMedia {
				t.Fatalf("media = %d, want %d", len(got.Media), tt.wantMedia)
			}
		})
	}
}

func TestInboundIsEmpty(t *testing.T) {
	t.Parallel()
	if !(InboundMessage{From: "u"}).IsEmpty() {
		t.Fatalf("no body and no media should be empty")
	}
	if (InboundMessage{From: "u", Body: "hola"}).IsEmpty() {
		t.Fatalf("body present should not be empty")
	}
	if (InboundMessage{From: "u", Media: []MediaItem{{URL: "x"}}}).IsEmpty() {
		t.Fatalf("media present should not be empty")
	}
}
