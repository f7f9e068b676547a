package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRFC2047(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{
			name:    "ascii passes through",
			subject: "Order confirmation",
			want:    "Order confirmation",
		},
		{
			name:    "umlauts get encoded",
			subject: "Tilaus: ATHENS-työpöytä",
			want:    "=?UTF-8?b?VGlsYXVzOiBBVEhFTlMtdHnDtnDDtnl0w6Q=?=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeRFC2047(tt.subject))
		})
	}
}

func TestBuildRawMessage(t *testing.T) {
	msg := &EmailMessage{
		To:      []string{"a@example.com", "b@example.com"},
		Cc:      []string{"c@example.com"},
		Subject: "Order received",
		Body:    "We got your order.",
	}

	raw := buildRawMessage(msg)
	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)

	text := string(decoded)
	assert.Contains(t, text, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, text, "Cc: c@example.com\r\n")
	assert.NotContains(t, text, "Bcc:")
	assert.Contains(t, text, "Subject: Order received\r\n")
	assert.Contains(t, text, "Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(text, "\r\n\r\nWe got your order."))
}

func TestBuildRawMessageHTML(t *testing.T) {
	msg := &EmailMessage{
		To:      []string{"a@example.com"},
		Subject: "Hi",
		Body:    "<p>hello</p>",
		IsHTML:  true,
	}

	decoded, err := base64.URLEncoding.DecodeString(buildRawMessage(msg))
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Content-Type: text/html; charset=\"UTF-8\"\r\n")
}
