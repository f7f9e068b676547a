package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// HeaderValue returns the value of the named header from a message payload,
// or an empty string if the header is not present. Header names are matched
// case-insensitively.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// MessageBody extracts the plain-text body from a message, walking nested
// multipart structures. Returns an empty string when no text/plain part
// carries data.
func MessageBody(msg *gmail.Message) (string, error) {
	if msg == nil || msg.Payload == nil {
		return "", nil
	}
	return partBody(msg.Payload)
}

// partBody resolves the text content of a MIME part tree. A part with body
// data wins; otherwise the first text/plain leaf is used, recursing into
// multipart/alternative containers the way Gmail nests reply chains.
func partBody(part *gmail.MessagePart) (string, error) {
	if part.Body != nil && part.Body.Data != "" && !strings.HasPrefix(part.MimeType, "multipart/") {
		return decodeBody(part.Body.Data)
	}

	for _, sub := range part.Parts {
		switch {
		case sub.MimeType == "text/plain":
			if sub.Body != nil && sub.Body.Data != "" {
				return decodeBody(sub.Body.Data)
			}
		case strings.HasPrefix(sub.MimeType, "multipart/"):
			body, err := partBody(sub)
			if err != nil {
				return "", err
			}
			if body != "" {
				return body, nil
			}
		}
	}

	return "", nil
}

// decodeBody decodes base64url-encoded body data (Gmail API uses RFC 4648
// base64url encoding), falling back to standard base64.
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode message body: %w", err)
		}
	}
	return string(decoded), nil
}
