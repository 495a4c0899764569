package moderation

import "strings"

const defaultImageMIME = "image/jpeg"

// SplitImagePayload strips an optional data-URI header
// ("data:<mime>;base64,") from an encoded image and returns the bare
// base64 payload with its mime type. Payloads without a header pass
// through unchanged with the default mime type; validating the base64
// itself is the caller's responsibility.
func SplitImagePayload(encoded string) (data, mimeType string) {
	if !strings.HasPrefix(encoded, "data:") {
		return encoded, defaultImageMIME
	}

	rest := strings.TrimPrefix(encoded, "data:")
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return encoded, defaultImageMIME
	}

	mimeType = strings.TrimSuffix(header, ";base64")
	if !strings.Contains(mimeType, "/") {
		mimeType = defaultImageMIME
	}
	return payload, mimeType
}
