package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitImagePayload(t *testing.T) {
	data, mime := SplitImagePayload("data:image/png;base64,iVBORw0KGgo=")
	assert.Equal(t, "iVBORw0KGgo=", data)
	assert.Equal(t, "image/png", mime)

	// Bare payloads pass through with the default mime type.
	data, mime = SplitImagePayload("/9j/4AAQSkZJRg==")
	assert.Equal(t, "/9j/4AAQSkZJRg==", data)
	assert.Equal(t, "image/jpeg", mime)

	// A data prefix without a comma is treated as a bare payload.
	data, mime = SplitImagePayload("data:image/png;base64")
	assert.Equal(t, "data:image/png;base64", data)
	assert.Equal(t, "image/jpeg", mime)

	// A malformed header falls back to the default mime type.
	data, mime = SplitImagePayload("data:;base64,AAAA")
	assert.Equal(t, "AAAA", data)
	assert.Equal(t, "image/jpeg", mime)
}
