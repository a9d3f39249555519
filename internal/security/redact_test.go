package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactArguments(t *testing.T) {
	args := map[string]any{
		"query":        "is:unread",
		"access_token": "ya29.secret",
		"page_token":   "CAE=",
		"options": map[string]any{
			"api_key": "k-123",
			"depth":   2,
		},
	}

	redacted := RedactArguments(args)

	assert.Equal(t, "is:unread", redacted["query"])
	assert.Equal(t, "***", redacted["access_token"])
	assert.Equal(t, "CAE=", redacted["page_token"], "pagination cursors are not secrets")
	nested := redacted["options"].(map[string]any)
	assert.Equal(t, "***", nested["api_key"])
	assert.Equal(t, 2, nested["depth"])

	// The input mapping is never mutated.
	assert.Equal(t, "ya29.secret", args["access_token"])
}

func TestRedactArgumentsNil(t *testing.T) {
	assert.Nil(t, RedactArguments(nil))
}
