package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistry = `
bridge:
  service: gmail-bridge
  version: "1.0.0"
  namespace: gmail
capabilities:
  - name: gmail_search_messages
    title: Search Gmail Messages
    schema: GmailSearchInput
    aliases: [search_emails]
    timeout: 90s
    read_only: true
    input_schema:
      type: object
      required: [query]
      additionalProperties: false
      properties:
        query:
          type: string
          minLength: 1
          maxLength: 500
        max_results:
          type: integer
          minimum: 1
          maximum: 100
        page_token:
          type: string
        response_format:
          type: string
          enum: [markdown, json]
  - name: gmail_list_labels
    title: List Gmail Labels
    schema: ListLabelsInput
    aliases: [list_labels]
    read_only: true
`

func mustLoad(t *testing.T) *Registry {
	t.Helper()
	reg, err := Load([]byte(testRegistry))
	require.NoError(t, err)
	return reg
}

func TestResolveCanonicalAndAliases(t *testing.T) {
	reg := mustLoad(t)

	for _, identifier := range []string{
		"gmail_search_messages",
		"search_emails",
		"gmail/search_emails",
		"gmail/gmail_search_messages",
	} {
		cap, err := reg.Resolve(identifier)
		require.NoError(t, err, identifier)
		assert.Equal(t, "gmail_search_messages", cap.Name, identifier)
	}
}

func TestResolveUnknownCarriesBothForms(t *testing.T) {
	reg := mustLoad(t)

	_, err := reg.Resolve("gmail/does_not_exist")
	require.Error(t, err)
	nf, ok := err.(*NotFoundError)
	require.True(t, ok)
	assert.Equal(t, "gmail/does_not_exist", nf.Identifier)
	assert.Equal(t, "does_not_exist", nf.Stripped)
	assert.Contains(t, nf.Error(), "Unknown tool: gmail/does_not_exist")
}

func TestResolveIsCaseSensitive(t *testing.T) {
	reg := mustLoad(t)

	_, err := reg.Resolve("Search_Emails")
	require.Error(t, err)
}

func TestCapabilityMetadata(t *testing.T) {
	reg := mustLoad(t)

	cap, err := reg.Resolve("search_emails")
	require.NoError(t, err)
	assert.Equal(t, "GmailSearchInput", cap.Schema)
	assert.Equal(t, 90*time.Second, cap.Timeout)
	assert.True(t, cap.ReadOnly)

	labels, err := reg.Resolve("list_labels")
	require.NoError(t, err)
	assert.Zero(t, labels.Timeout)
}

func TestLoadRejectsDuplicateAlias(t *testing.T) {
	_, err := Load([]byte(`
bridge:
  service: gmail-bridge
capabilities:
  - name: gmail_get_message
    aliases: [get_email]
  - name: gmail_get_thread
    aliases: [get_email]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get_email")
}

func TestLoadRejectsMissingName(t *testing.T) {
	_, err := Load([]byte(`
bridge:
  service: gmail-bridge
capabilities:
  - title: nameless
`))
	require.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load([]byte(`
bridge:
  service: gmail-bridge
capabilities:
  - name: gmail_list_labels
    not_a_field: true
`))
	require.Error(t, err)
}

func TestValidateArguments(t *testing.T) {
	reg := mustLoad(t)
	cap, err := reg.Resolve("search_emails")
	require.NoError(t, err)

	require.NoError(t, cap.ValidateArguments(map[string]any{
		"query":       "is:unread",
		"max_results": 5,
	}))

	err = cap.ValidateArguments(map[string]any{"max_results": 5})
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "gmail_search_messages", verr.Capability)
	assert.NotEmpty(t, verr.Violations)

	err = cap.ValidateArguments(map[string]any{"query": "x", "max_results": 500})
	require.Error(t, err)
}

func TestValidateArgumentsWithoutSchema(t *testing.T) {
	reg := mustLoad(t)
	cap, err := reg.Resolve("list_labels")
	require.NoError(t, err)

	assert.NoError(t, cap.ValidateArguments(map[string]any{"anything": "goes"}))
	assert.NoError(t, cap.ValidateArguments(nil))
}
