package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taddiemason/Gmail-MCP-Server/internal/registry"
)

func TestDefaultRegistryLoads(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	reg, err := registry.Load(data)
	require.NoError(t, err)
	assert.Equal(t, "gmail-bridge", reg.Service())
	assert.Len(t, reg.Capabilities(), 13)
}

func TestDefaultRegistryCoversWorkerSurface(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)
	reg, err := registry.Load(data)
	require.NoError(t, err)

	// Every canonical name the worker runtime exposes must resolve; an
	// omission here is indistinguishable from the capability not existing.
	canonical := []string{
		"gmail_search_messages",
		"gmail_summarize_emails",
		"gmail_get_message",
		"gmail_get_thread",
		"gmail_get_attachment_text",
		"gmail_send_message",
		"gmail_create_draft",
		"gmail_list_drafts",
		"gmail_delete_draft",
		"gmail_list_labels",
		"gmail_create_label",
		"gmail_modify_message_labels",
		"gmail_mark_message_read",
	}
	for _, name := range canonical {
		cap, err := reg.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, cap.Name)
		assert.NotEmpty(t, cap.Schema, name)
	}

	// Caller-facing shim aliases.
	aliases := map[string]string{
		"search_emails":       "gmail_search_messages",
		"summarize_emails":    "gmail_summarize_emails",
		"get_email":           "gmail_get_message",
		"get_thread":          "gmail_get_thread",
		"get_attachment_text": "gmail_get_attachment_text",
		"send_email":          "gmail_send_message",
		"create_draft":        "gmail_create_draft",
		"list_drafts":         "gmail_list_drafts",
		"delete_draft":        "gmail_delete_draft",
		"list_labels":         "gmail_list_labels",
		"create_label":        "gmail_create_label",
		"modify_labels":       "gmail_modify_message_labels",
		"mark_read":           "gmail_mark_message_read",
	}
	for alias, want := range aliases {
		cap, err := reg.Resolve(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, cap.Name, alias)
	}
}
