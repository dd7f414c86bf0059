package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftProperties_UnmarshalJSON(t *testing.T) {
	raw := `{
		"app": "gmail",
		"subject": "Hi",
		"body": ["line one", "line two"],
		"to": "a@x.com",
		"cc": ["b@x.com", "c@x.com"],
		"bcc": null,
		"isHtml": "true",
		"attachments": ["file:///tmp/a.pdf"]
	}`

	var p DraftProperties
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "gmail", p.App)
	assert.Equal(t, "Hi", p.Subject)
	assert.Equal(t, "line one\nline two", p.Body)
	assert.Equal(t, AddressList{"a@x.com"}, p.To)
	assert.Equal(t, AddressList{"b@x.com", "c@x.com"}, p.Cc)
	assert.Nil(t, p.Bcc)
	assert.True(t, IsTrue(p.IsHTML))
	assert.Equal(t, []string{"file:///tmp/a.pdf"}, p.Attachments)
}

func TestDraftProperties_UnmarshalJSON_StringBody(t *testing.T) {
	var p DraftProperties
	require.NoError(t, json.Unmarshal([]byte(`{"body":"single","isHtml":true}`), &p))

	assert.Equal(t, "single", p.Body)
	assert.True(t, IsTrue(p.IsHTML))
}

func TestDraftProperties_UnmarshalJSON_Invalid(t *testing.T) {
	var p DraftProperties
	assert.Error(t, json.Unmarshal([]byte(`{"to": 42}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"body": {"x": 1}}`), &p))
}

func TestIsTrue(t *testing.T) {
	assert.True(t, IsTrue(true))
	assert.True(t, IsTrue("true"))

	for _, v := range []any{false, "false", "yes", "True", 1, 1.0, nil, []string{"true"}} {
		assert.False(t, IsTrue(v), "value %#v", v)
	}
}

func TestAddressList_Join(t *testing.T) {
	assert.Equal(t, "a,b", AddressList{"a", "b"}.Join(","))
	assert.Equal(t, "", AddressList(nil).Join(","))
}
