package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/maildraft/internal/model"
)

func TestParseEML_ReadsBackEMLContent(t *testing.T) {
	tests := []struct {
		name  string
		props model.DraftProperties
	}{
		{
			name: "html draft",
			props: model.DraftProperties{
				Subject: "Quarterly numbers",
				To:      model.AddressList{"a@x.com", "b@y.com"},
				Cc:      model.AddressList{"c@x.com"},
				IsHTML:  true,
				Body:    "<p>Hello <b>team</b></p>",
			},
		},
		{
			name: "plain draft",
			props: model.DraftProperties{
				Subject: "Lunch",
				To:      model.AddressList{"a@x.com"},
				Bcc:     model.AddressList{"boss@x.com"},
				Body:    "Noon?\nSame place.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := EMLContent(&tt.props).Text

			got, err := ParseEML(strings.NewReader(text))
			require.NoError(t, err)

			assert.Equal(t, tt.props.Subject, got.Subject)
			assert.Equal(t, tt.props.To, got.To)
			assert.Equal(t, tt.props.Cc, got.Cc)
			assert.Equal(t, tt.props.Bcc, got.Bcc)
			assert.Equal(t, tt.props.Body, got.Body)
			assert.Equal(t, IsHTML(&tt.props), IsHTML(got))
		})
	}
}

func TestParseEML_ClientWrittenMessage(t *testing.T) {
	raw := "From: Ann Example <ann@example.com>\r\n" +
		"To: Bob <bob@example.com>, carol@example.com\r\n" +
		"Subject: =?UTF-8?Q?Gr=C3=BC=C3=9Fe?=\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Hello Bob\r\n"

	got, err := ParseEML(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", got.From)
	assert.Equal(t, "Grüße", got.Subject)
	assert.Equal(t, model.AddressList{"bob@example.com", "carol@example.com"}, got.To)
	assert.Nil(t, got.Cc)
	assert.False(t, IsHTML(got))
	assert.Equal(t, "Hello Bob\r\n", got.Body)
}

func TestParseEML_UnparsableAddressesAreSplitAsWritten(t *testing.T) {
	raw := "To: team list,\n ops\n\nbody"

	got, err := ParseEML(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, model.AddressList{"team list", "ops"}, got.To)
	assert.Equal(t, "body", got.Body)
}
