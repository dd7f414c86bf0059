package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/maildraft/internal/model"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "mailto", d.App)
	assert.Equal(t, "Open with", d.ChooserHeader)
	assert.Equal(t, false, d.IsHTML)
	assert.Empty(t, d.To)
	assert.NotNil(t, d.To)
}

func TestSettings_MergeNil(t *testing.T) {
	s := NewSettings(model.AppConfig{})
	got := s.Merge(nil)

	assert.Equal(t, "mailto", got.App)
	assert.Equal(t, false, got.IsHTML)
	assert.Equal(t, false, got.EMLFile)
	assert.Equal(t, model.AddressList{}, got.To)
	assert.Equal(t, []string{}, got.Attachments)
}

func TestSettings_MergeKeepsCallerValues(t *testing.T) {
	s := NewSettings(model.AppConfig{Defaults: model.DefaultsConfig{
		From:    "me@x.com",
		Subject: "Default subject",
		IsHTML:  true,
	}})

	got := s.Merge(&model.DraftProperties{
		Subject: "Mine",
		To:      model.AddressList{"a@x.com"},
		IsHTML:  "yes",
	})

	assert.Equal(t, "me@x.com", got.From)
	assert.Equal(t, "Mine", got.Subject)
	assert.Equal(t, model.AddressList{"a@x.com"}, got.To)
	// Only true or "true" count, so "yes" is false even over a true default.
	assert.Equal(t, false, got.IsHTML)

	got = s.Merge(&model.DraftProperties{})
	assert.Equal(t, true, got.IsHTML)
}

func TestSettings_Aliases(t *testing.T) {
	s := NewSettings(model.AppConfig{Aliases: map[string]string{
		"gmail": "googlegmail://co",
	}})
	s.AddAlias("Work", "ms-outlook://compose")
	s.AddAlias("  ", "ignored")

	assert.Equal(t, "googlegmail://co", s.Resolve("gmail"))
	assert.Equal(t, "ms-outlook://compose", s.Resolve("WORK"))
	assert.Equal(t, "thunderbird", s.Resolve("thunderbird"))
	assert.Equal(t, "mailto", s.Resolve(""))
	assert.Len(t, s.Aliases(), 2)

	got := s.Merge(&model.DraftProperties{App: "work"})
	assert.Equal(t, "ms-outlook://compose", got.App)
}
