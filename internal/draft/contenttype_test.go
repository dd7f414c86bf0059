package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/maildraft/internal/model"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"bool true", true, true},
		{"string true", "true", true},
		{"bool false", false, false},
		{"string false", "false", false},
		{"string yes", "yes", false},
		{"upper case TRUE", "TRUE", false},
		{"number one", 1, false},
		{"unset", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.DraftProperties{IsHTML: tt.value}
			assert.Equal(t, tt.want, IsHTML(p))
		})
	}

	assert.False(t, IsHTML(nil))
}

func TestContentType(t *testing.T) {
	html := &model.DraftProperties{IsHTML: "true"}
	plain := &model.DraftProperties{}

	assert.Equal(t, "text/html", ContentType(html))
	assert.Equal(t, "text/plain", ContentType(plain))
	assert.Equal(t, "text/html; charset=utf-8", FullContentType(html))
	assert.Equal(t, "text/plain; charset=utf-8", FullContentType(plain))
}
