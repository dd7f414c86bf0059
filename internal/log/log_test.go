package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetDebug(false)
		color.NoColor = noColor
	})
	return &buf
}

func TestLevels(t *testing.T) {
	buf := captureOutput(t)

	Info("opened %s", "mailto:a@x.com")
	Warn("slow launcher")
	Error("launch failed: %v", "denied")

	out := buf.String()
	assert.Contains(t, out, "[INFO]  opened mailto:a@x.com\n")
	assert.Contains(t, out, "[WARN]  slow launcher\n")
	assert.Contains(t, out, "[Error] launch failed: denied\n")
}

func TestWithContext(t *testing.T) {
	buf := captureOutput(t)

	ctx := WithRequestID(context.Background(), "req-1")
	InfoWithContext(ctx, "handled %d", 1)
	ErrorWithContext(context.Background(), "no id")

	assert.Contains(t, buf.String(), "[req_id=req-1] handled 1")
	assert.Contains(t, buf.String(), "[Error] no id")
}

func TestDebugIsOptIn(t *testing.T) {
	buf := captureOutput(t)

	Debug("hidden")
	Dump("hidden", struct{ A int }{1})
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug("shown")
	Dump("props", struct{ Subject string }{"Hi"})
	assert.Contains(t, buf.String(), "[DEBUG] shown")
	assert.Contains(t, buf.String(), `Subject: (string) (len=2) "Hi"`)
}
