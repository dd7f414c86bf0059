// Package log writes leveled, colored console log lines.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	debugOn bool
)

var (
	infoBadge  = color.New(color.FgWhite, color.BgGreen).SprintFunc()
	warnBadge  = color.New(color.FgBlack, color.BgYellow).SprintFunc()
	errorBadge = color.New(color.FgRed).SprintFunc()
	debugBadge = color.New(color.FgCyan).SprintFunc()
)

// SetOutput redirects log output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetDebug enables or disables Debug and Dump output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugOn = enabled
}

// WithRequestID adds request ID to context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

func formatLog(requestID string, format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	if requestID != "" {
		return fmt.Sprintf("[req_id=%s] %s", requestID, msg)
	}
	return msg
}

func write(badge string, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", badge, msg)
}

// Info log information
func Info(format string, a ...interface{}) {
	write(infoBadge("[INFO] "), formatLog("", format, a...))
}

// InfoWithContext logs information with the request ID from ctx, if any.
func InfoWithContext(ctx context.Context, format string, a ...interface{}) {
	write(infoBadge("[INFO] "), formatLog(getRequestID(ctx), format, a...))
}

// Warn log warning
func Warn(format string, a ...interface{}) {
	write(warnBadge("[WARN] "), formatLog("", format, a...))
}

// WarnWithContext logs a warning with the request ID from ctx, if any.
func WarnWithContext(ctx context.Context, format string, a ...interface{}) {
	write(warnBadge("[WARN] "), formatLog(getRequestID(ctx), format, a...))
}

// Error log error
func Error(format string, a ...interface{}) {
	write(errorBadge("[Error]"), formatLog("", format, a...))
}

// ErrorWithContext logs an error with the request ID from ctx, if any.
func ErrorWithContext(ctx context.Context, format string, a ...interface{}) {
	write(errorBadge("[Error]"), formatLog(getRequestID(ctx), format, a...))
}

// Debug logs only when debug output is enabled.
func Debug(format string, a ...interface{}) {
	if !debugEnabled() {
		return
	}
	write(debugBadge("[DEBUG]"), formatLog("", format, a...))
}

// Dump pretty-prints values when debug output is enabled.
func Dump(label string, a ...interface{}) {
	if !debugEnabled() {
		return
	}
	write(debugBadge("[DEBUG]"), label+"\n"+spew.Sdump(a...))
}

func debugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugOn
}
