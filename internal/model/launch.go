package model

import "time"

// LaunchMethod identifies how a draft was handed to a mail client.
type LaunchMethod string

const (
	LaunchMethodMailto LaunchMethod = "mailto"
	LaunchMethodEML    LaunchMethod = "eml"
	LaunchMethodIMAP   LaunchMethod = "imap"
)

// Launch is a history record of a draft that was opened.
type Launch struct {
	// ID is the unique identifier for this launch.
	ID string `json:"id"`

	// App is the resolved target app the draft was opened with.
	App string `json:"app"`

	// Method is the launch path that was taken.
	Method LaunchMethod `json:"method"`

	// Subject is the draft subject at launch time.
	Subject string `json:"subject"`

	// Recipients is the comma-joined To list.
	Recipients string `json:"recipients"`

	// ContentType is the content type of the launched payload.
	ContentType string `json:"content_type"`

	// Content is the mailto URI or EML text that was launched.
	Content string `json:"content"`

	// CreatedAt is when the draft was launched.
	CreatedAt time.Time `json:"created_at"`
}

// SavedDraft is a named set of draft properties kept for reuse.
type SavedDraft struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Properties DraftProperties `json:"properties"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
