package store

import (
	"context"
	"errors"
	"time"

	"github.com/nhle/maildraft/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

// LaunchFilter controls filtering and pagination for launch history queries.
type LaunchFilter struct {
	App    *string
	Method *model.LaunchMethod
	Query  *string    // search subject + recipients
	Since  *time.Time // launches at or after this time
	Limit  int
	Offset int
}

// Store defines the persistence interface for launch history and saved
// drafts.
type Store interface {
	// === Launch history ===

	RecordLaunch(ctx context.Context, launch *model.Launch) error
	GetLaunches(ctx context.Context, filter LaunchFilter) ([]model.Launch, error)
	GetLaunchByID(ctx context.Context, id string) (*model.Launch, error)

	// === Saved drafts ===

	SaveDraft(ctx context.Context, draft *model.SavedDraft) error
	GetDrafts(ctx context.Context) ([]model.SavedDraft, error)
	GetDraftByID(ctx context.Context, id string) (*model.SavedDraft, error)
	GetDraftByName(ctx context.Context, name string) (*model.SavedDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}
