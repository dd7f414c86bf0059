package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/maildraft/internal/model"
)

const draftColumns = `id, name, properties, created_at, updated_at`

// SaveDraft stores draft under its name. Saving a name that already
// exists replaces that draft's properties and keeps its ID. The stored
// ID and timestamps are written back to draft.
func (s *SQLiteStore) SaveDraft(ctx context.Context, draft *model.SavedDraft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return fmt.Errorf("draft name must not be empty")
	}
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}

	props, err := json.Marshal(draft.Properties)
	if err != nil {
		return fmt.Errorf("marshaling draft properties: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (`+draftColumns+`)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			properties = excluded.properties,
			updated_at = excluded.updated_at`,
		draft.ID, draft.Name, string(props), now, now,
	)
	if err != nil {
		return fmt.Errorf("saving draft %q: %w", draft.Name, err)
	}

	saved, err := s.GetDraftByName(ctx, draft.Name)
	if err != nil {
		return err
	}
	*draft = *saved
	return nil
}

// GetDrafts retrieves all saved drafts ordered by name.
func (s *SQLiteStore) GetDrafts(ctx context.Context) ([]model.SavedDraft, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+draftColumns+" FROM drafts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var drafts []model.SavedDraft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}

	return drafts, rows.Err()
}

// GetDraftByID retrieves a single saved draft by ID.
func (s *SQLiteStore) GetDraftByID(ctx context.Context, id string) (*model.SavedDraft, error) {
	return s.getDraft(ctx, "id", id)
}

// GetDraftByName retrieves a single saved draft by name.
func (s *SQLiteStore) GetDraftByName(ctx context.Context, name string) (*model.SavedDraft, error) {
	return s.getDraft(ctx, "name", strings.TrimSpace(name))
}

func (s *SQLiteStore) getDraft(ctx context.Context, column, value string) (*model.SavedDraft, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+draftColumns+" FROM drafts WHERE "+column+" = ?", value)

	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("draft %s: %w", value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft %s: %w", value, err)
	}
	return &d, nil
}

// DeleteDraft removes a saved draft by ID.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanDraft scans a draft row selected with draftColumns.
func scanDraft(row rowScanner) (model.SavedDraft, error) {
	var (
		d         model.SavedDraft
		props     string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&d.ID, &d.Name, &props, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedDraft{}, err
	}
	if err != nil {
		return model.SavedDraft{}, fmt.Errorf("scanning draft row: %w", err)
	}

	if props != "" {
		if err := json.Unmarshal([]byte(props), &d.Properties); err != nil {
			return model.SavedDraft{}, fmt.Errorf("unmarshaling draft properties: %w", err)
		}
	}
	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt

	return d, nil
}
