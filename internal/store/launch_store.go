package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/maildraft/internal/model"
)

const launchColumns = `id, app, method, subject, recipients, content_type, content, created_at`

// RecordLaunch inserts a launch record. Generates a UUID if ID is empty
// and stamps CreatedAt if it is zero; both are written back to launch.
func (s *SQLiteStore) RecordLaunch(ctx context.Context, launch *model.Launch) error {
	if launch.App == "" {
		return fmt.Errorf("launch app must not be empty")
	}
	if launch.ID == "" {
		launch.ID = uuid.New().String()
	}
	if launch.CreatedAt.IsZero() {
		launch.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO launches (`+launchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		launch.ID, launch.App, string(launch.Method), launch.Subject,
		launch.Recipients, launch.ContentType, launch.Content,
		launch.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording launch: %w", err)
	}
	return nil
}

// GetLaunches retrieves launches matching the filter, newest first.
func (s *SQLiteStore) GetLaunches(
	ctx context.Context,
	filter LaunchFilter,
) ([]model.Launch, error) {
	var conditions []string
	var args []interface{}

	if filter.App != nil {
		conditions = append(conditions, "app = ?")
		args = append(args, *filter.App)
	}
	if filter.Method != nil {
		conditions = append(conditions, "method = ?")
		args = append(args, string(*filter.Method))
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(subject LIKE ? OR recipients LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}
	if filter.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.Since.UTC())
	}

	query := "SELECT " + launchColumns + " FROM launches"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying launches: %w", err)
	}
	defer rows.Close()

	var launches []model.Launch
	for rows.Next() {
		launch, err := scanLaunch(rows)
		if err != nil {
			return nil, err
		}
		launches = append(launches, launch)
	}

	return launches, rows.Err()
}

// GetLaunchByID retrieves a single launch by its ID.
func (s *SQLiteStore) GetLaunchByID(
	ctx context.Context,
	id string,
) (*model.Launch, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+launchColumns+" FROM launches WHERE id = ?", id)

	launch, err := scanLaunch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("launch %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting launch %s: %w", id, err)
	}

	return &launch, nil
}

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

var (
	_ rowScanner = (*sqlx.Row)(nil)
	_ rowScanner = (*sqlx.Rows)(nil)
)

// scanLaunch scans a launch row selected with launchColumns.
func scanLaunch(row rowScanner) (model.Launch, error) {
	var (
		launch    model.Launch
		method    string
		createdAt time.Time
	)

	err := row.Scan(
		&launch.ID, &launch.App, &method, &launch.Subject,
		&launch.Recipients, &launch.ContentType, &launch.Content,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Launch{}, err
	}
	if err != nil {
		return model.Launch{}, fmt.Errorf("scanning launch row: %w", err)
	}

	launch.Method = model.LaunchMethod(method)
	launch.CreatedAt = createdAt

	return launch, nil
}
