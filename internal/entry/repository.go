// AngelaMos | 2026
// repository.go

package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const entryColumns = `id, user_id, date, mood, entry, location, weather, updated_at`

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO entries (id, user_id, mood, entry, location, weather)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING date, updated_at`

	err := r.db.GetContext(ctx, entry, query,
		entry.ID,
		entry.UserID,
		entry.Mood,
		entry.Entry,
		entry.Location,
		entry.Weather,
	)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	var entry Entry
	err := r.db.GetContext(ctx, &entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	return &entry, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY date DESC`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// Update replaces every mutable field of the entry owned by entry.UserID.
// The owner itself is part of the match and never rewritten.
func (r *repository) Update(ctx context.Context, entry *Entry) error {
	query := `
		UPDATE entries
		SET mood = $3, entry = $4, location = $5, weather = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING date, updated_at`

	err := r.db.GetContext(ctx, entry, query,
		entry.ID,
		entry.UserID,
		entry.Mood,
		entry.Entry,
		entry.Location,
		entry.Weather,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM entries WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete entry: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM entries`); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return total, nil
}
