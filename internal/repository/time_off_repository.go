package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// TimeOffRepository manages persistence for partial-day blocks.
type TimeOffRepository struct {
	db *sqlx.DB
}

// NewTimeOffRepository constructs a TimeOffRepository.
func NewTimeOffRepository(db *sqlx.DB) *TimeOffRepository {
	return &TimeOffRepository{db: db}
}

// ListBetween returns time-off windows dated in [from, to].
func (r *TimeOffRepository) ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.TimeOff, error) {
	const query = `
		SELECT id, provider_id, date, start_minute, end_minute, description, created_at
		FROM time_offs
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, start_minute ASC`
	var timeOffs []models.TimeOff
	if err := r.db.SelectContext(ctx, &timeOffs, query, from, to); err != nil {
		return nil, fmt.Errorf("list time offs: %w", err)
	}
	return timeOffs, nil
}

// Create inserts a time-off window.
func (r *TimeOffRepository) Create(ctx context.Context, timeOff *models.TimeOff) error {
	const query = `
		INSERT INTO time_offs (id, provider_id, date, start_minute, end_minute, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	row := r.db.QueryRowxContext(ctx, query,
		timeOff.ID, timeOff.ProviderID, timeOff.Date, timeOff.StartTime, timeOff.EndTime, timeOff.Description)
	if err := row.Scan(&timeOff.CreatedAt); err != nil {
		return fmt.Errorf("create time off: %w", err)
	}
	return nil
}

// Delete removes a time-off window.
func (r *TimeOffRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM time_offs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete time off: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete time off: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
