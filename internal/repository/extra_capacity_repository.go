package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// ExtraCapacityRepository manages persistence for per-date slot grants.
type ExtraCapacityRepository struct {
	db *sqlx.DB
}

// NewExtraCapacityRepository constructs an ExtraCapacityRepository.
func NewExtraCapacityRepository(db *sqlx.DB) *ExtraCapacityRepository {
	return &ExtraCapacityRepository{db: db}
}

// ListBetween returns grants dated in [from, to].
func (r *ExtraCapacityRepository) ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.ExtraCapacity, error) {
	const query = `
		SELECT id, provider_id, date, slots, created_at
		FROM extra_capacities
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`
	var extras []models.ExtraCapacity
	if err := r.db.SelectContext(ctx, &extras, query, from, to); err != nil {
		return nil, fmt.Errorf("list extra capacities: %w", err)
	}
	return extras, nil
}

// Create inserts a grant. A second grant for the same provider-date
// replaces the first.
func (r *ExtraCapacityRepository) Create(ctx context.Context, extra *models.ExtraCapacity) error {
	const query = `
		INSERT INTO extra_capacities (id, provider_id, date, slots)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider_id, date) DO UPDATE SET slots = EXCLUDED.slots
		RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, extra.ID, extra.ProviderID, extra.Date, extra.Slots)
	if err := row.Scan(&extra.ID, &extra.CreatedAt); err != nil {
		return fmt.Errorf("create extra capacity: %w", err)
	}
	return nil
}

// Delete removes a grant.
func (r *ExtraCapacityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM extra_capacities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete extra capacity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete extra capacity: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
