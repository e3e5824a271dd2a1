package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// VacationRepository manages persistence for full-day closures.
type VacationRepository struct {
	db *sqlx.DB
}

// NewVacationRepository constructs a VacationRepository.
func NewVacationRepository(db *sqlx.DB) *VacationRepository {
	return &VacationRepository{db: db}
}

// ListOverlapping returns vacations whose date range intersects [from, to].
func (r *VacationRepository) ListOverlapping(ctx context.Context, from, to models.CivilDate) ([]models.Vacation, error) {
	const query = `
		SELECT id, start_date, end_date, provider_id, description, created_at
		FROM vacations
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date ASC`
	var vacations []models.Vacation
	if err := r.db.SelectContext(ctx, &vacations, query, from, to); err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}
	return vacations, nil
}

// Create inserts a vacation.
func (r *VacationRepository) Create(ctx context.Context, vacation *models.Vacation) error {
	const query = `
		INSERT INTO vacations (id, start_date, end_date, provider_id, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	row := r.db.QueryRowxContext(ctx, query,
		vacation.ID, vacation.StartDate, vacation.EndDate, vacation.ProviderID, vacation.Description)
	if err := row.Scan(&vacation.CreatedAt); err != nil {
		return fmt.Errorf("create vacation: %w", err)
	}
	return nil
}

// Delete removes a vacation.
func (r *VacationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vacations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete vacation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vacation: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
