package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

// uniqueViolation is the Postgres error code raised when two bookings race
// for the same (provider_id, start_at) pair.
const uniqueViolation = "23505"

// AppointmentRepository manages persistence for appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = "id, file_no, provider_id, start_at, end_at, type, emergency, created_at"

// ListBetween returns every appointment with start_at in [from, to).
func (r *AppointmentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE start_at >= $1 AND start_at < $2 ORDER BY start_at ASC", appointmentColumns)
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, from, to); err != nil {
		return nil, fmt.Errorf("list appointments between: %w", err)
	}
	return appointments, nil
}

// List returns appointments matching the filter along with pagination info.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	base := "FROM appointments WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.ProviderID != "" {
		conditions = append(conditions, fmt.Sprintf("provider_id = $%d", len(args)+1))
		args = append(args, filter.ProviderID)
	}
	if filter.FileNo != "" {
		conditions = append(conditions, fmt.Sprintf("file_no = $%d", len(args)+1))
		args = append(args, filter.FileNo)
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("start_at >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("start_at < $%d + INTERVAL '1 day'", len(args)+1))
		args = append(args, *filter.To)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY start_at ASC LIMIT %d OFFSET %d", appointmentColumns, base, size, offset)
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, nil, fmt.Errorf("list appointments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, nil, fmt.Errorf("count appointments: %w", err)
	}

	return appointments, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Create inserts an appointment. The unique index on (provider_id,
// start_at) turns a concurrent double-booking into ErrSlotTaken.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	const query = `
		INSERT INTO appointments (id, file_no, provider_id, start_at, end_at, type, emergency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	row := r.db.QueryRowxContext(ctx, query,
		appointment.ID, appointment.FileNo, appointment.ProviderID,
		appointment.StartAt, appointment.EndAt, appointment.Type, appointment.Emergency)
	if err := row.Scan(&appointment.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return appErrors.ErrSlotTaken
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID fetches an appointment by ID.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE id = $1", appointmentColumns)
	var appointment models.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Delete removes an appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM appointments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
