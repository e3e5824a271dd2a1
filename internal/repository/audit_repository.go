package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// AuditRepository manages the append-only mutation trail.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends an audit entry.
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	const query = `
		INSERT INTO audit_entries (id, action, file_no, provider_id, provider_name, start_at, end_at, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	row := r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.Action, entry.FileNo, entry.ProviderID, entry.ProviderName,
		entry.StartAt, entry.EndAt, entry.Details)
	if err := row.Scan(&entry.CreatedAt); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// List returns audit entries matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, *models.Pagination, error) {
	base := "FROM audit_entries WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)+1))
		args = append(args, filter.Action)
	}
	if filter.FileNo != "" {
		conditions = append(conditions, fmt.Sprintf("file_no = $%d", len(args)+1))
		args = append(args, filter.FileNo)
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

	query := fmt.Sprintf("SELECT id, action, file_no, provider_id, provider_name, start_at, end_at, details, created_at %s ORDER BY created_at DESC LIMIT %d OFFSET %d", base, size, offset)
	var entries []models.AuditEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, nil, fmt.Errorf("list audit entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, nil, fmt.Errorf("count audit entries: %w", err)
	}

	return entries, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
