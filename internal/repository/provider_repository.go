package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// ProviderRepository manages persistence for providers.
type ProviderRepository struct {
	db *sqlx.DB
}

// NewProviderRepository constructs a ProviderRepository.
func NewProviderRepository(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

const providerColumns = "id, name, slug, specialty, days, daily_capacity, new_patient_provider, new_patient_quota, active, created_at, updated_at"

// List returns providers matching the filter along with pagination info.
func (r *ProviderRepository) List(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, *models.Pagination, error) {
	base := "FROM providers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Specialty != "" && filter.Specialty != models.SpecialtyAll {
		conditions = append(conditions, fmt.Sprintf("specialty = $%d", len(args)+1))
		args = append(args, filter.Specialty)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(slug) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY name ASC LIMIT %d OFFSET %d", providerColumns, base, size, offset)
	var providers []models.Provider
	if err := r.db.SelectContext(ctx, &providers, query, args...); err != nil {
		return nil, nil, fmt.Errorf("list providers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, nil, fmt.Errorf("count providers: %w", err)
	}

	return providers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListActive returns every active provider in name order. The slot finder
// relies on this ordering as its tiebreak.
func (r *ProviderRepository) ListActive(ctx context.Context) ([]models.Provider, error) {
	query := fmt.Sprintf("SELECT %s FROM providers WHERE active = TRUE ORDER BY name ASC", providerColumns)
	var providers []models.Provider
	if err := r.db.SelectContext(ctx, &providers, query); err != nil {
		return nil, fmt.Errorf("list active providers: %w", err)
	}
	return providers, nil
}

// FindByID fetches a provider by ID.
func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*models.Provider, error) {
	query := fmt.Sprintf("SELECT %s FROM providers WHERE id = $1", providerColumns)
	var provider models.Provider
	if err := r.db.GetContext(ctx, &provider, query, id); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Create inserts a provider.
func (r *ProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	const query = `
		INSERT INTO providers (id, name, slug, specialty, days, daily_capacity, new_patient_provider, new_patient_quota, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		provider.ID, provider.Name, provider.Slug, provider.Specialty, provider.Days,
		provider.DailyCapacity, provider.NewPatientProvider, provider.NewPatientQuota, provider.Active)
	if err := row.Scan(&provider.CreatedAt, &provider.UpdatedAt); err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a provider.
func (r *ProviderRepository) Update(ctx context.Context, provider *models.Provider) error {
	const query = `
		UPDATE providers
		SET name = $2, slug = $3, specialty = $4, days = $5, daily_capacity = $6,
		    new_patient_provider = $7, new_patient_quota = $8, active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		provider.ID, provider.Name, provider.Slug, provider.Specialty, provider.Days,
		provider.DailyCapacity, provider.NewPatientProvider, provider.NewPatientQuota, provider.Active)
	if err := row.Scan(&provider.UpdatedAt); err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

// Deactivate marks a provider inactive without touching appointments.
func (r *ProviderRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE providers SET active = FALSE, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deactivate provider: %w", err)
	}
	return nil
}
