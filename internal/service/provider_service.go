package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

type providerRepository interface {
	List(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, *models.Pagination, error)
	FindByID(ctx context.Context, id string) (*models.Provider, error)
	Create(ctx context.Context, provider *models.Provider) error
	Update(ctx context.Context, provider *models.Provider) error
	Deactivate(ctx context.Context, id string) error
}

// ProviderService manages therapist records and their weekly schedules.
type ProviderService struct {
	repo   providerRepository
	cache  availabilityInvalidator
	logger *zap.Logger
}

func NewProviderService(repo providerRepository, cache availabilityInvalidator, logger *zap.Logger) *ProviderService {
	return &ProviderService{repo: repo, cache: cache, logger: logger}
}

func (s *ProviderService) List(ctx context.Context, filter models.ProviderFilter) ([]models.Provider, *models.Pagination, error) {
	providers, pagination, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list providers")
	}
	return providers, pagination, nil
}

func (s *ProviderService) Get(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "provider not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load provider")
	}
	return provider, nil
}

func (s *ProviderService) Create(ctx context.Context, req dto.ProviderRequest) (*models.Provider, error) {
	if err := validateProviderRequest(req); err != nil {
		return nil, err
	}
	provider := &models.Provider{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(req.Name),
		Slug:               slugify(req.Name),
		Specialty:          req.Specialty,
		Days:               req.Days,
		DailyCapacity:      req.DailyCapacity,
		NewPatientProvider: req.NewPatientProvider,
		NewPatientQuota:    req.NewPatientQuota,
		Active:             true,
	}
	if err := s.repo.Create(ctx, provider); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create provider")
	}
	s.invalidate(ctx)
	return provider, nil
}

func (s *ProviderService) Update(ctx context.Context, id string, req dto.ProviderRequest) (*models.Provider, error) {
	if err := validateProviderRequest(req); err != nil {
		return nil, err
	}
	provider, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	provider.Name = strings.TrimSpace(req.Name)
	provider.Slug = slugify(req.Name)
	provider.Specialty = req.Specialty
	provider.Days = req.Days
	provider.DailyCapacity = req.DailyCapacity
	provider.NewPatientProvider = req.NewPatientProvider
	provider.NewPatientQuota = req.NewPatientQuota
	if req.Active != nil {
		provider.Active = *req.Active
	}
	if err := s.repo.Update(ctx, provider); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update provider")
	}
	s.invalidate(ctx)
	return provider, nil
}

// Delete deactivates the provider. Existing appointments stay on the
// books; the provider simply stops matching future searches.
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate provider")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProviderService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}
}

func validateProviderRequest(req dto.ProviderRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if !models.ValidProviderSpecialty(req.Specialty) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown specialty")
	}
	if len(req.Days) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "at least one working day is required")
	}
	for _, day := range req.Days {
		if day < 0 || day > 6 {
			return appErrors.Clone(appErrors.ErrValidation, "working days must be 0 through 6")
		}
	}
	if req.DailyCapacity < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "daily capacity cannot be negative")
	}
	if req.NewPatientProvider && req.NewPatientQuota < 1 {
		return appErrors.Clone(appErrors.ErrValidation, "new patient quota must be positive")
	}
	return nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
