package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

type vacationRepository interface {
	ListOverlapping(ctx context.Context, from, to models.CivilDate) ([]models.Vacation, error)
	Create(ctx context.Context, vacation *models.Vacation) error
	Delete(ctx context.Context, id string) error
}

type timeOffRepository interface {
	ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.TimeOff, error)
	Create(ctx context.Context, timeOff *models.TimeOff) error
	Delete(ctx context.Context, id string) error
}

type extraCapacityRepository interface {
	ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.ExtraCapacity, error)
	Create(ctx context.Context, extra *models.ExtraCapacity) error
	Delete(ctx context.Context, id string) error
}

type providerExistenceChecker interface {
	FindByID(ctx context.Context, id string) (*models.Provider, error)
}

// ScheduleExceptionService manages vacations, partial-day time off and
// per-date extra capacity grants. All three shift what the search and the
// availability views report, so every mutation flushes the cache.
type ScheduleExceptionService struct {
	vacations vacationRepository
	timeOffs  timeOffRepository
	extras    extraCapacityRepository
	providers providerExistenceChecker
	cache     availabilityInvalidator
	logger    *zap.Logger
}

func NewScheduleExceptionService(
	vacations vacationRepository,
	timeOffs timeOffRepository,
	extras extraCapacityRepository,
	providers providerExistenceChecker,
	cache availabilityInvalidator,
	logger *zap.Logger,
) *ScheduleExceptionService {
	return &ScheduleExceptionService{
		vacations: vacations,
		timeOffs:  timeOffs,
		extras:    extras,
		providers: providers,
		cache:     cache,
		logger:    logger,
	}
}

func (s *ScheduleExceptionService) ListVacations(ctx context.Context, from, to models.CivilDate) ([]models.Vacation, error) {
	vacations, err := s.vacations.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vacations")
	}
	return vacations, nil
}

func (s *ScheduleExceptionService) CreateVacation(ctx context.Context, req dto.VacationRequest) (*models.Vacation, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start and end dates are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "vacation end precedes start")
	}
	if req.ProviderID != nil && *req.ProviderID != "" {
		if err := s.checkProvider(ctx, *req.ProviderID); err != nil {
			return nil, err
		}
	}
	vacation := &models.Vacation{
		ID:          uuid.New().String(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProviderID:  req.ProviderID,
		Description: req.Description,
	}
	if err := s.vacations.Create(ctx, vacation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create vacation")
	}
	s.invalidate(ctx)
	return vacation, nil
}

func (s *ScheduleExceptionService) DeleteVacation(ctx context.Context, id string) error {
	if err := s.vacations.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "vacation not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete vacation")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScheduleExceptionService) ListTimeOffs(ctx context.Context, from, to models.CivilDate) ([]models.TimeOff, error) {
	timeOffs, err := s.timeOffs.ListBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time off")
	}
	return timeOffs, nil
}

func (s *ScheduleExceptionService) CreateTimeOff(ctx context.Context, req dto.TimeOffRequest) (*models.TimeOff, error) {
	if req.Date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if req.EndTime.Minutes() <= req.StartTime.Minutes() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "time off end must follow start")
	}
	if err := s.checkProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}
	timeOff := &models.TimeOff{
		ID:          uuid.New().String(),
		ProviderID:  req.ProviderID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	}
	if err := s.timeOffs.Create(ctx, timeOff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time off")
	}
	s.invalidate(ctx)
	return timeOff, nil
}

func (s *ScheduleExceptionService) DeleteTimeOff(ctx context.Context, id string) error {
	if err := s.timeOffs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "time off not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time off")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScheduleExceptionService) ListExtraCapacities(ctx context.Context, from, to models.CivilDate) ([]models.ExtraCapacity, error) {
	extras, err := s.extras.ListBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list extra capacity")
	}
	return extras, nil
}

func (s *ScheduleExceptionService) CreateExtraCapacity(ctx context.Context, req dto.ExtraCapacityRequest) (*models.ExtraCapacity, error) {
	if req.Date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if req.Slots < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slots must be positive")
	}
	if err := s.checkProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}
	extra := &models.ExtraCapacity{
		ID:         uuid.New().String(),
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Slots:      req.Slots,
	}
	if err := s.extras.Create(ctx, extra); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create extra capacity")
	}
	s.invalidate(ctx)
	return extra, nil
}

func (s *ScheduleExceptionService) DeleteExtraCapacity(ctx context.Context, id string) error {
	if err := s.extras.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "extra capacity not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete extra capacity")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScheduleExceptionService) checkProvider(ctx context.Context, id string) error {
	if _, err := s.providers.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "provider not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load provider")
	}
	return nil
}

func (s *ScheduleExceptionService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}
}
