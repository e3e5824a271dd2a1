package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context) (models.SchedulingSettings, error)
	Update(ctx context.Context, settings models.SchedulingSettings) error
}

// SettingsService reads and replaces the single scheduler tuning row.
type SettingsService struct {
	repo   settingsRepository
	audit  auditRecorder
	cache  availabilityInvalidator
	logger *zap.Logger
}

func NewSettingsService(repo settingsRepository, audit auditRecorder, cache availabilityInvalidator, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, audit: audit, cache: cache, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (models.SchedulingSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return models.SchedulingSettings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

// Update replaces the settings row. Every change is audited and flushes
// the availability cache, since horizons and session bounds shift what
// every view reports.
func (s *SettingsService) Update(ctx context.Context, req dto.SettingsRequest) (models.SchedulingSettings, error) {
	if err := validateSettings(req); err != nil {
		return models.SchedulingSettings{}, err
	}
	settings := models.SchedulingSettings{
		UrgentDaysAhead:     req.UrgentDaysAhead,
		SemiUrgentDaysAhead: req.SemiUrgentDaysAhead,
		NormalDaysAhead:     req.NormalDaysAhead,
		ChronicWeeksAhead:   req.ChronicWeeksAhead,
		EmergencyDaysAhead:  req.EmergencyDaysAhead,
		BlockFridays:        req.BlockFridays,
		BlockSaturdays:      req.BlockSaturdays,
		MorningStartHour:    req.MorningStartHour,
		MorningEndHour:      req.MorningEndHour,
		AfternoonStartHour:  req.AfternoonStartHour,
		AfternoonEndHour:    req.AfternoonEndHour,
		SlotDurationMinutes: req.SlotDurationMinutes,
		UrgentReserve:       req.UrgentReserve,
		AutoDistribute:      req.AutoDistribute,
		BookingLocked:       req.BookingLocked,
		BookingLockUntil:    req.BookingLockUntil,
	}
	if err := s.repo.Update(ctx, settings); err != nil {
		return models.SchedulingSettings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update settings")
	}

	entry := models.AuditEntry{
		ID:      uuid.New().String(),
		Action:  models.AuditSettingsChange,
		Details: "scheduler settings updated",
	}
	if err := s.audit.Record(ctx, &entry); err != nil {
		s.logger.Warn("failed to record settings audit entry", zap.Error(err))
	}
	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}
	return settings, nil
}

func validateSettings(req dto.SettingsRequest) error {
	if req.SlotDurationMinutes < 5 {
		return appErrors.Clone(appErrors.ErrValidation, "slot duration must be at least five minutes")
	}
	if req.MorningEndHour < req.MorningStartHour || req.AfternoonEndHour < req.AfternoonStartHour {
		return appErrors.Clone(appErrors.ErrValidation, "session end must not precede session start")
	}
	if req.MorningStartHour < 0 || req.AfternoonEndHour > 24 {
		return appErrors.Clone(appErrors.ErrValidation, "session hours must fall within a single day")
	}
	if req.UrgentDaysAhead < 0 || req.SemiUrgentDaysAhead < 0 || req.NormalDaysAhead < 0 ||
		req.ChronicWeeksAhead < 0 || req.EmergencyDaysAhead < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "horizons must not be negative")
	}
	if req.BookingLocked && req.BookingLockUntil != nil && req.BookingLockUntil.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "booking lock date is invalid")
	}
	return nil
}
