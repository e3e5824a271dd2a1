package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

type bookingProviderReader interface {
	ListActive(ctx context.Context) ([]models.Provider, error)
	FindByID(ctx context.Context, id string) (*models.Provider, error)
}

type appointmentStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type vacationReader interface {
	ListOverlapping(ctx context.Context, from, to models.CivilDate) ([]models.Vacation, error)
}

type timeOffReader interface {
	ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.TimeOff, error)
}

type extraCapacityReader interface {
	ListBetween(ctx context.Context, from, to models.CivilDate) ([]models.ExtraCapacity, error)
}

type settingsReader interface {
	Get(ctx context.Context) (models.SchedulingSettings, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
}

type availabilityInvalidator interface {
	InvalidateAvailability(ctx context.Context)
}

type bookingMetrics interface {
	RecordBooking(appointmentType string, emergency bool)
	RecordCancellation()
	RecordSearchDuration(seconds float64)
	RecordSearchExhausted(appointmentType string)
}

// BookingService finds and books appointment slots. Every search runs
// against a snapshot loaded up front, so repeated calls with an unchanged
// schedule return the same slot.
type BookingService struct {
	providers    bookingProviderReader
	appointments appointmentStore
	vacations    vacationReader
	timeOffs     timeOffReader
	extras       extraCapacityReader
	settings     settingsReader
	audit        auditRecorder
	cache        availabilityInvalidator
	metrics      bookingMetrics
	validator    *validator.Validate
	logger       *zap.Logger
	loc          *time.Location
	now          func() time.Time
	retries      int
}

func NewBookingService(
	providers bookingProviderReader,
	appointments appointmentStore,
	vacations vacationReader,
	timeOffs timeOffReader,
	extras extraCapacityReader,
	settings settingsReader,
	audit auditRecorder,
	cache availabilityInvalidator,
	metrics bookingMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	loc *time.Location,
	retries int,
) *BookingService {
	if retries < 1 {
		retries = 1
	}
	if validate == nil {
		validate = validator.New()
	}
	_ = validate.RegisterValidation("appointment_type", func(fl validator.FieldLevel) bool {
		return models.ValidRequestType(models.AppointmentType(fl.Field().String()))
	})
	return &BookingService{
		providers:    providers,
		appointments: appointments,
		vacations:    vacations,
		timeOffs:     timeOffs,
		extras:       extras,
		settings:     settings,
		audit:        audit,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		loc:          loc,
		now:          time.Now,
		retries:      retries,
	}
}

// foundSlot is a concrete placement produced by the pure search functions.
type foundSlot struct {
	provider models.Provider
	date     models.CivilDate
	minute   models.ClockMinute
}

// Book runs the automatic slot search and persists the first admissible
// slot. When the chosen slot is stolen by a concurrent booking the search
// re-runs against a fresh snapshot, bounded by the configured retries.
func (s *BookingService) Book(ctx context.Context, req dto.BookingRequest) (*dto.BookingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid booking request: "+err.Error())
	}
	fileNo := NormalizeDigits(strings.TrimSpace(req.FileNo))
	if fileNo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file number is required")
	}
	reqType := req.Type.Resolve()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	searchStart, err := s.searchStart(settings)
	if err != nil {
		return nil, err
	}

	horizon := settings.HorizonDays(reqType)

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		snap, err := s.loadSnapshot(ctx, settings, searchStart, horizon)
		if err != nil {
			return nil, err
		}

		started := s.now()
		slot := findSlot(snap, searchRequest{
			appointmentType: reqType,
			specialty:       req.Specialty,
			timeOfDay:       req.TimeOfDay,
			providerID:      req.ProviderID,
			start:           searchStart,
			horizonDays:     horizon,
			notBefore:       s.notBeforeMinute(searchStart),
		})
		if s.metrics != nil {
			s.metrics.RecordSearchDuration(s.now().Sub(started).Seconds())
		}
		if slot == nil {
			if s.metrics != nil {
				s.metrics.RecordSearchExhausted(string(reqType))
			}
			return &dto.BookingResult{
				Found:   false,
				Message: "no available slots within the scheduling horizon",
			}, nil
		}

		appointment, err := s.persist(ctx, fileNo, reqType, false, *slot, snap.settings)
		if err != nil {
			if errors.Is(err, appErrors.ErrSlotTaken) {
				lastErr = err
				s.logger.Info("slot taken concurrently, retrying search",
					zap.String("provider_id", slot.provider.ID),
					zap.String("date", slot.date.String()),
					zap.Int("attempt", attempt+1))
				continue
			}
			return nil, err
		}
		return &dto.BookingResult{
			Found:        true,
			Appointment:  appointment,
			ProviderName: slot.provider.Name,
		}, nil
	}
	return nil, appErrors.Wrap(lastErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "could not secure a slot after retries")
}

// BookManual books an explicit provider, date and time, still subject to
// vacations, time off, working days and slot exclusivity. Capacity is
// checked but the new-patient quota is not, matching front-desk overrides.
func (s *BookingService) BookManual(ctx context.Context, req dto.ManualBookingRequest) (*dto.BookingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid booking request: "+err.Error())
	}
	fileNo := NormalizeDigits(strings.TrimSpace(req.FileNo))
	if fileNo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file number is required")
	}
	reqType := req.Type.Resolve()
	if req.Date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	date := req.Date
	minute := req.StartTime

	provider, err := s.providers.FindByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "provider not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load provider")
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(ctx, settings, date, 0)
	if err != nil {
		return nil, err
	}

	if !provider.WorksOn(date.Weekday()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provider does not work on that day")
	}
	if blockedWeekday(date, settings) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "clinic is closed on that day")
	}
	if onVacation(provider.ID, date, snap.vacations) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provider is on vacation")
	}
	if inTimeOff(provider.ID, date, minute.Minutes(), snap.timeOffs) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provider is off at that time")
	}
	dayAppts := snap.providerAppointmentsOn(provider.ID, date)
	if len(dayAppts) >= effectiveCapacity(*provider, date, snap.extras, settings, reqType.UrgentClass(), dayAppts) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "provider is fully booked on that day")
	}
	if snap.slotTaken(provider.ID, date.At(minute.Minutes(), s.loc)) {
		return nil, appErrors.Clone(appErrors.ErrSlotTaken, "slot is already taken")
	}

	appointment, err := s.persist(ctx, fileNo, reqType, false, foundSlot{provider: *provider, date: date, minute: minute}, settings)
	if err != nil {
		return nil, err
	}
	return &dto.BookingResult{Found: true, Appointment: appointment, ProviderName: provider.Name}, nil
}

// BookEmergency bypasses capacity and quota and places the appointment in
// the nearest open instant, appending past the session end when the grid
// is exhausted. Only the emergency horizon is searched.
func (s *BookingService) BookEmergency(ctx context.Context, req dto.EmergencyBookingRequest) (*dto.BookingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid booking request: "+err.Error())
	}
	fileNo := NormalizeDigits(strings.TrimSpace(req.FileNo))
	if fileNo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file number is required")
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	start := models.CivilDateOf(s.now().In(s.loc))
	horizon := settings.EmergencyDaysAhead

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		snap, err := s.loadSnapshot(ctx, settings, start, horizon)
		if err != nil {
			return nil, err
		}
		slot := findEmergencySlot(snap, req.Specialty, start, horizon, s.notBeforeMinute(start))
		if slot == nil {
			return &dto.BookingResult{
				Found:   false,
				Message: "no provider is working within the emergency horizon",
			}, nil
		}
		appointment, err := s.persist(ctx, fileNo, models.TypeUrgent, true, *slot, settings)
		if err != nil {
			if errors.Is(err, appErrors.ErrSlotTaken) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return &dto.BookingResult{Found: true, Appointment: appointment, ProviderName: slot.provider.Name}, nil
	}
	return nil, appErrors.Wrap(lastErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "could not secure an emergency slot after retries")
}

// Cancel removes an appointment. Cancelling an unknown id is not an
// error so repeated cancellations stay idempotent.
func (s *BookingService) Cancel(ctx context.Context, id string) (*dto.CancelResult, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.CancelResult{Removed: false}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete appointment")
	}

	s.recordAudit(ctx, models.AuditEntry{
		Action:     models.AuditBookingCancel,
		FileNo:     appointment.FileNo,
		ProviderID: &appointment.ProviderID,
		StartAt:    &appointment.StartAt,
		EndAt:      &appointment.EndAt,
		Details:    "appointment " + appointment.ID + " cancelled (" + string(appointment.Type) + ")",
	})
	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}
	if s.metrics != nil {
		s.metrics.RecordCancellation()
	}
	return &dto.CancelResult{Removed: true}, nil
}

// List returns appointments matching the filter.
func (s *BookingService) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	return s.appointments.List(ctx, filter)
}

func (s *BookingService) searchStart(settings models.SchedulingSettings) (models.CivilDate, error) {
	start := models.CivilDateOf(s.now().In(s.loc))
	if settings.BookingLocked {
		if settings.BookingLockUntil == nil {
			return models.CivilDate{}, appErrors.ErrBookingLocked
		}
		lockedThrough := *settings.BookingLockUntil
		if !lockedThrough.Before(start) {
			start = lockedThrough.AddDays(1)
		}
	}
	return start, nil
}

// notBeforeMinute keeps same-day searches from landing in the past.
func (s *BookingService) notBeforeMinute(searchStart models.CivilDate) models.ClockMinute {
	now := s.now().In(s.loc)
	if models.CivilDateOf(now) != searchStart {
		return 0
	}
	return models.ClockMinute(now.Hour()*60 + now.Minute())
}

func (s *BookingService) loadSnapshot(ctx context.Context, settings models.SchedulingSettings, start models.CivilDate, horizonDays int) (*scheduleSnapshot, error) {
	end := start.AddDays(horizonDays)
	from := start.At(0, s.loc)
	to := end.AddDays(1).At(0, s.loc)

	providers, err := s.providers.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list providers")
	}
	appointments, err := s.appointments.ListBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	vacations, err := s.vacations.ListOverlapping(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vacations")
	}
	timeOffs, err := s.timeOffs.ListBetween(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time off")
	}
	extras, err := s.extras.ListBetween(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list extra capacity")
	}
	return newScheduleSnapshot(providers, appointments, vacations, timeOffs, extras, settings, s.loc), nil
}

func (s *BookingService) persist(ctx context.Context, fileNo string, reqType models.AppointmentType, emergency bool, slot foundSlot, settings models.SchedulingSettings) (*models.Appointment, error) {
	startAt := slot.date.At(slot.minute.Minutes(), s.loc)
	appointment := &models.Appointment{
		ID:         uuid.New().String(),
		FileNo:     fileNo,
		ProviderID: slot.provider.ID,
		StartAt:    startAt,
		EndAt:      startAt.Add(time.Duration(settings.SlotDurationMinutes) * time.Minute),
		Type:       reqType,
		Emergency:  emergency,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	action := models.AuditBookingCreate
	details := "booked " + string(reqType) + " appointment " + appointment.ID
	if emergency {
		action = models.AuditEmergencyCreate
		details = "emergency appointment " + appointment.ID + " placed over capacity"
	}
	s.recordAudit(ctx, models.AuditEntry{
		Action:       action,
		FileNo:       fileNo,
		ProviderID:   &appointment.ProviderID,
		ProviderName: slot.provider.Name,
		StartAt:      &appointment.StartAt,
		EndAt:        &appointment.EndAt,
		Details:      details,
	})
	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}
	if s.metrics != nil {
		s.metrics.RecordBooking(string(reqType), emergency)
	}
	return appointment, nil
}

func (s *BookingService) recordAudit(ctx context.Context, entry models.AuditEntry) {
	entry.ID = uuid.New().String()
	if err := s.audit.Record(ctx, &entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", string(entry.Action)),
			zap.Error(err))
	}
}

// searchRequest carries the caller's constraints into the pure search.
type searchRequest struct {
	appointmentType models.AppointmentType
	specialty       models.Specialty
	timeOfDay       string
	providerID      string
	start           models.CivilDate
	horizonDays     int
	notBefore       models.ClockMinute
}

// findSlot walks days outward from the start date and returns the first
// admissible slot, or nil when the horizon is exhausted. Day ordering is
// strict: a later day is never chosen while an earlier one has an opening.
func findSlot(snap *scheduleSnapshot, req searchRequest) *foundSlot {
	grid := buildTimeGrid(snap.settings)
	windowFrom, windowTo := gridWindow(snap.settings, req.timeOfDay)
	urgentClass := req.appointmentType.UrgentClass()

	for offset := 0; offset < req.horizonDays; offset++ {
		date := req.start.AddDays(offset)
		if blockedWeekday(date, snap.settings) {
			continue
		}
		if globalVacationFor(date, snap.vacations) != nil {
			continue
		}
		candidates := candidateProviders(snap, req, date)
		for _, provider := range candidates {
			if onVacation(provider.ID, date, snap.vacations) {
				continue
			}
			dayAppts := snap.providerAppointmentsOn(provider.ID, date)
			if len(dayAppts) >= effectiveCapacity(provider, date, snap.extras, snap.settings, urgentClass, dayAppts) {
				continue
			}
			if !newPatientQuotaOpen(provider, req.appointmentType, dayAppts) {
				continue
			}
			for _, minute := range filterGrid(grid, windowFrom, windowTo) {
				if offset == 0 && minute < req.notBefore.Minutes() {
					continue
				}
				if inTimeOff(provider.ID, date, minute, snap.timeOffs) {
					continue
				}
				if snap.slotTaken(provider.ID, date.At(minute, snap.loc)) {
					continue
				}
				return &foundSlot{provider: provider, date: date, minute: models.ClockMinute(minute)}
			}
		}
	}
	return nil
}

// candidateProviders filters and orders the providers considered for a
// day. With auto-distribute on and no exact provider requested, providers
// are tried from least to most booked that day; the stable sort keeps the
// natural listing order as the tiebreak.
func candidateProviders(snap *scheduleSnapshot, req searchRequest, date models.CivilDate) []models.Provider {
	var out []models.Provider
	for _, p := range snap.providers {
		if req.providerID != "" && p.ID != req.providerID {
			continue
		}
		if req.specialty != "" && req.specialty != models.SpecialtyAll && p.Specialty != req.specialty {
			continue
		}
		if !p.WorksOn(date.Weekday()) {
			continue
		}
		out = append(out, p)
	}
	if snap.settings.AutoDistribute && req.providerID == "" {
		sort.SliceStable(out, func(i, j int) bool {
			return len(snap.providerAppointmentsOn(out[i].ID, date)) < len(snap.providerAppointmentsOn(out[j].ID, date))
		})
	}
	return out
}

// findEmergencySlot bypasses capacity and quota entirely. The appointment
// is appended one step past the provider's last booked appointment of the
// day, or at the session end when nothing is booked.
func findEmergencySlot(snap *scheduleSnapshot, specialty models.Specialty, start models.CivilDate, horizonDays int, notBefore models.ClockMinute) *foundSlot {
	grid := buildTimeGrid(snap.settings)
	step := snap.settings.SlotDurationMinutes

	for offset := 0; offset < horizonDays; offset++ {
		date := start.AddDays(offset)
		if blockedWeekday(date, snap.settings) {
			continue
		}
		if globalVacationFor(date, snap.vacations) != nil {
			continue
		}
		floor := 0
		if offset == 0 {
			floor = notBefore.Minutes()
		}
		for _, provider := range snap.providers {
			if specialty != "" && specialty != models.SpecialtyAll && provider.Specialty != specialty {
				continue
			}
			if !provider.WorksOn(date.Weekday()) {
				continue
			}
			if onVacation(provider.ID, date, snap.vacations) {
				continue
			}
			if m, ok := emergencyMinute(snap, provider.ID, date, grid, step, floor); ok {
				return &foundSlot{provider: provider, date: date, minute: models.ClockMinute(m)}
			}
		}
	}
	return nil
}

// emergencyMinute picks the placement minute for an over-capacity booking:
// one step after the provider's last booked appointment that day, or the
// session end boundary when the day is empty, stepping past taken and
// time-off minutes.
func emergencyMinute(snap *scheduleSnapshot, providerID string, date models.CivilDate, grid []int, step, floor int) (int, bool) {
	if len(grid) == 0 || step <= 0 {
		return 0, false
	}
	m := grid[len(grid)-1] + step
	if booked := snap.providerAppointmentsOn(providerID, date); len(booked) > 0 {
		last := 0
		for _, a := range booked {
			local := a.StartAt.In(snap.loc)
			if minute := local.Hour()*60 + local.Minute(); minute > last {
				last = minute
			}
		}
		m = last + step
	}
	for m < floor {
		m += step
	}
	for m < 24*60 {
		if !snap.slotTaken(providerID, date.At(m, snap.loc)) && !inTimeOff(providerID, date, m, snap.timeOffs) {
			return m, true
		}
		m += step
	}
	return 0, false
}
