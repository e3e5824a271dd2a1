package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
)

// AvailabilityService aggregates per-day openness. Day, week and month
// views all derive from the same per-day computation, so a day can never
// look open in the month view while the day view says full.
type AvailabilityService struct {
	providers    bookingProviderReader
	appointments appointmentStore
	vacations    vacationReader
	timeOffs     timeOffReader
	extras       extraCapacityReader
	settings     settingsReader
	cache        *CacheService
	logger       *zap.Logger
	loc          *time.Location
	now          func() time.Time
}

func NewAvailabilityService(
	providers bookingProviderReader,
	appointments appointmentStore,
	vacations vacationReader,
	timeOffs timeOffReader,
	extras extraCapacityReader,
	settings settingsReader,
	cache *CacheService,
	logger *zap.Logger,
	loc *time.Location,
) *AvailabilityService {
	return &AvailabilityService{
		providers:    providers,
		appointments: appointments,
		vacations:    vacations,
		timeOffs:     timeOffs,
		extras:       extras,
		settings:     settings,
		cache:        cache,
		logger:       logger,
		loc:          loc,
		now:          time.Now,
	}
}

// Day computes the availability of a single date.
func (s *AvailabilityService) Day(ctx context.Context, query dto.AvailabilityQuery) (*dto.DayAvailability, error) {
	rng, err := s.Range(ctx, query.Date, query.Date, query)
	if err != nil {
		return nil, err
	}
	return &rng.Days[0], nil
}

// Range computes availability for every date in [from, to]. Results are
// cached until the next scheduling mutation.
func (s *AvailabilityService) Range(ctx context.Context, from, to models.CivilDate, query dto.AvailabilityQuery) (*dto.RangeAvailability, error) {
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "range end precedes start")
	}
	key := fmt.Sprintf("%s%s:%s:%s:%s", availabilityKeyPrefix, from, to, query.ProviderID, query.Specialty)
	var cached dto.RangeAvailability
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(ctx, settings, from, to)
	if err != nil {
		return nil, err
	}

	result := &dto.RangeAvailability{From: from, To: to}
	for d := from; !d.After(to); d = d.AddDays(1) {
		result.Days = append(result.Days, dayAvailability(snap, d, query))
	}

	if err := s.cache.Set(ctx, key, result, 0); err != nil {
		s.logger.Debug("availability cache write skipped", zap.Error(err))
	}
	return result, nil
}

// Week computes the seven days starting at the given date.
func (s *AvailabilityService) Week(ctx context.Context, start models.CivilDate, query dto.AvailabilityQuery) (*dto.RangeAvailability, error) {
	return s.Range(ctx, start, start.AddDays(6), query)
}

// Month computes every day of the date's calendar month.
func (s *AvailabilityService) Month(ctx context.Context, anchor models.CivilDate, query dto.AvailabilityQuery) (*dto.RangeAvailability, error) {
	first := models.CivilDate{Year: anchor.Year, Month: anchor.Month, Day: 1}
	last := first.AddDays(32)
	last = models.CivilDate{Year: last.Year, Month: last.Month, Day: 1}.AddDays(-1)
	return s.Range(ctx, first, last, query)
}

// DaySheet renders the full slot grid for one provider on one date.
func (s *AvailabilityService) DaySheet(ctx context.Context, providerID string, date models.CivilDate) (*dto.DaySheet, error) {
	provider, err := s.providers.FindByID(ctx, providerID)
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
	snap, err := s.loadSnapshot(ctx, settings, date, date)
	if err != nil {
		return nil, err
	}

	sheet := &dto.DaySheet{
		ProviderID: provider.ID,
		Date:       date,
		OnVacation: onVacation(provider.ID, date, snap.vacations),
	}
	byMinute := make(map[int]models.Appointment)
	for _, a := range snap.providerAppointmentsOn(provider.ID, date) {
		local := a.StartAt.In(s.loc)
		byMinute[local.Hour()*60+local.Minute()] = a
	}
	for _, minute := range buildTimeGrid(settings) {
		slot := dto.DaySheetSlot{
			Time:    models.ClockMinute(minute),
			TimeOff: inTimeOff(provider.ID, date, minute, snap.timeOffs),
		}
		if a, ok := byMinute[minute]; ok {
			id := a.ID
			slot.Taken = true
			slot.AppointmentID = &id
			slot.FileNo = a.FileNo
		}
		sheet.Slots = append(sheet.Slots, slot)
	}
	return sheet, nil
}

func (s *AvailabilityService) loadSnapshot(ctx context.Context, settings models.SchedulingSettings, from, to models.CivilDate) (*scheduleSnapshot, error) {
	providers, err := s.providers.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list providers")
	}
	appointments, err := s.appointments.ListBetween(ctx, from.At(0, s.loc), to.AddDays(1).At(0, s.loc))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	vacations, err := s.vacations.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vacations")
	}
	timeOffs, err := s.timeOffs.ListBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time off")
	}
	extras, err := s.extras.ListBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list extra capacity")
	}
	return newScheduleSnapshot(providers, appointments, vacations, timeOffs, extras, settings, s.loc), nil
}

// dayAvailability is the single per-day computation behind every view.
// Capacity counts base daily capacity plus extra grants; the urgent
// reserve is excluded so ordinary callers never see phantom slots.
func dayAvailability(snap *scheduleSnapshot, date models.CivilDate, query dto.AvailabilityQuery) dto.DayAvailability {
	day := dto.DayAvailability{Date: date}

	if v := globalVacationFor(date, snap.vacations); v != nil {
		day.GlobalVacation = true
		day.GlobalVacationDescription = v.Description
		return day
	}
	if blockedWeekday(date, snap.settings) {
		return day
	}

	for _, p := range snap.providers {
		if query.ProviderID != "" && p.ID != query.ProviderID {
			continue
		}
		if query.Specialty != "" && query.Specialty != models.SpecialtyAll && p.Specialty != query.Specialty {
			continue
		}
		if !p.WorksOn(date.Weekday()) {
			continue
		}
		if onVacation(p.ID, date, snap.vacations) {
			continue
		}
		dayAppts := snap.providerAppointmentsOn(p.ID, date)
		capacity := effectiveCapacity(p, date, snap.extras, snap.settings, false, dayAppts)
		day.TotalCapacity += capacity
		day.BookedCount += len(dayAppts)
		day.WorkingProviders = append(day.WorkingProviders, dto.ProviderSummary{
			ID:        p.ID,
			Name:      p.Name,
			Specialty: p.Specialty,
		})
	}
	if day.TotalCapacity > day.BookedCount {
		day.AvailableSlots = day.TotalCapacity - day.BookedCount
	}
	return day
}
