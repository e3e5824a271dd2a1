package service

import (
	"time"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// scheduleSnapshot is an immutable view of every collection the slot finder
// and the availability aggregator consult, loaded once per search so the
// result is a pure function of the snapshot plus the request.
type scheduleSnapshot struct {
	providers    []models.Provider
	appointments []models.Appointment
	vacations    []models.Vacation
	timeOffs     []models.TimeOff
	extras       []models.ExtraCapacity
	settings     models.SchedulingSettings
	loc          *time.Location

	byProviderDay map[providerDayKey][]models.Appointment
	byDay         map[models.CivilDate][]models.Appointment
}

type providerDayKey struct {
	providerID string
	date       models.CivilDate
}

func newScheduleSnapshot(
	providers []models.Provider,
	appointments []models.Appointment,
	vacations []models.Vacation,
	timeOffs []models.TimeOff,
	extras []models.ExtraCapacity,
	settings models.SchedulingSettings,
	loc *time.Location,
) *scheduleSnapshot {
	snap := &scheduleSnapshot{
		providers:     providers,
		appointments:  appointments,
		vacations:     vacations,
		timeOffs:      timeOffs,
		extras:        extras,
		settings:      settings,
		loc:           loc,
		byProviderDay: make(map[providerDayKey][]models.Appointment),
		byDay:         make(map[models.CivilDate][]models.Appointment),
	}
	for _, a := range appointments {
		date := a.Date(loc)
		key := providerDayKey{providerID: a.ProviderID, date: date}
		snap.byProviderDay[key] = append(snap.byProviderDay[key], a)
		snap.byDay[date] = append(snap.byDay[date], a)
	}
	return snap
}

// providerAppointmentsOn returns the provider's appointments on the date.
func (s *scheduleSnapshot) providerAppointmentsOn(providerID string, date models.CivilDate) []models.Appointment {
	return s.byProviderDay[providerDayKey{providerID: providerID, date: date}]
}

// appointmentsOn returns every appointment on the date.
func (s *scheduleSnapshot) appointmentsOn(date models.CivilDate) []models.Appointment {
	return s.byDay[date]
}

// slotTaken reports whether the provider already holds an appointment
// starting at the exact instant.
func (s *scheduleSnapshot) slotTaken(providerID string, startAt time.Time) bool {
	date := models.CivilDateOf(startAt.In(s.loc))
	for _, a := range s.providerAppointmentsOn(providerID, date) {
		if a.StartAt.Equal(startAt) {
			return true
		}
	}
	return false
}
