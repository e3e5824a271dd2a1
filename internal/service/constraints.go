package service

import (
	"github.com/aseerhc/physio-booking-api/internal/models"
)

// onVacation reports whether the provider is off on the date, either through
// a personal vacation or a global clinic closure. Comparisons are calendar
// dates, never instants.
func onVacation(providerID string, date models.CivilDate, vacations []models.Vacation) bool {
	for _, v := range vacations {
		if v.Covers(providerID, date) {
			return true
		}
	}
	return false
}

// globalVacationFor returns the global closure covering the date, if any.
func globalVacationFor(date models.CivilDate, vacations []models.Vacation) *models.Vacation {
	for i := range vacations {
		if vacations[i].Global() && vacations[i].Covers("", date) {
			return &vacations[i]
		}
	}
	return nil
}

// inTimeOff reports whether the minute of day falls inside a declared
// time-off window for the provider on the date.
func inTimeOff(providerID string, date models.CivilDate, minute int, timeOffs []models.TimeOff) bool {
	for _, t := range timeOffs {
		if t.Blocks(providerID, date, minute) {
			return true
		}
	}
	return false
}

// blockedWeekday reports whether the clinic weekend settings rule the date
// out entirely. 5=Friday, 6=Saturday.
func blockedWeekday(date models.CivilDate, settings models.SchedulingSettings) bool {
	switch date.Weekday() {
	case 5:
		return settings.BlockFridays
	case 6:
		return settings.BlockSaturdays
	default:
		return false
	}
}

// extraCapacityFor returns the extra slot grant for the provider on the
// date, or zero.
func extraCapacityFor(providerID string, date models.CivilDate, extras []models.ExtraCapacity) int {
	for _, e := range extras {
		if e.ProviderID == providerID && e.Date.Compare(date) == 0 {
			return e.Slots
		}
	}
	return 0
}

// effectiveCapacity computes the provider's slot ceiling on the date: base
// daily capacity plus any extra grant, plus one reserved slot for
// urgent-class requests while that reserve is still unconsumed. The reserve
// is considered consumed once an urgent appointment is already booked for
// the provider that day.
func effectiveCapacity(
	provider models.Provider,
	date models.CivilDate,
	extras []models.ExtraCapacity,
	settings models.SchedulingSettings,
	urgentClass bool,
	providerDayAppointments []models.Appointment,
) int {
	capacity := provider.DailyCapacity + extraCapacityFor(provider.ID, date, extras)
	if settings.UrgentReserve && urgentClass && !urgentReserveConsumed(providerDayAppointments) {
		capacity++
	}
	return capacity
}

func urgentReserveConsumed(providerDayAppointments []models.Appointment) bool {
	for _, a := range providerDayAppointments {
		if a.Type == models.TypeUrgent {
			return true
		}
	}
	return false
}

// newPatientQuotaOpen applies the independent new-patient ceiling: for
// designated providers, requests in the new-patient category must stay
// under the provider's daily quota. Requests outside the category (and
// providers without the flag) always pass.
func newPatientQuotaOpen(provider models.Provider, requestType models.AppointmentType, providerDayAppointments []models.Appointment) bool {
	if !provider.NewPatientProvider || !requestType.NewPatientCategory() {
		return true
	}
	count := 0
	for _, a := range providerDayAppointments {
		if a.Type.NewPatientCategory() {
			count++
		}
	}
	return count < provider.NewPatientQuota
}
