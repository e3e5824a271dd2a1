package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

func civil(year int, month time.Month, day int) models.CivilDate {
	return models.CivilDate{Year: year, Month: month, Day: day}
}

func TestOnVacation(t *testing.T) {
	pid := "p1"
	vacations := []models.Vacation{
		{ID: "v1", ProviderID: &pid, StartDate: civil(2026, 3, 2), EndDate: civil(2026, 3, 4)},
	}

	assert.True(t, onVacation("p1", civil(2026, 3, 2), vacations))
	assert.True(t, onVacation("p1", civil(2026, 3, 4), vacations))
	assert.False(t, onVacation("p1", civil(2026, 3, 5), vacations))
	assert.False(t, onVacation("p2", civil(2026, 3, 3), vacations))
}

func TestGlobalVacationCoversEveryProvider(t *testing.T) {
	vacations := []models.Vacation{
		{ID: "v1", StartDate: civil(2026, 3, 3), EndDate: civil(2026, 3, 3), Description: "national holiday"},
	}

	assert.True(t, onVacation("p1", civil(2026, 3, 3), vacations))
	assert.True(t, onVacation("p2", civil(2026, 3, 3), vacations))

	global := globalVacationFor(civil(2026, 3, 3), vacations)
	if assert.NotNil(t, global) {
		assert.Equal(t, "national holiday", global.Description)
	}
	assert.Nil(t, globalVacationFor(civil(2026, 3, 4), vacations))
}

func TestGlobalVacationForIgnoresProviderVacations(t *testing.T) {
	pid := "p1"
	vacations := []models.Vacation{
		{ID: "v1", ProviderID: &pid, StartDate: civil(2026, 3, 3), EndDate: civil(2026, 3, 3)},
	}

	assert.Nil(t, globalVacationFor(civil(2026, 3, 3), vacations))
}

func TestInTimeOffHalfOpenWindow(t *testing.T) {
	timeOffs := []models.TimeOff{
		{ID: "t1", ProviderID: "p1", Date: civil(2026, 3, 2), StartTime: 540, EndTime: 600},
	}

	assert.True(t, inTimeOff("p1", civil(2026, 3, 2), 540, timeOffs))
	assert.True(t, inTimeOff("p1", civil(2026, 3, 2), 599, timeOffs))
	assert.False(t, inTimeOff("p1", civil(2026, 3, 2), 600, timeOffs))
	assert.False(t, inTimeOff("p1", civil(2026, 3, 3), 540, timeOffs))
	assert.False(t, inTimeOff("p2", civil(2026, 3, 2), 540, timeOffs))
}

func TestBlockedWeekday(t *testing.T) {
	settings := models.SchedulingSettings{BlockFridays: true, BlockSaturdays: true}

	// 2026-03-06 is a Friday, 2026-03-07 a Saturday, 2026-03-08 a Sunday.
	assert.True(t, blockedWeekday(civil(2026, 3, 6), settings))
	assert.True(t, blockedWeekday(civil(2026, 3, 7), settings))
	assert.False(t, blockedWeekday(civil(2026, 3, 8), settings))

	settings.BlockFridays = false
	assert.False(t, blockedWeekday(civil(2026, 3, 6), settings))
	settings.BlockSaturdays = false
	assert.False(t, blockedWeekday(civil(2026, 3, 7), settings))
}

func TestExtraCapacityFor(t *testing.T) {
	extras := []models.ExtraCapacity{
		{ID: "e1", ProviderID: "p1", Date: civil(2026, 3, 2), Slots: 3},
	}

	assert.Equal(t, 3, extraCapacityFor("p1", civil(2026, 3, 2), extras))
	assert.Equal(t, 0, extraCapacityFor("p1", civil(2026, 3, 3), extras))
	assert.Equal(t, 0, extraCapacityFor("p2", civil(2026, 3, 2), extras))
}

func TestEffectiveCapacity(t *testing.T) {
	provider := models.Provider{ID: "p1", DailyCapacity: 10}
	date := civil(2026, 3, 2)
	settings := models.SchedulingSettings{UrgentReserve: true}
	extras := []models.ExtraCapacity{{ProviderID: "p1", Date: date, Slots: 2}}

	// Base plus extra grant for a non-urgent request.
	assert.Equal(t, 12, effectiveCapacity(provider, date, extras, settings, false, nil))

	// Urgent-class requests see one reserve slot on top.
	assert.Equal(t, 13, effectiveCapacity(provider, date, extras, settings, true, nil))

	// A booked urgent appointment consumes the reserve.
	booked := []models.Appointment{{Type: models.TypeUrgent}}
	assert.Equal(t, 12, effectiveCapacity(provider, date, extras, settings, true, booked))

	// Normal appointments leave the reserve open.
	booked = []models.Appointment{{Type: models.TypeNormal}, {Type: models.TypeChronic}}
	assert.Equal(t, 13, effectiveCapacity(provider, date, extras, settings, true, booked))

	// With the reserve disabled nothing is added.
	settings.UrgentReserve = false
	assert.Equal(t, 12, effectiveCapacity(provider, date, extras, settings, true, nil))
}

func TestNewPatientQuotaOpen(t *testing.T) {
	provider := models.Provider{ID: "p1", NewPatientProvider: true, NewPatientQuota: 2}

	booked := []models.Appointment{{Type: models.TypeNormal}}
	assert.True(t, newPatientQuotaOpen(provider, models.TypeNormal, booked))

	booked = append(booked, models.Appointment{Type: models.TypeChronic})
	assert.False(t, newPatientQuotaOpen(provider, models.TypeNormal, booked))
	assert.False(t, newPatientQuotaOpen(provider, models.TypeChronic, booked))

	// Urgent-class requests are outside the new-patient category.
	assert.True(t, newPatientQuotaOpen(provider, models.TypeUrgent, booked))
	assert.True(t, newPatientQuotaOpen(provider, models.TypeSemiUrgent, booked))

	// Urgent appointments already on the books do not count against the
	// quota either.
	booked = []models.Appointment{{Type: models.TypeUrgent}, {Type: models.TypeUrgent}}
	assert.True(t, newPatientQuotaOpen(provider, models.TypeNormal, booked))

	// Providers without the flag are never limited.
	unflagged := models.Provider{ID: "p2"}
	assert.True(t, newPatientQuotaOpen(unflagged, models.TypeNormal, booked))
}
