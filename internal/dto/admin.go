package dto

import (
	"github.com/lib/pq"

	"github.com/aseerhc/physio-booking-api/internal/models"
)

// ProviderRequest creates or replaces a therapist record.
type ProviderRequest struct {
	Name               string           `json:"name" validate:"required"`
	Specialty          models.Specialty `json:"specialty" validate:"required"`
	Days               pq.Int64Array    `json:"days" validate:"required,min=1"`
	DailyCapacity      int              `json:"dailyCapacity" validate:"min=0"`
	NewPatientProvider bool             `json:"newPatientProvider"`
	NewPatientQuota    int              `json:"newPatientQuota"`
	Active             *bool            `json:"active,omitempty"`
}

// VacationRequest declares a full-day closure. Omitting providerId makes
// the closure global.
type VacationRequest struct {
	ProviderID  *string          `json:"providerId,omitempty"`
	StartDate   models.CivilDate `json:"startDate"`
	EndDate     models.CivilDate `json:"endDate"`
	Description string           `json:"description"`
}

// TimeOffRequest declares a partial-day block for one provider.
type TimeOffRequest struct {
	ProviderID  string             `json:"providerId" validate:"required"`
	Date        models.CivilDate   `json:"date"`
	StartTime   models.ClockMinute `json:"startTime"`
	EndTime     models.ClockMinute `json:"endTime"`
	Description string             `json:"description"`
}

// ExtraCapacityRequest grants additional slots for one provider-date.
type ExtraCapacityRequest struct {
	ProviderID string           `json:"providerId" validate:"required"`
	Date       models.CivilDate `json:"date"`
	Slots      int              `json:"slots" validate:"required,min=1"`
}

// SettingsRequest replaces the scheduler tuning row.
type SettingsRequest struct {
	UrgentDaysAhead     int               `json:"urgentDaysAhead" validate:"min=0"`
	SemiUrgentDaysAhead int               `json:"semiUrgentDaysAhead" validate:"min=0"`
	NormalDaysAhead     int               `json:"normalDaysAhead" validate:"min=0"`
	ChronicWeeksAhead   int               `json:"chronicWeeksAhead" validate:"min=0"`
	EmergencyDaysAhead  int               `json:"emergencyDaysAhead" validate:"min=0"`
	BlockFridays        bool              `json:"blockFridays"`
	BlockSaturdays      bool              `json:"blockSaturdays"`
	MorningStartHour    float64           `json:"morningStartHour"`
	MorningEndHour      float64           `json:"morningEndHour"`
	AfternoonStartHour  float64           `json:"afternoonStartHour"`
	AfternoonEndHour    float64           `json:"afternoonEndHour"`
	SlotDurationMinutes int               `json:"slotDurationMinutes" validate:"required,min=5"`
	UrgentReserve       bool              `json:"urgentReserve"`
	AutoDistribute      bool              `json:"autoDistribute"`
	BookingLocked       bool              `json:"bookingLocked"`
	BookingLockUntil    *models.CivilDate `json:"bookingLockUntil,omitempty"`
}
