package dto

import "github.com/aseerhc/physio-booking-api/internal/models"

// ProviderSummary is the slim provider shape embedded in availability
// responses.
type ProviderSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Specialty models.Specialty `json:"specialty"`
}

// DayAvailability is the single source of truth for "how full is this day".
// Day, week and month views all render from this exact shape.
type DayAvailability struct {
	Date                      models.CivilDate  `json:"date"`
	BookedCount               int               `json:"bookedCount"`
	AvailableSlots            int               `json:"availableSlots"`
	TotalCapacity             int               `json:"totalCapacity"`
	WorkingProviders          []ProviderSummary `json:"workingProviders"`
	GlobalVacation            bool              `json:"globalVacation"`
	GlobalVacationDescription string            `json:"globalVacationDescription,omitempty"`
}

// AvailabilityQuery narrows an availability request to one provider or one
// specialty. Zero values mean "all providers".
type AvailabilityQuery struct {
	Date       models.CivilDate
	ProviderID string
	Specialty  models.Specialty
}

// RangeAvailability is a contiguous run of per-day availability.
type RangeAvailability struct {
	From models.CivilDate  `json:"from"`
	To   models.CivilDate  `json:"to"`
	Days []DayAvailability `json:"days"`
}

// DaySheetSlot is one grid entry of a provider's day sheet.
type DaySheetSlot struct {
	Time          models.ClockMinute `json:"time"`
	Taken         bool               `json:"taken"`
	TimeOff       bool               `json:"timeOff"`
	AppointmentID *string            `json:"appointmentId,omitempty"`
	FileNo        string             `json:"fileNo,omitempty"`
}

// DaySheet is the full slot grid for one provider on one date, feeding the
// per-provider day view.
type DaySheet struct {
	ProviderID string           `json:"providerId"`
	Date       models.CivilDate `json:"date"`
	OnVacation bool             `json:"onVacation"`
	Slots      []DaySheetSlot   `json:"slots"`
}
