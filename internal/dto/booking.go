package dto

import "github.com/aseerhc/physio-booking-api/internal/models"

// Time-of-day preferences accepted on booking requests.
const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
)

// BookingRequest asks the slot finder for the first acceptable open slot.
type BookingRequest struct {
	FileNo     string                 `json:"fileNo" validate:"required"`
	Type       models.AppointmentType `json:"type" validate:"required,appointment_type"`
	Specialty  models.Specialty       `json:"specialty"`
	TimeOfDay  string                 `json:"timeOfDay" validate:"omitempty,oneof=morning afternoon"`
	ProviderID string                 `json:"providerId"`
}

// ManualBookingRequest books an explicit provider/date/time directly. The
// same occupancy, vacation, time-off and capacity rules apply.
type ManualBookingRequest struct {
	FileNo     string                 `json:"fileNo" validate:"required"`
	ProviderID string                 `json:"providerId" validate:"required"`
	Date       models.CivilDate       `json:"date"`
	StartTime  models.ClockMinute     `json:"startTime"`
	Type       models.AppointmentType `json:"type" validate:"required,appointment_type"`
}

// EmergencyBookingRequest invokes the over-capacity escape hatch: an urgent
// case for a specific specialty placed past all capacity ceilings within a
// very short horizon.
type EmergencyBookingRequest struct {
	FileNo    string           `json:"fileNo" validate:"required"`
	Specialty models.Specialty `json:"specialty" validate:"required"`
}

// BookingResult is the slot finder's outcome. Found=false with a message is
// the normal "horizon exhausted" control flow, not an error.
type BookingResult struct {
	Found        bool                `json:"found"`
	Message      string              `json:"message,omitempty"`
	Appointment  *models.Appointment `json:"appointment,omitempty"`
	ProviderName string              `json:"providerName,omitempty"`
}

// CancelResult reports whether a cancellation removed anything. Cancelling
// an already-absent id is a no-op.
type CancelResult struct {
	Removed bool `json:"removed"`
}
