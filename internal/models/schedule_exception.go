package models

import "time"

// Vacation is a full-day unavailability window over an inclusive date
// range. A nil ProviderID marks a global clinic closure applying to every
// provider.
type Vacation struct {
	ID          string    `db:"id" json:"id"`
	StartDate   CivilDate `db:"start_date" json:"start_date"`
	EndDate     CivilDate `db:"end_date" json:"end_date"`
	ProviderID  *string   `db:"provider_id" json:"provider_id,omitempty"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Global reports whether the vacation closes the whole clinic.
func (v Vacation) Global() bool {
	return v.ProviderID == nil || *v.ProviderID == ""
}

// Covers reports whether the vacation applies to the provider on the date.
func (v Vacation) Covers(providerID string, date CivilDate) bool {
	if date.Before(v.StartDate) || date.After(v.EndDate) {
		return false
	}
	return v.Global() || *v.ProviderID == providerID
}

// TimeOff is a partial-day unavailability window, always provider-specific.
// The window is half-open: [StartTime, EndTime).
type TimeOff struct {
	ID          string      `db:"id" json:"id"`
	ProviderID  string      `db:"provider_id" json:"provider_id"`
	Date        CivilDate   `db:"date" json:"date"`
	StartTime   ClockMinute `db:"start_minute" json:"start_time"`
	EndTime     ClockMinute `db:"end_minute" json:"end_time"`
	Description string      `db:"description" json:"description"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// Blocks reports whether the window covers the given minute of the day for
// the provider.
func (t TimeOff) Blocks(providerID string, date CivilDate, minute int) bool {
	if t.ProviderID != providerID || t.Date.Compare(date) != 0 {
		return false
	}
	return minute >= t.StartTime.Minutes() && minute < t.EndTime.Minutes()
}

// ExtraCapacity grants additional slots to one provider on one date.
type ExtraCapacity struct {
	ID         string    `db:"id" json:"id"`
	ProviderID string    `db:"provider_id" json:"provider_id"`
	Date       CivilDate `db:"date" json:"date"`
	Slots      int       `db:"slots" json:"slots"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
