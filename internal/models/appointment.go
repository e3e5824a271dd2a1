package models

import "time"

// AppointmentType classifies a booking's urgency. TypeNearest is a
// request-time alias meaning "any type, soonest"; it collapses to
// TypeNormal before anything is persisted.
type AppointmentType string

const (
	TypeNormal     AppointmentType = "normal"
	TypeSemiUrgent AppointmentType = "semi_urgent"
	TypeUrgent     AppointmentType = "urgent"
	TypeChronic    AppointmentType = "chronic"
	TypeNearest    AppointmentType = "nearest"
)

// ValidRequestType reports whether t may appear on a booking request.
func ValidRequestType(t AppointmentType) bool {
	switch t {
	case TypeNormal, TypeSemiUrgent, TypeUrgent, TypeChronic, TypeNearest:
		return true
	default:
		return false
	}
}

// Resolve collapses the nearest alias to normal. Every capacity and
// persistence decision keys off the resolved type.
func (t AppointmentType) Resolve() AppointmentType {
	if t == TypeNearest {
		return TypeNormal
	}
	return t
}

// UrgentClass reports whether the resolved type competes for the urgent
// reserve slot.
func (t AppointmentType) UrgentClass() bool {
	resolved := t.Resolve()
	return resolved == TypeUrgent || resolved == TypeSemiUrgent
}

// NewPatientCategory reports whether the resolved type counts against a
// provider's new-patient daily quota.
func (t AppointmentType) NewPatientCategory() bool {
	resolved := t.Resolve()
	return resolved == TypeNormal || resolved == TypeChronic
}

// Appointment is a booked fixed-duration visit with a provider.
type Appointment struct {
	ID         string          `db:"id" json:"id"`
	FileNo     string          `db:"file_no" json:"file_no"`
	ProviderID string          `db:"provider_id" json:"provider_id"`
	StartAt    time.Time       `db:"start_at" json:"start_at"`
	EndAt      time.Time       `db:"end_at" json:"end_at"`
	Type       AppointmentType `db:"type" json:"type"`
	Emergency  bool            `db:"emergency" json:"emergency"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Date returns the appointment's calendar date in the given location.
func (a Appointment) Date(loc *time.Location) CivilDate {
	return CivilDateOf(a.StartAt.In(loc))
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	ProviderID string
	FileNo     string
	From       *CivilDate
	To         *CivilDate
	Page       int
	PageSize   int
}
