package models

import (
	"time"

	"github.com/lib/pq"
)

// Specialty identifies a clinical specialty. SpecialtyAll is a filter
// wildcard only and is never assigned to a provider record.
type Specialty string

const (
	SpecialtyAll       Specialty = "ALL"
	SpecialtyMSK       Specialty = "MSK"
	SpecialtyNeuro     Specialty = "NEURO"
	SpecialtyPTService Specialty = "PT_SERVICE"
)

// ValidProviderSpecialty reports whether s may be stored on a provider.
func ValidProviderSpecialty(s Specialty) bool {
	switch s {
	case SpecialtyMSK, SpecialtyNeuro, SpecialtyPTService:
		return true
	default:
		return false
	}
}

// Provider represents a therapist with a recurring weekly clinic schedule.
type Provider struct {
	ID                 string        `db:"id" json:"id"`
	Name               string        `db:"name" json:"name"`
	Slug               string        `db:"slug" json:"slug"`
	Specialty          Specialty     `db:"specialty" json:"specialty"`
	Days               pq.Int64Array `db:"days" json:"days"`
	DailyCapacity      int           `db:"daily_capacity" json:"daily_capacity"`
	NewPatientProvider bool          `db:"new_patient_provider" json:"new_patient_provider"`
	NewPatientQuota    int           `db:"new_patient_quota" json:"new_patient_quota"`
	Active             bool          `db:"active" json:"active"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updated_at"`
}

// WorksOn reports whether the provider holds clinic on the given weekday
// (0=Sunday through 6=Saturday).
func (p Provider) WorksOn(weekday int) bool {
	for _, day := range p.Days {
		if int(day) == weekday {
			return true
		}
	}
	return false
}

// ProviderFilter captures filtering options for listing providers.
type ProviderFilter struct {
	Specialty Specialty
	Active    *bool
	Search    string
	Page      int
	PageSize  int
}

// Pagination describes the position of a listing response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
