package models

import "time"

// AuditAction identifies the kind of mutation being recorded.
type AuditAction string

const (
	AuditBookingCreate   AuditAction = "booking_create"
	AuditBookingCancel   AuditAction = "booking_cancel"
	AuditEmergencyCreate AuditAction = "emergency_create"
	AuditSettingsChange  AuditAction = "settings_change"
)

// AuditEntry is one append-only record of a scheduler mutation. Emergency
// bookings carry their own action so capacity bypasses stay visible apart
// from routine bookings.
type AuditEntry struct {
	ID           string      `db:"id" json:"id"`
	Action       AuditAction `db:"action" json:"action"`
	FileNo       string      `db:"file_no" json:"file_no"`
	ProviderID   *string     `db:"provider_id" json:"provider_id,omitempty"`
	ProviderName string      `db:"provider_name" json:"provider_name"`
	StartAt      *time.Time  `db:"start_at" json:"start_at,omitempty"`
	EndAt        *time.Time  `db:"end_at" json:"end_at,omitempty"`
	Details      string      `db:"details" json:"details"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit listings.
type AuditFilter struct {
	Action   AuditAction
	FileNo   string
	Page     int
	PageSize int
}
