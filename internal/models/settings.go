package models

import "time"

// SchedulingSettings is the single persisted row of scheduler tuning. The
// search horizons are per urgency type; session bounds are fractional hours
// (12.5 = 12:30) so half-hour boundaries survive round-tripping.
type SchedulingSettings struct {
	UrgentDaysAhead     int        `db:"urgent_days_ahead" json:"urgent_days_ahead"`
	SemiUrgentDaysAhead int        `db:"semi_urgent_days_ahead" json:"semi_urgent_days_ahead"`
	NormalDaysAhead     int        `db:"normal_days_ahead" json:"normal_days_ahead"`
	ChronicWeeksAhead   int        `db:"chronic_weeks_ahead" json:"chronic_weeks_ahead"`
	EmergencyDaysAhead  int        `db:"emergency_days_ahead" json:"emergency_days_ahead"`
	BlockFridays        bool       `db:"block_fridays" json:"block_fridays"`
	BlockSaturdays      bool       `db:"block_saturdays" json:"block_saturdays"`
	MorningStartHour    float64    `db:"morning_start_hour" json:"morning_start_hour"`
	MorningEndHour      float64    `db:"morning_end_hour" json:"morning_end_hour"`
	AfternoonStartHour  float64    `db:"afternoon_start_hour" json:"afternoon_start_hour"`
	AfternoonEndHour    float64    `db:"afternoon_end_hour" json:"afternoon_end_hour"`
	SlotDurationMinutes int        `db:"slot_duration_minutes" json:"slot_duration_minutes"`
	UrgentReserve       bool       `db:"urgent_reserve" json:"urgent_reserve"`
	AutoDistribute      bool       `db:"auto_distribute" json:"auto_distribute"`
	BookingLocked       bool       `db:"booking_locked" json:"booking_locked"`
	BookingLockUntil    *CivilDate `db:"booking_lock_until" json:"booking_lock_until,omitempty"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// HorizonDays resolves the forward search horizon for a booking type.
func (s SchedulingSettings) HorizonDays(t AppointmentType) int {
	switch t.Resolve() {
	case TypeUrgent:
		return s.UrgentDaysAhead
	case TypeSemiUrgent:
		return s.SemiUrgentDaysAhead
	case TypeChronic:
		return s.ChronicWeeksAhead * 7
	default:
		return s.NormalDaysAhead
	}
}
