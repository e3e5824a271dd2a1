package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aseerhc/physio-booking-api/internal/models"
	"github.com/aseerhc/physio-booking-api/pkg/config"
)

// SettingsRepository manages the single scheduler settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs a SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `urgent_days_ahead, semi_urgent_days_ahead, normal_days_ahead, chronic_weeks_ahead,
	emergency_days_ahead, block_fridays, block_saturdays, morning_start_hour, morning_end_hour,
	afternoon_start_hour, afternoon_end_hour, slot_duration_minutes, urgent_reserve, auto_distribute,
	booking_locked, booking_lock_until, updated_at`

// Get returns the settings row.
func (r *SettingsRepository) Get(ctx context.Context) (models.SchedulingSettings, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduling_settings WHERE id = 1", settingsColumns)
	var settings models.SchedulingSettings
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		return models.SchedulingSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Update replaces the settings row.
func (r *SettingsRepository) Update(ctx context.Context, settings models.SchedulingSettings) error {
	const query = `
		UPDATE scheduling_settings
		SET urgent_days_ahead = $1, semi_urgent_days_ahead = $2, normal_days_ahead = $3,
		    chronic_weeks_ahead = $4, emergency_days_ahead = $5, block_fridays = $6,
		    block_saturdays = $7, morning_start_hour = $8, morning_end_hour = $9,
		    afternoon_start_hour = $10, afternoon_end_hour = $11, slot_duration_minutes = $12,
		    urgent_reserve = $13, auto_distribute = $14, booking_locked = $15,
		    booking_lock_until = $16, updated_at = NOW()
		WHERE id = 1`
	if _, err := r.db.ExecContext(ctx, query,
		settings.UrgentDaysAhead, settings.SemiUrgentDaysAhead, settings.NormalDaysAhead,
		settings.ChronicWeeksAhead, settings.EmergencyDaysAhead, settings.BlockFridays,
		settings.BlockSaturdays, settings.MorningStartHour, settings.MorningEndHour,
		settings.AfternoonStartHour, settings.AfternoonEndHour, settings.SlotDurationMinutes,
		settings.UrgentReserve, settings.AutoDistribute, settings.BookingLocked,
		settings.BookingLockUntil); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the settings row from configuration on first boot.
// An existing row is left untouched.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context, seed config.SchedulingConfig) error {
	const query = `
		INSERT INTO scheduling_settings (
			id, urgent_days_ahead, semi_urgent_days_ahead, normal_days_ahead, chronic_weeks_ahead,
			emergency_days_ahead, block_fridays, block_saturdays, morning_start_hour, morning_end_hour,
			afternoon_start_hour, afternoon_end_hour, slot_duration_minutes, urgent_reserve, auto_distribute,
			booking_locked
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE)
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query,
		seed.UrgentDaysAhead, seed.SemiUrgentDaysAhead, seed.NormalDaysAhead, seed.ChronicWeeksAhead,
		seed.EmergencyDaysAhead, seed.BlockFridays, seed.BlockSaturdays, seed.MorningStartHour,
		seed.MorningEndHour, seed.AfternoonStartHour, seed.AfternoonEndHour, seed.SlotDurationMinutes,
		seed.UrgentReserve, seed.AutoDistribute); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
