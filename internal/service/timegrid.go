package service

import (
	"math"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
)

// hourToMinute converts a fractional hour (12.5 = 12:30) to a minute of day.
func hourToMinute(hour float64) int {
	return int(math.Round(hour * 60))
}

// buildTimeGrid expands the configured morning and afternoon sessions into
// an ordered, deduplicated list of slot-start minutes. Each window is
// half-open: [start, end). Sessions configured to overlap contribute each
// minute once, in first-seen order. An inverted or empty window contributes
// nothing, and a non-positive slot duration yields an empty grid rather
// than looping.
func buildTimeGrid(settings models.SchedulingSettings) []int {
	step := settings.SlotDurationMinutes
	if step <= 0 {
		return nil
	}

	var grid []int
	seen := make(map[int]bool)
	appendWindow := func(startHour, endHour float64) {
		start := hourToMinute(startHour)
		end := hourToMinute(endHour)
		for minute := start; minute < end; minute += step {
			if seen[minute] {
				continue
			}
			seen[minute] = true
			grid = append(grid, minute)
		}
	}

	appendWindow(settings.MorningStartHour, settings.MorningEndHour)
	appendWindow(settings.AfternoonStartHour, settings.AfternoonEndHour)
	return grid
}

// gridWindow resolves a time-of-day preference into the [from, to) minute
// sub-window the search may use. An empty preference spans the whole day.
func gridWindow(settings models.SchedulingSettings, timeOfDay string) (int, int) {
	switch timeOfDay {
	case dto.TimeOfDayMorning:
		return hourToMinute(settings.MorningStartHour), hourToMinute(settings.MorningEndHour)
	case dto.TimeOfDayAfternoon:
		return hourToMinute(settings.AfternoonStartHour), hourToMinute(settings.AfternoonEndHour)
	default:
		return 0, 24 * 60
	}
}

// filterGrid retains the grid entries inside the [from, to) window,
// preserving order.
func filterGrid(grid []int, from, to int) []int {
	var result []int
	for _, minute := range grid {
		if minute >= from && minute < to {
			result = append(result, minute)
		}
	}
	return result
}
