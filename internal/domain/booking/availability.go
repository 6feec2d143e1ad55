package booking

import (
	"time"

	"github.com/agendalivre/agenda-api/internal/models"
)

// SlotStatus classifies a requested slot for a professional on a date.
type SlotStatus string

const (
	SlotOpen            SlotStatus = "open"
	SlotFull            SlotStatus = "full"
	SlotOutsideSchedule SlotStatus = "outside_schedule"
	SlotInBreak         SlotStatus = "in_break"
)

// LocateSlot checks whether the requested start time is one of the
// resolver's candidates and returns the covering window. When it is not,
// the status says which constraint failed: a slot overlapping a window's
// break is SlotInBreak; anything else (no window, misaligned time, window
// overrun, past time on the current date) is SlotOutsideSchedule.
//
// Capacity is not considered here; callers compare the bucket's active
// appointment count against the returned window.
func LocateSlot(windows []models.Schedule, durationMinutes int, date time.Time, startHM string, now time.Time) (*models.Schedule, SlotStatus) {
	if durationMinutes <= 0 {
		return nil, SlotOutsideSchedule
	}

	start, err := time.Parse(clockLayout, startHM)
	if err != nil {
		return nil, SlotOutsideSchedule
	}
	slotStart := time.Date(
		date.Year(), date.Month(), date.Day(),
		start.Hour(), start.Minute(), 0, 0,
		date.Location(),
	)
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

	inBreak := false

	for i := range windows {
		w := &windows[i]
		if !w.IsActive || w.Weekday != int(date.Weekday()) {
			continue
		}

		windowStart := parseHM(date, w.StartTime)
		windowEnd := parseHM(date, w.EndTime)

		if slotStart.Before(windowStart) || slotEnd.After(windowEnd) {
			continue
		}

		// Candidates start on the duration grid anchored at window start.
		offset := slotStart.Sub(windowStart)
		if offset%(time.Duration(durationMinutes)*time.Minute) != 0 {
			continue
		}

		if w.BreakStart != "" && w.BreakEnd != "" {
			breakStart := parseHM(date, w.BreakStart)
			breakEnd := parseHM(date, w.BreakEnd)
			if slotStart.Before(breakEnd) && slotEnd.After(breakStart) {
				inBreak = true
				continue
			}
		}

		if sameDay(date, now) && !slotStart.After(now) {
			continue
		}

		return w, SlotOpen
	}

	if inBreak {
		return nil, SlotInBreak
	}
	return nil, SlotOutsideSchedule
}

// Classify resolves the final slot status once the bucket's active
// appointment count is known.
func Classify(windows []models.Schedule, durationMinutes int, date time.Time, startHM string, now time.Time, activeCount int64) SlotStatus {
	w, status := LocateSlot(windows, durationMinutes, date, startHM, now)
	if w == nil {
		return status
	}
	if activeCount >= int64(Capacity(w)) {
		return SlotFull
	}
	return SlotOpen
}

// Capacity returns the window's per-slot limit, defaulting to 1 for rows
// written before the column existed.
func Capacity(w *models.Schedule) int {
	if w.MaxAppointmentsPerSlot < 1 {
		return 1
	}
	return w.MaxAppointmentsPerSlot
}
