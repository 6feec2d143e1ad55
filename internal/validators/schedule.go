package validators

import (
	"fmt"
	"time"

	"github.com/agendalivre/agenda-api/internal/models"
)

const clockLayout = "15:04"

func parseClock(hm string) (time.Time, error) {
	return time.Parse(clockLayout, hm)
}

// ValidateWindow checks one schedule window in isolation: times parse,
// start < end, capacity at least 1, and a break (when present) strictly
// inside the window.
func ValidateWindow(w *models.Schedule) error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("weekday must be between 0 and 6")
	}

	start, err := parseClock(w.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time %q", w.StartTime)
	}
	end, err := parseClock(w.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time %q", w.EndTime)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time must be before end_time")
	}

	if w.MaxAppointmentsPerSlot < 1 {
		return fmt.Errorf("max_appointments_per_slot must be at least 1")
	}

	hasBreakStart := w.BreakStart != ""
	hasBreakEnd := w.BreakEnd != ""
	if hasBreakStart != hasBreakEnd {
		return fmt.Errorf("break_start and break_end must be set together")
	}
	if hasBreakStart {
		bs, err := parseClock(w.BreakStart)
		if err != nil {
			return fmt.Errorf("invalid break_start %q", w.BreakStart)
		}
		be, err := parseClock(w.BreakEnd)
		if err != nil {
			return fmt.Errorf("invalid break_end %q", w.BreakEnd)
		}
		if !bs.Before(be) {
			return fmt.Errorf("break_start must be before break_end")
		}
		if bs.Before(start) || be.After(end) {
			return fmt.Errorf("break must be contained in the window")
		}
	}

	return nil
}

// ValidateWindows validates each window and rejects overlapping windows on
// the same weekday.
func ValidateWindows(windows []models.Schedule) error {
	for i := range windows {
		if err := ValidateWindow(&windows[i]); err != nil {
			return err
		}
	}

	for i := range windows {
		for j := i + 1; j < len(windows); j++ {
			a, b := &windows[i], &windows[j]
			if a.Weekday != b.Weekday {
				continue
			}
			// HH:MM strings compare correctly as text
			if a.StartTime < b.EndTime && b.StartTime < a.EndTime {
				return fmt.Errorf("windows %s-%s and %s-%s overlap on weekday %d",
					a.StartTime, a.EndTime, b.StartTime, b.EndTime, a.Weekday)
			}
		}
	}

	return nil
}
