package booking

import (
	"sort"
	"time"

	"github.com/agendalivre/agenda-api/internal/models"
)

// Slot is one discrete bookable start time derived from a schedule window
// and a service duration.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const clockLayout = "15:04"

// parseHM anchors an "HH:MM" string on the given date, in the date's
// location. Schedule times are validated at write time, so a malformed
// value here collapses to midnight rather than erroring.
func parseHM(date time.Time, hm string) time.Time {
	t, _ := time.Parse(clockLayout, hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// WindowSlots walks one schedule window from start to end in steps of the
// service duration, dropping slots that would cross the break interval,
// overrun the window, or start in the past when date is today.
func WindowSlots(w *models.Schedule, durationMinutes int, date, now time.Time) []Slot {
	if !w.IsActive || w.Weekday != int(date.Weekday()) || durationMinutes <= 0 {
		return nil
	}

	windowStart := parseHM(date, w.StartTime)
	windowEnd := parseHM(date, w.EndTime)

	hasBreak := w.BreakStart != "" && w.BreakEnd != ""
	var breakStart, breakEnd time.Time
	if hasBreak {
		breakStart = parseHM(date, w.BreakStart)
		breakEnd = parseHM(date, w.BreakEnd)
	}

	step := time.Duration(durationMinutes) * time.Minute
	today := sameDay(date, now)

	var slots []Slot
	for cur := windowStart; !cur.Add(step).After(windowEnd); cur = cur.Add(step) {
		slotEnd := cur.Add(step)

		if hasBreak && cur.Before(breakEnd) && slotEnd.After(breakStart) {
			continue
		}

		if today && !cur.After(now) {
			continue
		}

		slots = append(slots, Slot{
			Start: cur.Format(clockLayout),
			End:   slotEnd.Format(clockLayout),
		})
	}

	return slots
}

// ResolveSlots concatenates the candidate slots of every window covering
// the date's weekday and returns them ordered by start time. The result is
// recomputed fresh on every call; nothing is cached here.
func ResolveSlots(windows []models.Schedule, durationMinutes int, date, now time.Time) []Slot {
	var out []Slot
	for i := range windows {
		out = append(out, WindowSlots(&windows[i], durationMinutes, date, now)...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
