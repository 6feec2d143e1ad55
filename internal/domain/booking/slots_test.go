package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agendalivre/agenda-api/internal/models"
)

func window(weekday int, start, end string) models.Schedule {
	return models.Schedule{
		Weekday:                weekday,
		StartTime:              start,
		EndTime:                end,
		MaxAppointmentsPerSlot: 1,
		IsActive:               true,
	}
}

// Wednesday, well in the future relative to now.
var (
	testDate = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func starts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestWindowSlotsWithBreak(t *testing.T) {
	w := window(3, "09:00", "12:00")
	w.BreakStart = "10:00"
	w.BreakEnd = "10:30"

	got := WindowSlots(&w, 30, testDate, testNow)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, starts(got))
}

func TestWindowSlotsDurationLongerThanRemainder(t *testing.T) {
	w := window(3, "09:00", "10:30")

	got := WindowSlots(&w, 60, testDate, testNow)

	// 09:00-10:00 fits, 10:00-11:00 overruns the window.
	assert.Equal(t, []string{"09:00"}, starts(got))
}

func TestWindowSlotsSlotEndingExactlyAtWindowEnd(t *testing.T) {
	w := window(3, "09:00", "10:00")

	got := WindowSlots(&w, 30, testDate, testNow)

	assert.Equal(t, []string{"09:00", "09:30"}, starts(got))
}

func TestWindowSlotsSlotStraddlingBreakDropped(t *testing.T) {
	w := window(3, "09:00", "12:00")
	w.BreakStart = "10:15"
	w.BreakEnd = "10:45"

	got := WindowSlots(&w, 30, testDate, testNow)

	// 10:00 and 10:30 both overlap the break; the grid resumes at 11:00.
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, starts(got))
}

func TestWindowSlotsWrongWeekday(t *testing.T) {
	w := window(4, "09:00", "12:00")

	assert.Empty(t, WindowSlots(&w, 30, testDate, testNow))
}

func TestWindowSlotsInactiveWindow(t *testing.T) {
	w := window(3, "09:00", "12:00")
	w.IsActive = false

	assert.Empty(t, WindowSlots(&w, 30, testDate, testNow))
}

func TestWindowSlotsPastSlotsSkippedToday(t *testing.T) {
	w := window(3, "09:00", "12:00")
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	got := WindowSlots(&w, 30, testDate, now)

	// 10:00 itself is not after now, so the first bookable slot is 10:30.
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, starts(got))
}

func TestWindowSlotsZeroDuration(t *testing.T) {
	w := window(3, "09:00", "12:00")

	assert.Empty(t, WindowSlots(&w, 0, testDate, testNow))
}

func TestResolveSlotsMergesWindowsSorted(t *testing.T) {
	windows := []models.Schedule{
		window(3, "14:00", "16:00"),
		window(3, "09:00", "10:00"),
	}

	got := ResolveSlots(windows, 60, testDate, testNow)

	assert.Equal(t, []string{"09:00", "14:00", "15:00"}, starts(got))
}

func TestResolveSlotsNoWindows(t *testing.T) {
	got := ResolveSlots(nil, 30, testDate, testNow)

	assert.Empty(t, got)
}
