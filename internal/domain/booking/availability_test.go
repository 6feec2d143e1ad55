package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendalivre/agenda-api/internal/models"
)

func TestLocateSlotOpen(t *testing.T) {
	windows := []models.Schedule{window(3, "09:00", "12:00")}

	w, status := LocateSlot(windows, 30, testDate, "09:30", testNow)

	require.NotNil(t, w)
	assert.Equal(t, SlotOpen, status)
}

func TestLocateSlotNoWindowForWeekday(t *testing.T) {
	windows := []models.Schedule{window(4, "09:00", "12:00")}

	w, status := LocateSlot(windows, 30, testDate, "09:30", testNow)

	assert.Nil(t, w)
	assert.Equal(t, SlotOutsideSchedule, status)
}

func TestLocateSlotMisalignedTime(t *testing.T) {
	windows := []models.Schedule{window(3, "09:00", "12:00")}

	// In the window but off the 30-minute grid.
	w, status := LocateSlot(windows, 30, testDate, "09:15", testNow)

	assert.Nil(t, w)
	assert.Equal(t, SlotOutsideSchedule, status)
}

func TestLocateSlotOverrunsWindow(t *testing.T) {
	windows := []models.Schedule{window(3, "09:00", "12:00")}

	w, status := LocateSlot(windows, 90, testDate, "11:00", testNow)

	assert.Nil(t, w)
	assert.Equal(t, SlotOutsideSchedule, status)
}

func TestLocateSlotInBreak(t *testing.T) {
	win := window(3, "09:00", "12:00")
	win.BreakStart = "10:00"
	win.BreakEnd = "10:30"

	w, status := LocateSlot([]models.Schedule{win}, 30, testDate, "10:00", testNow)

	assert.Nil(t, w)
	assert.Equal(t, SlotInBreak, status)
}

func TestLocateSlotFirstAfterBreak(t *testing.T) {
	win := window(3, "09:00", "12:00")
	win.BreakStart = "10:00"
	win.BreakEnd = "10:30"

	w, status := LocateSlot([]models.Schedule{win}, 30, testDate, "10:30", testNow)

	require.NotNil(t, w)
	assert.Equal(t, SlotOpen, status)
}

func TestLocateSlotPastTimeToday(t *testing.T) {
	windows := []models.Schedule{window(3, "09:00", "12:00")}
	now := parseHM(testDate, "10:00")

	w, status := LocateSlot(windows, 30, testDate, "09:30", now)

	assert.Nil(t, w)
	assert.Equal(t, SlotOutsideSchedule, status)
}

func TestLocateSlotInvalidTimeString(t *testing.T) {
	windows := []models.Schedule{window(3, "09:00", "12:00")}

	w, status := LocateSlot(windows, 30, testDate, "9h30", testNow)

	assert.Nil(t, w)
	assert.Equal(t, SlotOutsideSchedule, status)
}

func TestClassifyFullAtCapacity(t *testing.T) {
	win := window(3, "09:00", "12:00")
	win.MaxAppointmentsPerSlot = 2

	assert.Equal(t, SlotOpen, Classify([]models.Schedule{win}, 30, testDate, "09:00", testNow, 1))
	assert.Equal(t, SlotFull, Classify([]models.Schedule{win}, 30, testDate, "09:00", testNow, 2))
}

func TestClassifyKeepsLocateStatus(t *testing.T) {
	win := window(3, "09:00", "12:00")
	win.BreakStart = "10:00"
	win.BreakEnd = "10:30"

	status := Classify([]models.Schedule{win}, 30, testDate, "10:00", testNow, 0)

	assert.Equal(t, SlotInBreak, status)
}

func TestCapacityDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, Capacity(&models.Schedule{MaxAppointmentsPerSlot: 0}))
	assert.Equal(t, 3, Capacity(&models.Schedule{MaxAppointmentsPerSlot: 3}))
}
