package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestConfirmAfterCancelFails(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, Cancel(ap))

	err := Confirm(ap)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestCompleteBeforeConfirmFails(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	err := Complete(ap)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	assert.Equal(t, string(StatusScheduled), ap.Status)
}

func TestFullLifecycle(t *testing.T) {
	ap := &models.Appointment{Status: string(InitialStatus())}

	require.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	require.NoError(t, Complete(ap))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	err := Cancel(ap)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestActiveStatusesConsumeCapacity(t *testing.T) {
	assert.ElementsMatch(t, []string{"scheduled", "confirmed"}, ActiveStatuses())
}
