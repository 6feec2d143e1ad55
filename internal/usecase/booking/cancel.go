package booking

import (
	"context"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/models"
	"github.com/agendalivre/agenda-api/internal/notification"
)

type CancelAppointment struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier *notification.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
	}
}

// Execute cancels the appointment and releases its slot capacity; any
// availability check issued after the transaction commits sees the freed
// opening.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.TransitionStatus(ctx, appointmentID, professionalID, domain.Cancel)
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.Dispatch(notification.Event{
			Kind:          notification.KindCancellation,
			AppointmentID: ap.ID,
			Reason:        reason,
		})
	}

	return ap, nil
}
