package booking

import (
	"context"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/models"
)

type CompleteAppointment struct {
	repo domain.Repository
}

func NewCompleteAppointment(repo domain.Repository) *CompleteAppointment {
	return &CompleteAppointment{repo: repo}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.repo.TransitionStatus(ctx, appointmentID, professionalID, domain.Complete)
}
