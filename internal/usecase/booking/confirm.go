package booking

import (
	"context"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/models"
)

type ConfirmAppointment struct {
	repo domain.Repository
}

func NewConfirmAppointment(repo domain.Repository) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.repo.TransitionStatus(ctx, appointmentID, professionalID, domain.Confirm)
}
