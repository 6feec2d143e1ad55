package booking

import (
	"context"
	"time"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/models"
	"github.com/agendalivre/agenda-api/internal/notification"
	"github.com/agendalivre/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID uint
	ServiceID      uint

	ClientName    string
	ClientPhone   string
	ClientEmail   string
	ClientAddress string

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	tz       string
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		tz:       tz,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetProfessional(ctx, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.ProfessionalID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !svc.IsActive {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.ErrBusiness("missing_client_fields")
	}

	if svc.RequiresAddress && in.ClientAddress == "" {
		return nil, httperr.ErrBusiness("address_required")
	}

	loc := timezone.Location(uc.tz)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(uc.tz)
	if !start.After(now) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	ap := &models.Appointment{
		ProfessionalID: in.ProfessionalID,
		ServiceID:      svc.ID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		ClientEmail:    in.ClientEmail,
		ClientAddress:  in.ClientAddress,
		Date:           timezone.Midnight(start),
		Time:           start.Format("15:04"),
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	// The repository re-runs the availability check inside the same
	// transaction as the insert; this is where a lost race surfaces.
	if err := uc.repo.CreateInSlot(ctx, ap, svc.DurationMinutes, now); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.Dispatch(notification.Event{
			Kind:          notification.KindConfirmation,
			AppointmentID: ap.ID,
		})
	}

	return ap, nil
}
