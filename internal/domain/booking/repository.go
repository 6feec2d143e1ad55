package booking

import (
	"context"
	"time"

	"github.com/agendalivre/agenda-api/internal/models"
)

type Repository interface {
	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*models.Service, error)

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Schedule windows --------
	ListWindows(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) ([]models.Schedule, error)

	// -------- Slot occupancy --------
	CountActiveInSlot(
		ctx context.Context,
		professionalID uint,
		date time.Time,
		timeHM string,
	) (int64, error)

	CountActiveByTime(
		ctx context.Context,
		professionalID uint,
		date time.Time,
	) (map[string]int64, error)

	// -------- Appointment (create) --------

	// CreateInSlot re-validates the slot and its capacity inside the same
	// atomic unit as the insert, serialized per (professional, date, time)
	// bucket. Losing the race yields the slot_unavailable business error.
	CreateInSlot(
		ctx context.Context,
		ap *models.Appointment,
		durationMinutes int,
		now time.Time,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	// TransitionStatus loads the appointment under a per-row lock, applies
	// the domain action and persists the result in one transaction.
	TransitionStatus(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
		apply func(*models.Appointment) error,
	) (*models.Appointment, error)

	// -------- Notification flags (idempotent) --------
	SetNotificationSent(
		ctx context.Context,
		appointmentID uint,
	) error

	SetReminderSent(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Listings --------
	ListDueReminders(
		ctx context.Context,
		date time.Time,
	) ([]models.Appointment, error)
}
