package notification

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/agendalivre/agenda-api/internal/models"
)

type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindReminder     Kind = "reminder"
	KindCancellation Kind = "cancellation"
)

type Event struct {
	Kind          Kind
	AppointmentID uint
	Reason        string
}

// Store is the slice of the appointment store the dispatcher needs to
// render messages and record delivery.
type Store interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetProfessional(ctx context.Context, id uint) (*models.Professional, error)
	GetServiceByID(ctx context.Context, id uint) (*models.Service, error)
	SetNotificationSent(ctx context.Context, appointmentID uint) error
	SetReminderSent(ctx context.Context, appointmentID uint) error
}

// Dispatcher sends lifecycle messages off the request path. Dispatch never
// blocks the caller and a failed or dropped send never affects the booking
// state that triggered it; the unset flag is what reconciliation sees.
type Dispatcher struct {
	store       Store
	sender      Sender
	countryCode string
	queue       chan Event
}

func NewDispatcher(store Store, sender Sender, countryCode string) *Dispatcher {
	d := &Dispatcher{
		store:       store,
		sender:      sender,
		countryCode: countryCode,
		queue:       make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.handle(context.Background(), ev)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notification queue full, dropping event")
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev Event) {
	if d.sender == nil {
		return
	}

	ap, err := d.store.GetAppointment(ctx, ev.AppointmentID)
	if err != nil {
		log.Printf("notification: appointment %d not found: %v", ev.AppointmentID, err)
		return
	}

	pro, err := d.store.GetProfessional(ctx, ap.ProfessionalID)
	if err != nil {
		log.Printf("notification: professional %d not found: %v", ap.ProfessionalID, err)
		return
	}

	serviceName := "Serviço"
	if svc, err := d.store.GetServiceByID(ctx, ap.ServiceID); err == nil {
		serviceName = svc.Name
	}

	switch ev.Kind {
	case KindConfirmation:
		if d.send(ctx, ap.ClientPhone, clientConfirmationMessage(ap, pro, serviceName)) {
			if err := d.store.SetNotificationSent(ctx, ap.ID); err != nil {
				log.Printf("notification: failed to mark appointment %d notified: %v", ap.ID, err)
			}
		}
		d.send(ctx, pro.Phone, professionalNotificationMessage(ap, serviceName))

	case KindReminder:
		if d.send(ctx, ap.ClientPhone, reminderMessage(ap, pro, serviceName)) {
			if err := d.store.SetReminderSent(ctx, ap.ID); err != nil {
				log.Printf("notification: failed to mark appointment %d reminded: %v", ap.ID, err)
			}
		}

	case KindCancellation:
		d.send(ctx, ap.ClientPhone, cancellationMessage(ap, pro, serviceName, ev.Reason))
		d.send(ctx, pro.Phone, professionalCancellationMessage(ap))
	}
}

func (d *Dispatcher) send(ctx context.Context, phone, message string) bool {
	correlationID := uuid.NewString()
	normalized := NormalizePhone(phone, d.countryCode)

	if err := d.sender.Send(ctx, normalized, message, correlationID); err != nil {
		log.Printf("notification: send to %s failed (correlation %s): %v", normalized, correlationID, err)
		return false
	}
	return true
}
