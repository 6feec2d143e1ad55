package notification

import (
	"context"
	"log"
	"time"

	"github.com/agendalivre/agenda-api/internal/models"
	"github.com/agendalivre/agenda-api/internal/timezone"
)

type ReminderStore interface {
	ListDueReminders(ctx context.Context, date time.Time) ([]models.Appointment, error)
}

// ReminderWorker periodically queues reminder messages for tomorrow's
// confirmed appointments that have not been reminded yet. The dispatcher
// marks the flag after a successful send, so an appointment picked up by
// one cycle but not delivered stays eligible for the next one.
type ReminderWorker struct {
	store      ReminderStore
	dispatcher *Dispatcher
	interval   time.Duration
	tz         string
}

func NewReminderWorker(store ReminderStore, dispatcher *Dispatcher, interval time.Duration, tz string) *ReminderWorker {
	return &ReminderWorker{
		store:      store,
		dispatcher: dispatcher,
		interval:   interval,
		tz:         tz,
	}
}

func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cycle(ctx)
		}
	}
}

func (w *ReminderWorker) cycle(ctx context.Context) {
	tomorrow := timezone.Midnight(timezone.NowIn(w.tz)).AddDate(0, 0, 1)

	due, err := w.store.ListDueReminders(ctx, tomorrow)
	if err != nil {
		log.Printf("reminder: listing due appointments failed: %v", err)
		return
	}

	for _, ap := range due {
		w.dispatcher.Dispatch(Event{
			Kind:          KindReminder,
			AppointmentID: ap.ID,
		})
	}
}
