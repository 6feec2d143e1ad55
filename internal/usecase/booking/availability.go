package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/timezone"
)

// GetAvailability lists the open slots of a professional for a date and
// service. The result is advisory: it may be stale by the time a client
// submits a booking, which is why CreateAppointment rechecks inside the
// transaction.
type GetAvailability struct {
	repo domain.Repository
	tz   string
}

func NewGetAvailability(repo domain.Repository, tz string) *GetAvailability {
	return &GetAvailability{repo: repo, tz: tz}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date time.Time,
) ([]domain.Slot, error) {

	svc, err := uc.repo.GetService(ctx, professionalID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !svc.IsActive {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	windows, err := uc.repo.ListWindows(ctx, professionalID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []domain.Slot{}, nil
	}

	counts, err := uc.repo.CountActiveByTime(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tz)

	open := make([]domain.Slot, 0)
	for i := range windows {
		w := &windows[i]
		for _, slot := range domain.WindowSlots(w, svc.DurationMinutes, date, now) {
			if counts[slot.Start] < int64(domain.Capacity(w)) {
				open = append(open, slot)
			}
		}
	}

	sort.Slice(open, func(i, j int) bool { return open[i].Start < open[j].Start })
	return open, nil
}

// CheckSlot classifies a single requested slot. Advisory as well; the
// binding verdict is the one CreateAppointment gets under the slot lock.
type CheckSlot struct {
	repo domain.Repository
	tz   string
}

func NewCheckSlot(repo domain.Repository, tz string) *CheckSlot {
	return &CheckSlot{repo: repo, tz: tz}
}

func (uc *CheckSlot) Execute(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date time.Time,
	timeHM string,
) (domain.SlotStatus, error) {

	svc, err := uc.repo.GetService(ctx, professionalID, serviceID)
	if err != nil {
		return "", httperr.ErrBusiness("service_not_found")
	}
	if !svc.IsActive {
		return "", httperr.ErrBusiness("service_inactive")
	}

	windows, err := uc.repo.ListWindows(ctx, professionalID, int(date.Weekday()))
	if err != nil {
		return "", err
	}

	count, err := uc.repo.CountActiveInSlot(ctx, professionalID, date, timeHM)
	if err != nil {
		return "", err
	}

	now := timezone.NowIn(uc.tz)
	return domain.Classify(windows, svc.DurationMinutes, date, timeHM, now, count), nil
}
