package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/models"
)

type BookingGormRepository struct {
	db    *gorm.DB
	locks *slotLocks
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{
		db:    db,
		locks: newSlotLocks(),
	}
}

func slotKey(professionalID uint, date time.Time, timeHM string) string {
	return fmt.Sprintf("slot:%d:%s:%s", professionalID, date.Format("2006-01-02"), timeHM)
}

// translatePG maps transactional conflicts (lost the race for a slot) to
// the slot_unavailable business error; the caller re-queries and resubmits.
func translatePG(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	return err
}

func (r *BookingGormRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *BookingGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).First(&pro, id).Error; err != nil {
		return nil, err
	}
	return &pro, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", serviceID, professionalID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Schedule windows
// --------------------------------------------------

func (r *BookingGormRepository) ListWindows(
	ctx context.Context,
	professionalID uint,
	weekday int,
) ([]models.Schedule, error) {

	var windows []models.Schedule
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ? AND is_active = ?", professionalID, weekday, true).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

// --------------------------------------------------
// Slot occupancy
// --------------------------------------------------

func (r *BookingGormRepository) CountActiveInSlot(
	ctx context.Context,
	professionalID uint,
	date time.Time,
	timeHM string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND date = ? AND time = ? AND status IN ?",
			professionalID, date, timeHM, domain.ActiveStatuses(),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) CountActiveByTime(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) (map[string]int64, error) {

	type row struct {
		Time  string
		Total int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("time, COUNT(*) AS total").
		Where(
			"professional_id = ? AND date = ? AND status IN ?",
			professionalID, date, domain.ActiveStatuses(),
		).
		Group("time").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Time] = rw.Total
	}
	return counts, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// CreateInSlot holds the slot's lock, re-validates the schedule and the
// bucket's capacity inside the transaction and only then inserts. Exactly
// one of N concurrent callers racing for the last opening succeeds; the
// rest observe slot_unavailable.
func (r *BookingGormRepository) CreateInSlot(
	ctx context.Context,
	ap *models.Appointment,
	durationMinutes int,
	now time.Time,
) error {

	key := slotKey(ap.ProfessionalID, ap.Date, ap.Time)
	release := r.locks.Acquire(key)
	defer release()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if r.isPostgres() {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return err
			}
		}

		var windows []models.Schedule
		if err := tx.
			Where(
				"professional_id = ? AND weekday = ? AND is_active = ?",
				ap.ProfessionalID, int(ap.Date.Weekday()), true,
			).
			Order("start_time ASC").
			Find(&windows).Error; err != nil {
			return err
		}

		win, _ := domain.LocateSlot(windows, durationMinutes, ap.Date, ap.Time, now)
		if win == nil {
			return httperr.ErrBusiness("slot_unavailable")
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"professional_id = ? AND date = ? AND time = ? AND status IN ?",
				ap.ProfessionalID, ap.Date, ap.Time, domain.ActiveStatuses(),
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= int64(domain.Capacity(win)) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return tx.Create(ap).Error
	})

	return translatePG(err)
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) TransitionStatus(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
	apply func(*models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if r.isPostgres() {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := q.
			Where("id = ? AND professional_id = ?", appointmentID, professionalID).
			First(&ap).Error; err != nil {
			return err
		}

		if err := apply(&ap); err != nil {
			return err
		}

		return tx.Save(&ap).Error
	})

	if err != nil {
		return nil, translatePG(err)
	}
	return &ap, nil
}

// --------------------------------------------------
// Notification flags
// --------------------------------------------------

func (r *BookingGormRepository) SetNotificationSent(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("notification_sent", true).Error
}

func (r *BookingGormRepository) SetReminderSent(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminder_sent", true).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListDueReminders(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"date = ? AND status = ? AND reminder_sent = ?",
			date, string(domain.StatusConfirmed), false,
		).
		Order("time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
