package handlers

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/httpresp"
	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/models"
	"github.com/agendalivre/agenda-api/internal/timezone"
)

// ReportsHandler aggregates in Go after fetching the professional's rows.
// Report volumes are small per account and this keeps the queries identical
// across postgres and sqlite, which have incompatible date functions.
type ReportsHandler struct {
	db *gorm.DB
	tz string
}

func NewReportsHandler(db *gorm.DB, tz string) *ReportsHandler {
	return &ReportsHandler{db: db, tz: tz}
}

type reportRow struct {
	ID          uint
	ServiceID   uint
	Date        time.Time
	Status      string
	ServiceName *string
	Price       *float64
}

func (h *ReportsHandler) fetch(professionalID uint, from, to time.Time) ([]reportRow, error) {
	q := h.db.Table("appointments").
		Select("appointments.id, appointments.service_id, appointments.date, appointments.status, services.name AS service_name, services.price AS price").
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Where("appointments.professional_id = ?", professionalID)

	if !from.IsZero() {
		q = q.Where("appointments.date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("appointments.date <= ?", to)
	}

	var rows []reportRow
	err := q.Scan(&rows).Error
	return rows, err
}

// revenueStatuses: only bookings the professional honored (or will honor)
// count as money. Cancelled and still-unconfirmed ones do not.
func countsForRevenue(status string) bool {
	return status == string(domain.StatusConfirmed) || status == string(domain.StatusCompleted)
}

func startOfWeek(t time.Time) time.Time {
	// Monday-based week.
	offset := (int(t.Weekday()) + 6) % 7
	return timezone.Midnight(t).AddDate(0, 0, -offset)
}

// --------------------------------------------------
// GET /api/me/reports/dashboard
// --------------------------------------------------

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	now := timezone.NowIn(h.tz)

	// Scanned dates may carry a different zone than now (postgres hands
	// date columns back as UTC midnights), so bucket on the calendar
	// date, never on the instant. YYYY-MM-DD strings order correctly.
	todayKey := timezone.Midnight(now).Format(dateLayout)
	monthKey := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
	weekKey := startOfWeek(now).Format(dateLayout)

	rows, err := h.fetch(professionalID, time.Time{}, time.Time{})
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	var total, month, week, day int
	statusDist := map[string]int{}
	serviceCount := map[string]int{}
	var revenue float64

	for _, rw := range rows {
		total++

		key := rw.Date.Format(dateLayout)
		if key >= monthKey {
			month++
			statusDist[rw.Status]++

			if countsForRevenue(rw.Status) && rw.Price != nil {
				revenue += *rw.Price
			}
		}
		if key >= weekKey {
			week++
		}
		if key == todayKey {
			day++
		}

		if rw.ServiceName != nil && *rw.ServiceName != "" {
			serviceCount[*rw.ServiceName]++
		}
	}

	type serviceEntry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	top := make([]serviceEntry, 0, len(serviceCount))
	for name, n := range serviceCount {
		top = append(top, serviceEntry{Name: name, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"total_appointments":  total,
		"this_month":          month,
		"this_week":           week,
		"today":               day,
		"status_distribution": statusDist,
		"top_services":        top,
		"estimated_revenue":   round2(revenue),
	})
}

// --------------------------------------------------
// GET /api/me/reports/appointments
// --------------------------------------------------

func (h *ReportsHandler) Appointments(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	var from, to time.Time
	var err error
	if s := c.Query("start_date"); s != "" {
		if from, err = parseDate(s, h.tz); err != nil {
			httperr.BadRequest(c, "invalid_date", err.Error())
			return
		}
	}
	if s := c.Query("end_date"); s != "" {
		if to, err = parseDate(s, h.tz); err != nil {
			httperr.BadRequest(c, "invalid_date", err.Error())
			return
		}
	}

	q := h.db.Table("appointments").
		Select("appointments.*, services.name AS service_name").
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Where("appointments.professional_id = ?", professionalID)

	if !from.IsZero() {
		q = q.Where("appointments.date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("appointments.date <= ?", to)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("appointments.status = ?", status)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Where("appointments.service_id = ?", serviceID)
	}

	var rows []appointmentRow
	if err := q.
		Order("appointments.date DESC, appointments.time DESC").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	type reportAppointment struct {
		models.Appointment
		ServiceName string `json:"service_name"`
	}

	out := make([]reportAppointment, 0, len(rows))
	for _, rw := range rows {
		name := "Serviço removido"
		if rw.ServiceName != nil && *rw.ServiceName != "" {
			name = *rw.ServiceName
		}
		out = append(out, reportAppointment{Appointment: rw.Appointment, ServiceName: name})
	}

	httpresp.List(c, out)
}

// --------------------------------------------------
// GET /api/me/reports/revenue?period=
// --------------------------------------------------

func (h *ReportsHandler) Revenue(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	period := c.DefaultQuery("period", "month")

	now := timezone.NowIn(h.tz)

	var from time.Time
	switch period {
	case "month":
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	case "week":
		from = startOfWeek(now).AddDate(0, 0, -7*7)
	case "year":
		from = time.Date(now.Year()-2, 1, 1, 0, 0, 0, 0, now.Location())
	default:
		httperr.BadRequest(c, "invalid_period", "Período deve ser month, week ou year")
		return
	}

	rows, err := h.fetch(professionalID, from, time.Time{})
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	buckets := map[string]float64{}
	counts := map[string]int{}
	for _, rw := range rows {
		if !countsForRevenue(rw.Status) || rw.Price == nil {
			continue
		}

		var key string
		switch period {
		case "month":
			key = rw.Date.Format("2006-01")
		case "week":
			key = startOfWeek(rw.Date).Format(dateLayout)
		case "year":
			key = rw.Date.Format("2006")
		}

		buckets[key] += *rw.Price
		counts[key]++
	}

	type revenueBucket struct {
		Period       string  `json:"period"`
		Revenue      float64 `json:"revenue"`
		Appointments int     `json:"appointments"`
	}

	out := make([]revenueBucket, 0, len(buckets))
	for key, sum := range buckets {
		out = append(out, revenueBucket{
			Period:       key,
			Revenue:      round2(sum),
			Appointments: counts[key],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"data":   out,
	})
}

// --------------------------------------------------
// GET /api/me/reports/services-performance?days=
// --------------------------------------------------

func (h *ReportsHandler) ServicesPerformance(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperr.BadRequest(c, "invalid_days", "Parâmetro days inválido")
			return
		}
		days = parsed
	}

	now := timezone.NowIn(h.tz)
	from := timezone.Midnight(now).AddDate(0, 0, -days)

	var services []models.Service
	if err := h.db.
		Where("professional_id = ? AND is_active = ?", professionalID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	rows, err := h.fetch(professionalID, from, time.Time{})
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	type perf struct {
		total     int
		completed int
		cancelled int
		revenue   float64
	}
	byService := map[uint]*perf{}
	for _, rw := range rows {
		p := byService[rw.ServiceID]
		if p == nil {
			p = &perf{}
			byService[rw.ServiceID] = p
		}

		p.total++
		switch rw.Status {
		case string(domain.StatusCompleted):
			p.completed++
		case string(domain.StatusCancelled):
			p.cancelled++
		}
		if countsForRevenue(rw.Status) && rw.Price != nil {
			p.revenue += *rw.Price
		}
	}

	type servicePerformance struct {
		ServiceID        uint    `json:"service_id"`
		Name             string  `json:"name"`
		Total            int     `json:"total_appointments"`
		Completed        int     `json:"completed"`
		Cancelled        int     `json:"cancelled"`
		CompletionRate   float64 `json:"completion_rate"`
		CancellationRate float64 `json:"cancellation_rate"`
		TotalRevenue     float64 `json:"total_revenue"`
		AvgRevenue       float64 `json:"avg_revenue_per_appointment"`
	}

	out := make([]servicePerformance, 0, len(services))
	for _, svc := range services {
		p := byService[svc.ID]
		if p == nil {
			p = &perf{}
		}

		entry := servicePerformance{
			ServiceID:    svc.ID,
			Name:         svc.Name,
			Total:        p.total,
			Completed:    p.completed,
			Cancelled:    p.cancelled,
			TotalRevenue: round2(p.revenue),
		}
		if p.total > 0 {
			entry.CompletionRate = round2(float64(p.completed) / float64(p.total) * 100)
			entry.CancellationRate = round2(float64(p.cancelled) / float64(p.total) * 100)
			entry.AvgRevenue = round2(p.revenue / float64(p.total))
		}

		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"period_days": days,
		"data":        out,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
