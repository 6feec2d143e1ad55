package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/cache"
	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/dto"
	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/httpresp"
	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/models"
	usecase "github.com/agendalivre/agenda-api/internal/usecase/booking"
)

var errInvalidID = errors.New("invalid id param")

type AppointmentHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	confirm  *usecase.ConfirmAppointment
	cancel   *usecase.CancelAppointment
	complete *usecase.CompleteAppointment
	cache    *cache.Availability
	tz       string
}

func NewAppointmentHandler(
	db *gorm.DB,
	repo domain.Repository,
	confirm *usecase.ConfirmAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	availability *cache.Availability,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		repo:     repo,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		cache:    availability,
		tz:       tz,
	}
}

type appointmentRow struct {
	models.Appointment
	ServiceName *string
}

// List returns the professional's appointments, filtered by an exact date
// or a date range, optionally narrowed by status. Service names are joined
// in; a deleted service renders as "Serviço removido".
func (h *AppointmentHandler) List(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	q := h.db.Table("appointments").
		Select("appointments.*, services.name AS service_name").
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Where("appointments.professional_id = ?", professionalID)

	if date := c.Query("date"); date != "" {
		d, err := parseDate(date, h.tz)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", err.Error())
			return
		}
		q = q.Where("appointments.date = ?", d)
	} else {
		if start := c.Query("start_date"); start != "" {
			d, err := parseDate(start, h.tz)
			if err != nil {
				httperr.BadRequest(c, "invalid_date", err.Error())
				return
			}
			q = q.Where("appointments.date >= ?", d)
		}
		if end := c.Query("end_date"); end != "" {
			d, err := parseDate(end, h.tz)
			if err != nil {
				httperr.BadRequest(c, "invalid_date", err.Error())
				return
			}
			q = q.Where("appointments.date <= ?", d)
		}
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("appointments.status = ?", status)
	}

	var rows []appointmentRow
	if err := q.
		Order("appointments.date ASC, appointments.time ASC").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, rw := range rows {
		name := "Serviço removido"
		if rw.ServiceName != nil && *rw.ServiceName != "" {
			name = *rw.ServiceName
		}

		out = append(out, dto.AppointmentListDTO{
			ID:          rw.ID,
			Date:        rw.Date,
			Time:        rw.Time,
			Status:      rw.Status,
			ClientName:  rw.ClientName,
			ClientPhone: rw.ClientPhone,
			ServiceName: name,
			Notes:       rw.Notes,
		})
	}

	httpresp.List(c, out)
}

// Get returns one appointment, scoped to the authenticated professional.
func (h *AppointmentHandler) Get(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	ap, err := h.repo.GetAppointmentForProfessional(c.Request.Context(), id, professionalID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), professionalID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), professionalID, id, req.Reason)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	// The slot just reopened; stale listings would hide it.
	h.cache.Invalidate(c.Request.Context(), professionalID, ap.Date.Format(dateLayout))

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), professionalID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// parseIDParam writes the 400 itself; callers only need to bail out.
func parseIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return 0, errInvalidID
	}
	return uint(id), nil
}
