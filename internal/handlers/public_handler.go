package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/cache"
	"github.com/agendalivre/agenda-api/internal/httperr"
	"github.com/agendalivre/agenda-api/internal/httpresp"
	"github.com/agendalivre/agenda-api/internal/models"
	usecase "github.com/agendalivre/agenda-api/internal/usecase/booking"
)

type PublicHandler struct {
	db           *gorm.DB
	availability *usecase.GetAvailability
	checkSlot    *usecase.CheckSlot
	create       *usecase.CreateAppointment
	cache        *cache.Availability
	tz           string
}

func NewPublicHandler(
	db *gorm.DB,
	availability *usecase.GetAvailability,
	checkSlot *usecase.CheckSlot,
	create *usecase.CreateAppointment,
	availabilityCache *cache.Availability,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		checkSlot:    checkSlot,
		create:       create,
		cache:        availabilityCache,
		tz:           tz,
	}
}

// PublicProfessional is the directory projection: contact data the client
// needs to book, nothing from the account itself.
type PublicProfessional struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	var pros []PublicProfessional
	if err := h.db.Model(&models.Professional{}).
		Where("is_public = ?", true).
		Order("name ASC").
		Scan(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais")
		return
	}

	httpresp.List(c, pros)
}

func (h *PublicHandler) GetProfessional(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND is_public = ?", id, true).
		First(&pro).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("professional_id = ? AND is_active = ?", pro.ID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional": PublicProfessional{
			ID:          pro.ID,
			Name:        pro.Name,
			Description: pro.Description,
			Address:     pro.Address,
		},
		"services": services,
	})
}

// GetAvailability lists the open slots for a date. With a time query param
// it instead classifies that single slot (open, full, in_break or
// outside_schedule), which is what the booking form polls before submit.
func (h *PublicHandler) GetAvailability(c *gin.Context) {
	proID, err := parseIDParam(c)
	if err != nil {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Parâmetro date é obrigatório")
		return
	}
	date, err := parseDate(dateStr, h.tz)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", err.Error())
		return
	}

	serviceID, err := parseUintQuery(c, "service_id")
	if err != nil {
		return
	}

	ctx := c.Request.Context()

	if timeHM := c.Query("time"); timeHM != "" {
		status, err := h.checkSlot.Execute(ctx, proID, serviceID, date, timeHM)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"time":      timeHM,
			"status":    status,
			"available": status == "open",
		})
		return
	}

	if slots, ok := h.cache.Get(ctx, proID, serviceID, dateStr); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.availability.Execute(ctx, proID, serviceID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Set(ctx, proID, serviceID, dateStr, slots)

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

type PublicBookingRequest struct {
	ServiceID     uint   `json:"service_id" binding:"required"`
	ClientName    string `json:"client_name" binding:"required"`
	ClientPhone   string `json:"client_phone" binding:"required"`
	ClientEmail   string `json:"client_email"`
	ClientAddress string `json:"client_address"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	proID, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ProfessionalID: proID,
		ServiceID:      req.ServiceID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ClientAddress:  req.ClientAddress,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), proID, req.Date)

	httpresp.Created(c, ap)
}

func parseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		httperr.BadRequest(c, "missing_"+name, "Parâmetro "+name+" é obrigatório")
		return 0, errInvalidID
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro "+name+" inválido")
		return 0, errInvalidID
	}
	return uint(id), nil
}
