package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/httpresp"
	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1"`
	Price           *float64 `json:"price"`
	RequiresAddress bool     `json:"requires_address"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
	RequiresAddress *bool    `json:"requires_address,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("professional_id = ?", professionalID)

	if activeStr == "true" {
		q = q.Where("is_active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("is_active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	svc := models.Service{
		ProfessionalID:  professionalID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
		RequiresAddress: req.RequiresAddress,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)
	id := c.Param("id")

	var svc models.Service
	if err := h.db.
		Where("id = ? AND professional_id = ?", id, professionalID).
		First(&svc).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.DurationMinutes != nil && *req.DurationMinutes < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if req.RequiresAddress != nil {
		svc.RequiresAddress = *req.RequiresAddress
	}

	if err := h.db.Save(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Delete deactivates rather than removes when the service has historical
// appointments, so old bookings keep a resolvable reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)
	id := c.Param("id")

	var svc models.Service
	if err := h.db.
		Where("id = ? AND professional_id = ?", id, professionalID).
		First(&svc).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).Where("service_id = ?", svc.ID).Count(&count)

	if count > 0 {
		svc.IsActive = false
		if err := h.db.Save(&svc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_deactivate_service"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
