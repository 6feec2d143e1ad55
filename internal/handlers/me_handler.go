package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	var pro models.Professional
	if err := h.db.First(&pro, professionalID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
		return
	}

	c.JSON(http.StatusOK, pro)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	var pro models.Professional
	if err := h.db.First(&pro, professionalID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Phone != nil {
		pro.Phone = *req.Phone
	}
	if req.Description != nil {
		pro.Description = *req.Description
	}
	if req.Address != nil {
		pro.Address = *req.Address
	}
	if req.IsPublic != nil {
		pro.IsPublic = *req.IsPublic
	}

	if err := h.db.Save(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_professional"})
		return
	}

	c.JSON(http.StatusOK, pro)
}
