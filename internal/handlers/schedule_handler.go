package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/models"
	"github.com/agendalivre/agenda-api/internal/validators"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleWindowConfig struct {
	Weekday                int    `json:"weekday"`
	StartTime              string `json:"start_time" binding:"required"`
	EndTime                string `json:"end_time" binding:"required"`
	BreakStart             string `json:"break_start"`
	BreakEnd               string `json:"break_end"`
	MaxAppointmentsPerSlot int    `json:"max_appointments_per_slot"`
	IsActive               *bool  `json:"is_active"`
}

type ScheduleUpdateRequest struct {
	Windows []ScheduleWindowConfig `json:"windows" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	var windows []models.Schedule
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, windows)
}

// Update replaces the professional's whole weekly schedule. Window shape
// and overlaps are validated before anything is written; invalid input
// leaves the stored schedule untouched.
func (h *ScheduleHandler) Update(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextProfessionalID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	windows := make([]models.Schedule, 0, len(req.Windows))
	for _, w := range req.Windows {
		capacity := w.MaxAppointmentsPerSlot
		if capacity == 0 {
			capacity = 1
		}

		active := true
		if w.IsActive != nil {
			active = *w.IsActive
		}

		windows = append(windows, models.Schedule{
			ProfessionalID:         professionalID,
			Weekday:                w.Weekday,
			StartTime:              w.StartTime,
			EndTime:                w.EndTime,
			BreakStart:             w.BreakStart,
			BreakEnd:               w.BreakEnd,
			MaxAppointmentsPerSlot: capacity,
			IsActive:               active,
		})
	}

	if err := validators.ValidateWindows(windows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_schedule",
			"details": err.Error(),
		})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		if len(windows) > 0 {
			return tx.Create(&windows).Error
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
		return
	}

	c.JSON(http.StatusOK, windows)
}
