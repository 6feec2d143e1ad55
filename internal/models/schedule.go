package models

import "time"

// Schedule is one weekly availability window. A professional may have more
// than one window on the same weekday (split shifts), as long as they do
// not overlap.
type Schedule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"not null;index" json:"professional_id"`

	// time.Weekday numbering, Sunday = 0
	Weekday int `gorm:"not null" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	// Optional break interval, fully contained in [StartTime, EndTime)
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	MaxAppointmentsPerSlot int `gorm:"default:1" json:"max_appointments_per_slot"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
