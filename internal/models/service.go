package models

import "time"

type Service struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"not null;index" json:"professional_id"`

	Name            string   `gorm:"size:100;not null" json:"name"`
	Description     string   `gorm:"type:text" json:"description"`
	DurationMinutes int      `gorm:"not null" json:"duration_minutes"`
	Price           *float64 `json:"price"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Serviços a domicílio exigem endereço do cliente na reserva
	RequiresAddress bool `gorm:"default:false" json:"requires_address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
