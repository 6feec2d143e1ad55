package models

import "time"

type Professional struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:20;not null" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"size:255" json:"address"`

	// Agenda pública aparece no diretório de profissionais
	IsPublic bool `gorm:"default:true" json:"is_public"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Declared only so gorm emits ON DELETE CASCADE. Never preloaded:
	// relationships are resolved by id lookup, not embedded pointers.
	Services  []Service  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Schedules []Schedule `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
