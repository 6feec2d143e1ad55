package models

import "time"

// Appointment keeps plain foreign keys only. Historical appointments must
// survive the deletion of a professional or service, so there is no cascade
// here and lookups go through the repository.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `gorm:"not null;index" json:"professional_id"`
	ServiceID      uint `gorm:"not null" json:"service_id"`

	// Cliente sem conta: identidade capturada por reserva
	ClientName    string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone   string `gorm:"size:20;not null" json:"client_phone"`
	ClientEmail   string `gorm:"size:120" json:"client_email"`
	ClientAddress string `gorm:"size:255" json:"client_address"`

	Date time.Time `gorm:"type:date;not null;index:idx_appointments_slot" json:"date"`
	Time string    `gorm:"size:5;not null;index:idx_appointments_slot" json:"time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	NotificationSent bool `gorm:"default:false" json:"notification_sent"`
	ReminderSent     bool `gorm:"default:false" json:"reminder_sent"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
