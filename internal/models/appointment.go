package models

import (
	"github.com/google/uuid"
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string            `gorm:"not null" json:"title"`
	StartsAt  time.Time         `gorm:"not null;index" json:"startsAt"`
	EndsAt    time.Time         `gorm:"not null" json:"endsAt"`
	Notes     string            `json:"notes,omitempty"`
	Status    AppointmentStatus `gorm:"not null;default:'PENDING';check:status IN ('PENDING','CONFIRMED','CANCELLED')" json:"status"`
	CreatorID uuid.UUID         `gorm:"type:uuid;not null;index" json:"creatorId"`
	InviteeID uuid.UUID         `gorm:"type:uuid;not null;index" json:"inviteeId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	// Связи
	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
	Invitee User `gorm:"foreignKey:InviteeID" json:"-"`
}

// IsParticipant — создатель и приглашённый имеют доступ к записи
func (a *Appointment) IsParticipant(userID uuid.UUID) bool {
	return a.CreatorID == userID || a.InviteeID == userID
}
