package dto

import "time"

// CreateAppointmentRequest — startsAt/endsAt приходят как ISO-8601
type CreateAppointmentRequest struct {
	Title        string    `json:"title" binding:"required,min=1,max=120"`
	StartsAt     time.Time `json:"startsAt" binding:"required"`
	EndsAt       time.Time `json:"endsAt" binding:"required"`
	InviteeEmail string    `json:"inviteeEmail" binding:"required,email"`
	Notes        string    `json:"notes" binding:"max=1000"`
}

// UpdateAppointmentRequest — частичное обновление, nil-поля не трогаем.
// Статус выставляется свободно, отдельного workflow подтверждения нет.
type UpdateAppointmentRequest struct {
	Title    *string    `json:"title" binding:"omitempty,min=1,max=120"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
	Notes    *string    `json:"notes" binding:"omitempty,max=1000"`
	Status   *string    `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}
