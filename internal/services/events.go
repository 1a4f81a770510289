package services

import (
	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
)

const (
	EventCreated   = "appointment.created"
	EventUpdated   = "appointment.updated"
	EventCancelled = "appointment.cancelled"
	EventDeleted   = "appointment.deleted"
)

// Event — событие жизненного цикла записи для личных каналов участников.
// Для deleted запись уже удалена, поэтому идентификаторы участников передаются отдельно.
type Event struct {
	Kind          string
	Appointment   *models.Appointment // nil для deleted
	AppointmentID uuid.UUID
	Participants  []uuid.UUID
}

// EventPublisher отвязывает планирование от транспорта; доставка best-effort
type EventPublisher interface {
	Publish(event Event)
}
