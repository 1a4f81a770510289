package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/services"
)

// Notifier рассылает события жизненного цикла записи в личные каналы
// участников. Доставка fire-and-forget: отключившийся пользователь пропускает
// событие и синхронизируется следующим GET /appointments.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

type deletedPayload struct {
	ID             uuid.UUID   `json:"id"`
	ParticipantIDs []uuid.UUID `json:"participantIds"`
}

func (n *Notifier) Publish(event services.Event) {
	var payload interface{}
	if event.Appointment != nil {
		payload = event.Appointment
	} else {
		payload = deletedPayload{ID: event.AppointmentID, ParticipantIDs: event.Participants}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal event payload: %v", err)
		return
	}

	msg := Message{
		Type:      MessageType(event.Kind),
		Data:      data,
		Timestamp: time.Now(),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	// создатель и приглашённый могут совпасть только на битых данных — всё равно дедуплицируем
	seen := make(map[uuid.UUID]bool, len(event.Participants))
	for _, userID := range event.Participants {
		if userID == uuid.Nil || seen[userID] {
			continue
		}
		seen[userID] = true
		n.hub.SendToUser(userID, raw)
	}
}
