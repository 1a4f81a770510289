package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/appointly/internal/handlers/dto"
	"github.com/thereayou/appointly/internal/models"
	ws "github.com/thereayou/appointly/internal/websocket"
)

// Поиск записи при авторизации join ограничен по времени;
// по таймауту считаем, что доступа нет
const joinAuthTimeout = 3 * time.Second

type AppointmentGetter interface {
	GetAppointmentCtx(ctx context.Context, id string) (*models.Appointment, error)
}

// SignalHandler — сигнальный брокер комнаты сеанса. join авторизуется по
// текущему состоянию записи, offer/answer/ice пересылаются целевому
// соединению без интерпретации.
type SignalHandler struct {
	db  AppointmentGetter
	hub *ws.Hub
}

func NewSignalHandler(db AppointmentGetter, hub *ws.Hub) *SignalHandler {
	return &SignalHandler{db: db, hub: hub}
}

func (h *SignalHandler) HandleMessage(client *ws.Client, msg *ws.Message) error {
	switch msg.Type {
	case ws.TypeCallJoin:
		return h.handleJoin(client, msg)

	case ws.TypeCallLeave:
		return h.handleLeave(client, msg)

	case ws.TypeOffer, ws.TypeAnswer, ws.TypeICE:
		return h.relay(client, msg)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		return nil
	}
}

func (h *SignalHandler) handleJoin(client *ws.Client, msg *ws.Message) error {
	if msg.AppointmentID == nil {
		return ws.ErrInvalidMessage
	}

	ctx, cancel := context.WithTimeout(context.Background(), joinAuthTimeout)
	defer cancel()

	appt, err := h.db.GetAppointmentCtx(ctx, msg.AppointmentID.String())
	if err != nil {
		return ws.ErrUnauthorized
	}

	if !appt.IsParticipant(client.UserID) {
		return ws.ErrUnauthorized
	}

	return h.hub.JoinCallRoom(client, *msg.AppointmentID)
}

func (h *SignalHandler) handleLeave(client *ws.Client, msg *ws.Message) error {
	if msg.AppointmentID == nil {
		return ws.ErrInvalidMessage
	}

	h.hub.LeaveCallRoom(client, *msg.AppointmentID)
	return nil
}

// relay переупаковывает полезную нагрузку: поле to снимается, from добавляется,
// sdp/candidate проходят насквозь. Отправитель вне комнаты — молча отбрасываем.
func (h *SignalHandler) relay(client *ws.Client, msg *ws.Message) error {
	if msg.AppointmentID == nil {
		return ws.ErrInvalidMessage
	}

	var routing dto.SignalRouting
	if err := json.Unmarshal(msg.Data, &routing); err != nil || routing.To == uuid.Nil {
		return ws.ErrInvalidMessage
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg.Data, &fields); err != nil {
		return ws.ErrInvalidMessage
	}
	delete(fields, "to")
	from, _ := json.Marshal(client.ID)
	fields["from"] = from

	data, err := json.Marshal(fields)
	if err != nil {
		return ws.ErrInvalidMessage
	}

	forward := ws.Message{
		Type:          msg.Type,
		AppointmentID: msg.AppointmentID,
		Data:          data,
		Timestamp:     time.Now(),
	}

	raw, err := json.Marshal(forward)
	if err != nil {
		return ws.ErrInvalidMessage
	}

	h.hub.RelayToConnection(*msg.AppointmentID, client, routing.To, raw)
	return nil
}
