package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// Сигнальные типы (клиент -> сервер)
	TypeCallJoin  MessageType = "webrtc.join"
	TypeCallLeave MessageType = "webrtc.leave"
	TypeOffer     MessageType = "webrtc.offer"
	TypeAnswer    MessageType = "webrtc.answer"
	TypeICE       MessageType = "webrtc.ice"

	// Сигнальные типы (сервер -> клиент)
	TypePeerJoined MessageType = "webrtc.peer-joined"
	TypePeerLeft   MessageType = "webrtc.peer-left"
	TypeCallError  MessageType = "webrtc.error"
)

// RoomCapacity — комната сеанса рассчитана ровно на две стороны
const RoomCapacity = 2

type Message struct {
	Type          MessageType     `json:"type"`
	AppointmentID *uuid.UUID      `json:"appointmentId,omitempty"`
	UserID        uuid.UUID       `json:"userId,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Rooms  map[uuid.UUID]bool
	Hub    *Hub
	mu     sync.RWMutex
}

// Hub владеет всем процессным real-time состоянием: соединениями, личными
// каналами пользователей и комнатами сеансов по id записи. Состояние не
// переживает рестарт — клиенты переподключаются и проходят аутентификацию заново.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Личные каналы: все живые соединения пользователя
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Комнаты сеансов по id записи, вместимость RoomCapacity
	rooms map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		rooms:       make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	// соединение сразу попадает в личный канал своего пользователя
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		// Удаляем из всех комнат
		for roomID := range client.Rooms {
			h.removeFromRoomUnsafe(client, roomID)
		}

		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// JoinCallRoom добавляет соединение в комнату записи. Сторона, уже находящаяся
// в комнате, получает peer-joined и инициирует offer; вновь вошедшая сторона
// не инициирует никогда — так исключается гонка двойного offer.
func (h *Hub) JoinCallRoom(client *Client, appointmentID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[appointmentID]
	if !ok {
		room = make(map[uuid.UUID]*Client)
		h.rooms[appointmentID] = room
	}

	if _, ok := room[client.ID]; ok {
		// повторный join того же соединения — no-op
		return nil
	}

	if len(room) >= RoomCapacity {
		return ErrRoomFull
	}

	for _, other := range room {
		h.sendPeerEvent(other, TypePeerJoined, appointmentID, client.ID)
	}

	room[client.ID] = client
	client.mu.Lock()
	client.Rooms[appointmentID] = true
	client.mu.Unlock()

	return nil
}

// LeaveCallRoom удаляет соединение из комнаты записи
func (h *Hub) LeaveCallRoom(client *Client, appointmentID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, appointmentID)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, appointmentID uuid.UUID) {
	room, ok := h.rooms[appointmentID]
	if !ok {
		return
	}

	if _, ok := room[client.ID]; !ok {
		return
	}

	delete(room, client.ID)
	client.mu.Lock()
	delete(client.Rooms, appointmentID)
	client.mu.Unlock()

	if len(room) == 0 {
		// пустая комната уничтожается
		delete(h.rooms, appointmentID)
		return
	}

	for _, other := range room {
		h.sendPeerEvent(other, TypePeerLeft, appointmentID, client.ID)
	}
}

func (h *Hub) sendPeerEvent(target *Client, msgType MessageType, appointmentID, fromID uuid.UUID) {
	data, _ := json.Marshal(map[string]uuid.UUID{"from": fromID})
	msg := Message{
		Type:          msgType,
		AppointmentID: &appointmentID,
		Data:          data,
		Timestamp:     time.Now(),
	}

	if raw, err := json.Marshal(msg); err == nil {
		select {
		case target.Send <- raw:
		default:
			log.Printf("Client %s send channel full", target.ID)
		}
	}
}

// RelayToConnection пересылает полезную нагрузку целевому соединению, не
// заглядывая в неё. No-op, если отправитель не состоит в комнате этой записи
// или цель в ней отсутствует.
func (h *Hub) RelayToConnection(appointmentID uuid.UUID, sender *Client, targetID uuid.UUID, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[appointmentID]
	if !ok {
		return false
	}
	if _, ok := room[sender.ID]; !ok {
		return false
	}

	target, ok := room[targetID]
	if !ok {
		return false
	}

	select {
	case target.Send <- message:
	default:
		log.Printf("Client %s send channel full", target.ID)
		return false
	}
	return true
}

// SendToUser отправляет сообщение во все соединения пользователя
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// RoomOccupants возвращает соединения в комнате записи
func (h *Hub) RoomOccupants(appointmentID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[appointmentID]
	if !ok {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(room))
	for id := range room {
		ids = append(ids, id)
	}
	return ids
}

// UserConnections возвращает живые соединения пользователя (личный канал)
func (h *Hub) UserConnections(userID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uuid.UUID, 0)
	for id := range h.userClients[userID] {
		ids = append(ids, id)
	}
	return ids
}
