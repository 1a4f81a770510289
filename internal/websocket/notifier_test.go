package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
	"github.com/thereayou/appointly/internal/services"
)

func TestNotifierPublish(t *testing.T) {
	hub := NewHub()
	notifier := NewNotifier(hub)

	creatorID := uuid.New()
	inviteeID := uuid.New()
	creatorConn := NewClient(hub, nil, creatorID)
	inviteeConn := NewClient(hub, nil, inviteeID)
	hub.registerClient(creatorConn)
	hub.registerClient(inviteeConn)

	appt := &models.Appointment{ID: uuid.New(), Title: "Checkup", CreatorID: creatorID, InviteeID: inviteeID}

	notifier.Publish(services.Event{
		Kind:          services.EventCreated,
		Appointment:   appt,
		AppointmentID: appt.ID,
		Participants:  []uuid.UUID{creatorID, inviteeID},
	})

	for _, c := range []*Client{creatorConn, inviteeConn} {
		msg := mustRecv(t, c)
		if msg.Type != MessageType(services.EventCreated) {
			t.Errorf("type = %s, want %s", msg.Type, services.EventCreated)
		}
		var got models.Appointment
		if err := json.Unmarshal(msg.Data, &got); err != nil || got.ID != appt.ID || got.Title != appt.Title {
			t.Error("event must carry the full appointment payload")
		}
	}
}

func TestNotifierDeduplicatesParticipants(t *testing.T) {
	hub := NewHub()
	notifier := NewNotifier(hub)

	userID := uuid.New()
	conn := NewClient(hub, nil, userID)
	hub.registerClient(conn)

	appt := &models.Appointment{ID: uuid.New(), CreatorID: userID, InviteeID: userID}

	notifier.Publish(services.Event{
		Kind:          services.EventUpdated,
		Appointment:   appt,
		AppointmentID: appt.ID,
		Participants:  []uuid.UUID{userID, userID},
	})

	mustRecv(t, conn)
	assertEmpty(t, conn)
}

func TestNotifierDeletedPayload(t *testing.T) {
	hub := NewHub()
	notifier := NewNotifier(hub)

	userID := uuid.New()
	otherID := uuid.New()
	conn := NewClient(hub, nil, userID)
	hub.registerClient(conn)

	apptID := uuid.New()
	notifier.Publish(services.Event{
		Kind:          services.EventDeleted,
		AppointmentID: apptID,
		Participants:  []uuid.UUID{userID, otherID},
	})

	msg := mustRecv(t, conn)
	if msg.Type != MessageType(services.EventDeleted) {
		t.Errorf("type = %s, want %s", msg.Type, services.EventDeleted)
	}

	var payload struct {
		ID             uuid.UUID   `json:"id"`
		ParticipantIDs []uuid.UUID `json:"participantIds"`
	}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.ID != apptID || len(payload.ParticipantIDs) != 2 {
		t.Error("deleted payload must carry the id and participant ids")
	}

	// отключившийся пользователь событие просто пропускает
	hub.unregisterClient(conn)
	notifier.Publish(services.Event{
		Kind:          services.EventDeleted,
		AppointmentID: apptID,
		Participants:  []uuid.UUID{userID},
	})
}
