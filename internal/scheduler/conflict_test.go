package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
)

var base = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func at(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical", at(0), at(30), at(0), at(30), true},
		{"partial", at(0), at(30), at(15), at(45), true},
		{"contained", at(0), at(60), at(15), at(30), true},
		{"touching end-start", at(0), at(30), at(30), at(60), false},
		{"touching start-end", at(30), at(60), at(0), at(30), false},
		{"disjoint", at(0), at(30), at(60), at(90), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()
	u3 := uuid.New()

	existing := []models.Appointment{
		{ID: uuid.New(), StartsAt: at(0), EndsAt: at(30), Status: models.StatusPending, CreatorID: u1, InviteeID: u2},
	}

	if !HasConflict(existing, at(15), at(45), u1, u3, nil) {
		t.Error("expected conflict for overlapping interval with shared participant")
	}

	// смежные интервалы не конфликтуют
	if HasConflict(existing, at(30), at(60), u1, u2, nil) {
		t.Error("touching intervals must not conflict")
	}

	// чужие участники не конфликтуют
	stranger := uuid.New()
	if HasConflict(existing, at(0), at(30), u3, stranger, nil) {
		t.Error("appointments of unrelated users must not conflict")
	}

	// участие приглашённым тоже занимает слот
	if !HasConflict(existing, at(15), at(45), u3, u2, nil) {
		t.Error("expected conflict when invitee side is shared")
	}
}

func TestHasConflictCancelledAndExcluded(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()

	cancelled := models.Appointment{ID: uuid.New(), StartsAt: at(0), EndsAt: at(30), Status: models.StatusCancelled, CreatorID: u1, InviteeID: u2}
	active := models.Appointment{ID: uuid.New(), StartsAt: at(60), EndsAt: at(90), Status: models.StatusConfirmed, CreatorID: u1, InviteeID: u2}

	existing := []models.Appointment{cancelled, active}

	if HasConflict(existing, at(0), at(30), u1, u2, nil) {
		t.Error("cancelled appointment must not block the slot")
	}

	// запись не конфликтует сама с собой при обновлении
	if HasConflict(existing, at(60), at(90), u1, u2, &active.ID) {
		t.Error("excluded appointment must not conflict with itself")
	}

	if !HasConflict(existing, at(45), at(75), u1, u2, &cancelled.ID) {
		t.Error("exclusion of one id must not hide conflicts with others")
	}
}
