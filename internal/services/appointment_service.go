package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
	"gorm.io/gorm"
)

// AppointmentService владеет жизненным циклом записи: создание, изменение,
// отмена, удаление. Перед каждой сменой интервала проверяется пересечение
// с существующими записями обоих участников.
type AppointmentService struct {
	store  AppointmentStore
	users  UserFinder
	events EventPublisher

	// mu сериализует мутации: проверка пересечения и запись должны быть
	// единым целым, иначе два конкурентных create могут оба пройти проверку
	mu sync.Mutex
}

func NewAppointmentService(store AppointmentStore, users UserFinder, events EventPublisher) *AppointmentService {
	return &AppointmentService{store: store, users: users, events: events}
}

type CreateAppointmentInput struct {
	Title        string
	StartsAt     time.Time
	EndsAt       time.Time
	InviteeEmail string
	Notes        string
}

type UpdateAppointmentInput struct {
	Title    *string
	StartsAt *time.Time
	EndsAt   *time.Time
	Notes    *string
	Status   *models.AppointmentStatus
}

func (s *AppointmentService) Create(creatorID uuid.UUID, in CreateAppointmentInput) (*models.Appointment, error) {
	if !in.StartsAt.Before(in.EndsAt) {
		return nil, &ValidationError{Msg: "startsAt must be before endsAt"}
	}

	invitee, err := s.users.FindUserByEmail(in.InviteeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteeNotFound
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overlap, err := s.store.FindOverlap(in.StartsAt, in.EndsAt, creatorID, invitee.ID, nil)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrOverlap
	}

	appt := &models.Appointment{
		Title:     in.Title,
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		Notes:     in.Notes,
		Status:    models.StatusPending,
		CreatorID: creatorID,
		InviteeID: invitee.ID,
	}

	if err := s.store.CreateAppointment(appt); err != nil {
		return nil, err
	}

	s.publish(EventCreated, appt)

	return appt, nil
}

func (s *AppointmentService) Update(requesterID uuid.UUID, id string, in UpdateAppointmentInput) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.store.GetAppointment(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appt.CreatorID != requesterID {
		return nil, ErrForbidden
	}

	nextStartsAt := appt.StartsAt
	if in.StartsAt != nil {
		nextStartsAt = *in.StartsAt
	}
	nextEndsAt := appt.EndsAt
	if in.EndsAt != nil {
		nextEndsAt = *in.EndsAt
	}
	if !nextStartsAt.Before(nextEndsAt) {
		return nil, &ValidationError{Msg: "startsAt must be before endsAt"}
	}

	// проверка пересечения без самой записи
	overlap, err := s.store.FindOverlap(nextStartsAt, nextEndsAt, appt.CreatorID, appt.InviteeID, &appt.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrOverlap
	}

	appt.StartsAt = nextStartsAt
	appt.EndsAt = nextEndsAt
	if in.Title != nil {
		appt.Title = *in.Title
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	if in.Status != nil {
		appt.Status = *in.Status
	}

	if err := s.store.SaveAppointment(appt); err != nil {
		return nil, err
	}

	s.publish(EventUpdated, appt)

	return appt, nil
}

// Cancel переводит запись в CANCELLED: слот освобождается, запись остаётся
func (s *AppointmentService) Cancel(requesterID uuid.UUID, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.store.GetAppointment(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appt.CreatorID != requesterID {
		return nil, ErrForbidden
	}

	appt.Status = models.StatusCancelled

	if err := s.store.SaveAppointment(appt); err != nil {
		return nil, err
	}

	s.publish(EventCancelled, appt)

	return appt, nil
}

// Remove удаляет запись. Отсутствующий id — не ошибка (идемпотентность).
func (s *AppointmentService) Remove(requesterID uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.store.GetAppointment(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if appt.CreatorID != requesterID {
		return ErrForbidden
	}

	if err := s.store.DeleteAppointment(id); err != nil {
		return err
	}

	// запись уже удалена, участников передаём отдельно
	s.events.Publish(Event{
		Kind:          EventDeleted,
		AppointmentID: appt.ID,
		Participants:  []uuid.UUID{appt.CreatorID, appt.InviteeID},
	})

	return nil
}

func (s *AppointmentService) ListForUser(userID uuid.UUID) ([]models.Appointment, error) {
	return s.store.GetUserAppointments(userID.String())
}

// GetOne возвращает NotFound и для отсутствующей записи, и для чужой —
// внешний сигнал одинаковый
func (s *AppointmentService) GetOne(requesterID uuid.UUID, id string) (*models.Appointment, error) {
	appt, err := s.store.GetAppointment(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !appt.IsParticipant(requesterID) {
		return nil, ErrNotFound
	}

	return appt, nil
}

func (s *AppointmentService) publish(kind string, appt *models.Appointment) {
	s.events.Publish(Event{
		Kind:          kind,
		Appointment:   appt,
		AppointmentID: appt.ID,
		Participants:  []uuid.UUID{appt.CreatorID, appt.InviteeID},
	})
}
