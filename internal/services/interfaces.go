package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
)

type AppointmentStore interface {
	CreateAppointment(appt *models.Appointment) error
	SaveAppointment(appt *models.Appointment) error
	GetAppointment(id string) (*models.Appointment, error)
	GetUserAppointments(userID string) ([]models.Appointment, error)
	DeleteAppointment(id string) error
	FindOverlap(start, end time.Time, userA, userB uuid.UUID, excludeID *uuid.UUID) (bool, error)
}

type UserFinder interface {
	FindUserByEmail(email string) (*models.User, error)
}
