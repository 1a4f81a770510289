package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
)

func (d *Database) CreateAppointment(appt *models.Appointment) error {
	return d.db.Create(appt).Error
}

func (d *Database) SaveAppointment(appt *models.Appointment) error {
	return d.db.Save(appt).Error
}

func (d *Database) GetAppointment(id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := d.db.First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// GetAppointmentCtx — вариант с контекстом для авторизации join в сигнальном слое,
// где время ожидания ограничено
func (d *Database) GetAppointmentCtx(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := d.db.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// GetUserAppointments возвращает записи, где пользователь создатель или приглашённый,
// по возрастанию времени начала
func (d *Database) GetUserAppointments(userID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := d.db.
		Where("creator_id = ? OR invitee_id = ?", userID, userID).
		Order("starts_at ASC").
		Find(&appts).Error
	return appts, err
}

func (d *Database) DeleteAppointment(id string) error {
	return d.db.Delete(&models.Appointment{}, "id = ?", id).Error
}

// FindOverlap проверяет пересечение полуоткрытых интервалов: starts_at < end AND ends_at > start.
// Отменённые записи слот не занимают, excludeID исключает саму запись при обновлении.
func (d *Database) FindOverlap(start, end time.Time, userA, userB uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := d.db.Model(&models.Appointment{}).
		Where("status <> ?", models.StatusCancelled).
		Where("starts_at < ? AND ends_at > ?", end, start).
		Where("creator_id IN (?, ?) OR invitee_id IN (?, ?)", userA, userB, userA, userB)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
