package scheduler

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/appointly/internal/models"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Смежные интервалы (конец одного == начало другого) не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Involves — участвует ли хотя бы один из userA/userB в записи как создатель или приглашённый
func Involves(appt *models.Appointment, userA, userB uuid.UUID) bool {
	return appt.IsParticipant(userA) || appt.IsParticipant(userB)
}

// HasConflict проверяет предлагаемый интервал против существующих записей.
// Отменённые записи слот не занимают, excludeID исключает саму запись при обновлении.
// Тот же предикат реализует SQL-запрос в internal/database.
func HasConflict(existing []models.Appointment, start, end time.Time, userA, userB uuid.UUID, excludeID *uuid.UUID) bool {
	for i := range existing {
		appt := &existing[i]
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if appt.Status == models.StatusCancelled {
			continue
		}
		if !Involves(appt, userA, userB) {
			continue
		}
		if Overlaps(start, end, appt.StartsAt, appt.EndsAt) {
			return true
		}
	}
	return false
}
