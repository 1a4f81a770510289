package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/appointly/internal/handlers/dto"
	"github.com/thereayou/appointly/internal/middleware"
	"github.com/thereayou/appointly/internal/models"
	"github.com/thereayou/appointly/internal/services"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// CreateAppointment создает запись со статусом PENDING
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.service.Create(userID, services.CreateAppointmentInput{
		Title:        req.Title,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		InviteeEmail: req.InviteeEmail,
		Notes:        req.Notes,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetMyAppointments — все записи пользователя по возрастанию времени начала
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	appts, err := h.service.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get appointments"})
		return
	}

	c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	appt, err := h.service.GetOne(userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateAppointmentInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		status := models.AppointmentStatus(*req.Status)
		in.Status = &status
	}

	appt, err := h.service.Update(userID, c.Param("id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	appt, err := h.service.Cancel(userID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment идемпотентен: отсутствующий id — тоже успех
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	if err := h.service.Remove(userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func writeServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError

	switch {
	case errors.Is(err, services.ErrOverlap):
		c.JSON(http.StatusBadRequest, gin.H{"error": "OVERLAP"})
	case errors.Is(err, services.ErrInviteeNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invitee not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator can do this"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
