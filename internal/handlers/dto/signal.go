package dto

import "github.com/google/uuid"

// SignalRouting — сервер читает из offer/answer/ice только поле to,
// остальное (sdp, candidate) пересылается как есть
type SignalRouting struct {
	To uuid.UUID `json:"to"`
}
