package services

import "errors"

var (
	// ErrOverlap — маркер пересечения интервалов, клиент различает его среди прочих 400
	ErrOverlap = errors.New("OVERLAP")

	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInviteeNotFound = errors.New("invitee not found")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
