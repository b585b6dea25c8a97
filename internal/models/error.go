package models

import "errors"

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInternalError      = errors.New("internal error")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidConfig      = errors.New("invalid lunch config")

	// order eligibility
	ErrInvalidDate   = errors.New("invalid date")
	ErrWindowClosed  = errors.New("date is out of the editable window")
	ErrCutoffPassed  = errors.New("today's orders are closed")
	ErrLockedByAdmin = errors.New("order has already been sent to the vendor")
	ErrInvalidOrder  = errors.New("unknown vendor or rice size")
)
