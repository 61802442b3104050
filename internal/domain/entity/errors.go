package entity

import "errors"

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrMissingJustification = errors.New("partial payment requires a payment note")
	ErrInvalidAmount        = errors.New("amounts must not be negative")
	ErrInvalidEnum          = errors.New("invalid enum value")
	ErrInvalidDate          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time format, use HH:MM")
	ErrInvalidSchedule      = errors.New("invalid weekly schedule")
)
