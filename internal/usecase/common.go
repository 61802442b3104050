package usecase

import (
	"context"
	"errors"
	"time"

	"medicore/internal/delivery/http/middleware"
	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment belongs to another doctor")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrDoctorHasBookings   = errors.New("doctor has active appointments")
	ErrPatientHasBookings  = errors.New("patient has active appointments")
	ErrInvalidRange        = errors.New("from date is after to date")
	ErrPatientNoEmail      = errors.New("patient has no email address")
	ErrLastAdmin           = errors.New("cannot remove the last admin account")
	ErrDoctorLinkRequired  = errors.New("doctor accounts must link an existing doctor")
)

// committed reports whether a write took effect in memory. A failed flush
// still counts: the caller gets its result together with the PersistError.
func committed(err error) bool {
	return err == nil || errors.Is(err, store.ErrPersistFailed)
}

// doctorScope returns the doctor id a Doctor account is restricted to, or
// "" for every other role.
func doctorScope(ctx context.Context) string {
	p, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok || !p.IsDoctor() {
		return ""
	}
	return p.RelatedID
}

func today(now func() time.Time) string {
	return now().Format(entity.DateLayout)
}
