package handler

import (
	"errors"
	"net/http"

	"medicore/internal/domain/entity"
	"medicore/internal/service"
	"medicore/internal/store"
	"medicore/internal/usecase"
	"medicore/pkg/response"
)

// writeError maps usecase and domain errors to HTTP responses. A write that
// was applied but not persisted is answered with 507 and the applied data.
func writeError(w http.ResponseWriter, err error, data interface{}, fallback string) {
	switch {
	case errors.Is(err, store.ErrPersistFailed):
		response.InsufficientStorage(w, "", data)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid username or password")
	case errors.Is(err, usecase.ErrAppointmentNotOwned):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrDoctorHasBookings),
		errors.Is(err, usecase.ErrPatientHasBookings),
		errors.Is(err, usecase.ErrLastAdmin):
		response.Conflict(w, err.Error())
	case errors.Is(err, entity.ErrMissingJustification),
		errors.Is(err, service.ErrDoctorNotAvailable),
		errors.Is(err, service.ErrOutsideSchedule),
		errors.Is(err, usecase.ErrPatientNoEmail),
		errors.Is(err, usecase.ErrDoctorLinkRequired):
		response.Unprocessable(w, err.Error())
	case errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrInvalidEnum),
		errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrInvalidTime),
		errors.Is(err, entity.ErrInvalidSchedule),
		errors.Is(err, usecase.ErrInvalidRange),
		errors.Is(err, usecase.ErrEmptyBackup),
		errors.Is(err, store.ErrStoreCorrupt),
		errors.Is(err, store.ErrSchemaTooNew):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// respond writes data on success and falls back to writeError otherwise.
func respond(w http.ResponseWriter, status int, message string, data interface{}, err error, fallback string) {
	if err != nil {
		writeError(w, err, data, fallback)
		return
	}
	response.Success(w, status, message, data)
}
