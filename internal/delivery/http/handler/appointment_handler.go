package handler

import (
	"net/http"
	"strconv"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// ListAppointments accepts doctor_id, patient_id, date and status filters
// as query parameters.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.AppointmentFilter{
		DoctorID:  q.Get("doctor_id"),
		PatientID: q.Get("patient_id"),
		Date:      q.Get("date"),
		Status:    q.Get("status"),
	}
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	list, err := h.appointmentUsecase.List(r.Context(), &filter)
	if err != nil {
		writeError(w, err, nil, "Failed to get appointments")
		return
	}
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", list.Appointments, &response.Meta{Total: list.Total})
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.appointmentUsecase.Get(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "Appointment retrieved successfully", appt, err, "Failed to get appointment")
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	appt, err := h.appointmentUsecase.Book(r.Context(), &req)
	respond(w, http.StatusCreated, "Appointment booked successfully", appt, err, "Failed to book appointment")
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	appt, err := h.appointmentUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusOK, "Appointment updated successfully", appt, err, "Failed to update appointment")
}

func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangeStatusRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	appt, err := h.appointmentUsecase.ChangeStatus(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusOK, "Appointment status updated", appt, err, "Failed to change appointment status")
}

func (h *AppointmentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	appt, err := h.appointmentUsecase.RecordPayment(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusOK, "Payment recorded successfully", appt, err, "Failed to record payment")
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	err := h.appointmentUsecase.Delete(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "Appointment deleted successfully", nil, err, "Failed to delete appointment")
}

// AvailableSlots answers GET /appointments/slots?doctor_id=&date=[&emergency=true][&exclude_id=].
func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.SlotQuery{
		DoctorID:  q.Get("doctor_id"),
		Date:      q.Get("date"),
		ExcludeID: q.Get("exclude_id"),
	}
	if v := q.Get("emergency"); v != "" {
		emergency, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "Invalid emergency flag")
			return
		}
		query.Emergency = emergency
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.appointmentUsecase.AvailableSlots(r.Context(), &query)
	respond(w, http.StatusOK, "Available slots retrieved successfully", slots, err, "Failed to get available slots")
}
