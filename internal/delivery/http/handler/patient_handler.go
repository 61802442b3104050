package handler

import (
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	respond(w, http.StatusCreated, "Patient created successfully", patient, err, "Failed to create patient")
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.Get(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "Patient retrieved successfully", patient, err, "Failed to get patient")
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	list, err := h.patientUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}
	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", list.Patients, &response.Meta{Total: list.Total})
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusOK, "Patient updated successfully", patient, err, "Failed to update patient")
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	err := h.patientUsecase.Delete(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "Patient deleted successfully", nil, err, "Failed to delete patient")
}

func (h *PatientHandler) AddMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.MedicalRecordRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.AddMedicalRecord(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusCreated, "Medical record added successfully", patient, err, "Failed to add medical record")
}
