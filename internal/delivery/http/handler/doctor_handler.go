package handler

import (
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	respond(w, http.StatusCreated, "Doctor created successfully", doctor, err, "Failed to create doctor")
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.Get(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "Doctor retrieved successfully", doctor, err, "Failed to get doctor")
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	list, err := h.doctorUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}
	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", list.Doctors, &response.Meta{Total: list.Total})
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusOK, "Doctor updated successfully", doctor, err, "Failed to update doctor")
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	err := h.doctorUsecase.Delete(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "Doctor deleted successfully", nil, err, "Failed to delete doctor")
}
