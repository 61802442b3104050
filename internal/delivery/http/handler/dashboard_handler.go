package handler

import (
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	financeUsecase   usecase.FinanceUsecase
	validator        *validator.CustomValidator
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, financeUsecase usecase.FinanceUsecase, validator *validator.CustomValidator) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		financeUsecase:   financeUsecase,
		validator:        validator,
	}
}

// GetDashboard runs the reminder sweep and returns today's queue board.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.dashboardUsecase.Refresh(r.Context())
	respond(w, http.StatusOK, "Dashboard retrieved successfully", board, err, "Failed to build dashboard")
}

// GetFinanceSummary accepts optional from and to dates as query parameters.
func (h *DashboardHandler) GetFinanceSummary(w http.ResponseWriter, r *http.Request) {
	q := dto.FinanceQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := h.validator.Validate(&q); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	summary, err := h.financeUsecase.Summary(r.Context(), &q)
	respond(w, http.StatusOK, "Finance summary retrieved successfully", summary, err, "Failed to build finance summary")
}
