package handler

import (
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

func (h *NotificationHandler) GetAllNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.notificationUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}
	response.SuccessWithMeta(w, http.StatusOK, "Notifications retrieved successfully", list.Notifications, &response.Meta{Total: list.Total})
}

func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.SendNotificationRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	sent, err := h.notificationUsecase.SendManual(r.Context(), &req)
	respond(w, http.StatusCreated, "Notification sent", sent, err, "Failed to send notification")
}
