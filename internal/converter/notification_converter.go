package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func NotificationToResponse(n *entity.NotificationLog) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:             n.ID,
		Date:           n.Date,
		RecipientEmail: n.RecipientEmail,
		Subject:        n.Subject,
		Message:        n.Message,
		Type:           n.Type.String(),
	}
}

func NotificationsToResponses(logs []entity.NotificationLog) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(logs))
	for i := range logs {
		responses[i] = *NotificationToResponse(&logs[i])
	}
	return responses
}
