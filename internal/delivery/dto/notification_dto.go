package dto

import "time"

// SendNotificationRequest sends a manual message to a patient. When Message
// is empty the follow-up template is rendered, using the doctor of
// AppointmentID if one is given.
type SendNotificationRequest struct {
	PatientID     string `json:"patient_id" validate:"required"`
	AppointmentID string `json:"appointment_id"`
	Subject       string `json:"subject" validate:"omitempty,max=200"`
	Message       string `json:"message"`
}

type NotificationResponse struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}
