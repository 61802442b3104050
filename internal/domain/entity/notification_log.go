package entity

import "time"

// NotificationType tells whether a message was sent by the reminder sweep or by staff.
type NotificationType uint8

const (
	NotificationAuto NotificationType = iota + 1
	NotificationManual
)

var notificationTypeLabels = map[NotificationType]string{
	NotificationAuto:   "Auto",
	NotificationManual: "Manual",
}

func ParseNotificationType(s string) (NotificationType, error) {
	return parseEnum(notificationTypeLabels, "notification type", s)
}

func (n NotificationType) String() string { return enumString(notificationTypeLabels, n) }
func (n NotificationType) MarshalText() ([]byte, error) {
	return marshalEnum(notificationTypeLabels, "notification type", n)
}
func (n *NotificationType) UnmarshalText(b []byte) error {
	return unmarshalInto(n, notificationTypeLabels, "notification type", b)
}

// NotificationLog is an immutable record of a sent message
type NotificationLog struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"date"`
	RecipientEmail string           `json:"recipient_email"`
	Subject        string           `json:"subject"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
}
