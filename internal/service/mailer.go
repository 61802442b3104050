package service

import (
	"context"
	"time"

	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	Body    string
	Type    entity.NotificationType
}

// Mailer delivers a message and records it in the notification log.
type Mailer interface {
	Send(ctx context.Context, h store.Handle, msg Message) (*entity.NotificationLog, error)
}

// logMailer "sends" by writing a log line; the NotificationLog row is the
// durable record of the send.
type logMailer struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationLogRepository
	now              func() time.Time
}

func NewLogMailer(log *logrus.Logger, notificationRepo repository.NotificationLogRepository) Mailer {
	return &logMailer{
		log:              log,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

func (m *logMailer) Send(ctx context.Context, h store.Handle, msg Message) (*entity.NotificationLog, error) {
	if msg.Type == 0 {
		msg.Type = entity.NotificationManual
	}

	m.log.WithFields(logrus.Fields{
		"recipient": msg.To,
		"type":      msg.Type.String(),
	}).Infof("[MAILER] To %s: %s", msg.To, msg.Subject)

	entry := &entity.NotificationLog{
		ID:             uuid.NewString(),
		Date:           m.now(),
		RecipientEmail: msg.To,
		Subject:        msg.Subject,
		Message:        msg.Body,
		Type:           msg.Type,
	}
	if err := m.notificationRepo.Create(ctx, h, entry); err != nil {
		m.log.Warnf("Failed to create notification log: %+v", err)
		return entry, err
	}
	return entry, nil
}
