package repository

import (
	"context"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"
	"medicore/internal/store"
)

type notificationLogRepository struct{}

func NewNotificationLogRepository() domainRepo.NotificationLogRepository {
	return &notificationLogRepository{}
}

func (r *notificationLogRepository) Create(ctx context.Context, h store.Handle, log *entity.NotificationLog) error {
	return h.Upsert(ctx, store.TableNotifications, log.ID, log)
}

func (r *notificationLogRepository) FindAll(ctx context.Context, h store.Handle) ([]entity.NotificationLog, error) {
	return store.List[entity.NotificationLog](ctx, h, store.TableNotifications)
}
