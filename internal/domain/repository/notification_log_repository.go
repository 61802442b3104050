package repository

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, h store.Handle, log *entity.NotificationLog) error
	FindAll(ctx context.Context, h store.Handle) ([]entity.NotificationLog, error)
}
