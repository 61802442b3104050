package repository

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

type SettingsRepository interface {
	// Get returns the stored settings, or the defaults when none are stored.
	Get(ctx context.Context, h store.Handle) (*entity.Settings, error)
	Save(ctx context.Context, h store.Handle, settings *entity.Settings) error
}
