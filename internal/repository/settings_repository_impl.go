package repository

import (
	"context"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"
	"medicore/internal/store"
)

type settingsRepository struct{}

func NewSettingsRepository() domainRepo.SettingsRepository {
	return &settingsRepository{}
}

func (r *settingsRepository) Get(ctx context.Context, h store.Handle) (*entity.Settings, error) {
	settings, err := store.Find[entity.Settings](ctx, h, store.TableSettings, entity.SettingsID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := entity.DefaultSettings()
		return &defaults, nil
	}
	if len(settings.Specialties) == 0 {
		settings.Specialties = entity.DefaultSpecialties()
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, h store.Handle, settings *entity.Settings) error {
	return h.Upsert(ctx, store.TableSettings, entity.SettingsID, settings)
}
