package usecase

import (
	"context"
	"sort"
	"strings"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/repository"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
)

type SettingsUsecase interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.SettingsRequest) (*dto.SettingsResponse, error)
}

type settingsUsecase struct {
	db           *store.Store
	log          *logrus.Logger
	settingsRepo repository.SettingsRepository
}

func NewSettingsUsecase(db *store.Store, log *logrus.Logger, settingsRepo repository.SettingsRepository) SettingsUsecase {
	return &settingsUsecase{
		db:           db,
		log:          log,
		settingsRepo: settingsRepo,
	}
}

func (u *settingsUsecase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return nil, err
	}
	return converter.SettingsToResponse(settings), nil
}

// Update replaces the settings. Specialties are trimmed, deduplicated and
// sorted; an empty list falls back to the defaults on the next read.
func (u *settingsUsecase) Update(ctx context.Context, req *dto.SettingsRequest) (*dto.SettingsResponse, error) {
	settings := converter.SettingsFromRequest(req)

	seen := make(map[string]bool, len(settings.Specialties))
	specialties := make([]string, 0, len(settings.Specialties))
	for _, s := range settings.Specialties {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		specialties = append(specialties, s)
	}
	sort.Strings(specialties)
	settings.Specialties = specialties

	err := u.settingsRepo.Save(ctx, u.db, settings)
	if !committed(err) {
		u.log.Warnf("Failed to save settings: %+v", err)
		return nil, err
	}
	u.log.Infof("Settings updated: auto_reminders=%t", settings.EnableAutoReminders)
	return converter.SettingsToResponse(settings), err
}
