package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

func SettingsToResponse(s *entity.Settings) *dto.SettingsResponse {
	if s == nil {
		return nil
	}
	return &dto.SettingsResponse{
		ClinicName:          s.ClinicName,
		PrimaryColor:        s.PrimaryColor,
		SecondaryColor:      s.SecondaryColor,
		EnableAutoReminders: s.EnableAutoReminders,
		Specialties:         s.Specialties,
		EmailTemplates: dto.EmailTemplatesDTO{
			Reminder: s.EmailTemplates.Reminder,
			FollowUp: s.EmailTemplates.FollowUp,
		},
	}
}

func SettingsFromRequest(req *dto.SettingsRequest) *entity.Settings {
	return &entity.Settings{
		ClinicName:          req.ClinicName,
		PrimaryColor:        req.PrimaryColor,
		SecondaryColor:      req.SecondaryColor,
		EnableAutoReminders: req.EnableAutoReminders,
		Specialties:         req.Specialties,
		EmailTemplates: entity.EmailTemplates{
			Reminder: req.EmailTemplates.Reminder,
			FollowUp: req.EmailTemplates.FollowUp,
		},
	}
}
