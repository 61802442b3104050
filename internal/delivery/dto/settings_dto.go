package dto

type EmailTemplatesDTO struct {
	Reminder string `json:"reminder" validate:"required"`
	FollowUp string `json:"followup" validate:"required"`
}

type SettingsRequest struct {
	ClinicName          string            `json:"clinic_name" validate:"required"`
	PrimaryColor        string            `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor      string            `json:"secondary_color" validate:"omitempty,hexcolor"`
	EnableAutoReminders bool              `json:"enable_auto_reminders"`
	Specialties         []string          `json:"specialties" validate:"dive,required"`
	EmailTemplates      EmailTemplatesDTO `json:"email_templates"`
}

type SettingsResponse struct {
	ClinicName          string            `json:"clinic_name"`
	PrimaryColor        string            `json:"primary_color"`
	SecondaryColor      string            `json:"secondary_color"`
	EnableAutoReminders bool              `json:"enable_auto_reminders"`
	Specialties         []string          `json:"specialties"`
	EmailTemplates      EmailTemplatesDTO `json:"email_templates"`
}
