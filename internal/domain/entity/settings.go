package entity

import "sort"

// SettingsID is the id of the single settings record.
const SettingsID = "clinic"

// EmailTemplates hold the message bodies used for notifications. Supported
// placeholders: {patient_name} {doctor_name} {date} {time} {clinic_name}.
type EmailTemplates struct {
	Reminder string `json:"reminder"`
	FollowUp string `json:"followup"`
}

// Settings is the clinic-wide configuration
type Settings struct {
	ClinicName          string         `json:"clinic_name"`
	PrimaryColor        string         `json:"primary_color"`
	SecondaryColor      string         `json:"secondary_color"`
	EnableAutoReminders bool           `json:"enable_auto_reminders"`
	Specialties         []string       `json:"specialties"`
	EmailTemplates      EmailTemplates `json:"email_templates"`
}

// DefaultSpecialties returns the specialty catalogue offered on first boot, sorted.
func DefaultSpecialties() []string {
	s := []string{
		"Anesthesiology", "Cardiology", "Dermatology", "Emergency Medicine", "Endocrinology",
		"ENT (Otolaryngology)", "Gastroenterology", "General Practice", "General Surgery",
		"Geriatrics", "Hematology", "Infectious Diseases", "Internal Medicine", "Nephrology",
		"Neurology", "Obstetrics & Gynecology", "Oncology", "Ophthalmology", "Orthopedics",
		"Pediatrics", "Physical Medicine & Rehab", "Psychiatry", "Pulmonology", "Radiology",
		"Rheumatology", "Urology",
	}
	sort.Strings(s)
	return s
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		ClinicName:          "MediCore Clinic",
		PrimaryColor:        "#0f766e",
		SecondaryColor:      "#0d9488",
		EnableAutoReminders: true,
		Specialties:         DefaultSpecialties(),
		EmailTemplates: EmailTemplates{
			Reminder: "Dear {patient_name}, this is a reminder for your appointment on {date} at {time}.",
			FollowUp: "Dear {patient_name}, hope you are well after your visit with {doctor_name}.",
		},
	}
}
