package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
)

const reminderSubject = "Appointment Reminder"

// TemplateVars are the values substituted into email templates.
type TemplateVars struct {
	PatientName string
	DoctorName  string
	Date        string
	Time        string
	ClinicName  string
}

// RenderTemplate replaces every placeholder occurrence literally. Unknown
// tokens are left as they are.
func RenderTemplate(tpl string, v TemplateVars) string {
	return strings.NewReplacer(
		"{patient_name}", v.PatientName,
		"{doctor_name}", v.DoctorName,
		"{date}", v.Date,
		"{time}", v.Time,
		"{clinic_name}", v.ClinicName,
	).Replace(tpl)
}

// SweepResult summarises one reminder sweep.
type SweepResult struct {
	Date     string `json:"date"`
	Disabled bool   `json:"disabled"`
	Eligible int    `json:"eligible"`
	Sent     int    `json:"sent"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

// ReminderSweep sends one reminder per Scheduled appointment dated tomorrow.
// The reminderSent flag is latched and saved before the send, so a crash
// between the two loses a reminder rather than duplicating one.
type ReminderSweep struct {
	log             *logrus.Logger
	locks           *KeyedMutex
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	settingsRepo    repository.SettingsRepository
	mailer          Mailer
	now             func() time.Time
}

func NewReminderSweep(
	log *logrus.Logger,
	locks *KeyedMutex,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	settingsRepo repository.SettingsRepository,
	mailer Mailer,
) *ReminderSweep {
	return &ReminderSweep{
		log:             log,
		locks:           locks,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		settingsRepo:    settingsRepo,
		mailer:          mailer,
		now:             time.Now,
	}
}

// SetClock replaces the time source.
func (r *ReminderSweep) SetClock(now func() time.Time) { r.now = now }

// Tomorrow is the date reminders are sent for, in local wall-clock time.
func (r *ReminderSweep) Tomorrow() string {
	return r.now().AddDate(0, 0, 1).Format(entity.DateLayout)
}

// Run performs one sweep. Each appointment is handled on its own; a failure
// on one does not stop the rest.
func (r *ReminderSweep) Run(ctx context.Context, h store.Handle) (*SweepResult, error) {
	result := &SweepResult{Date: r.Tomorrow()}

	settings, err := r.settingsRepo.Get(ctx, h)
	if err != nil {
		r.log.Warnf("Failed to load settings for reminder sweep: %+v", err)
		return nil, err
	}
	if !settings.EnableAutoReminders {
		result.Disabled = true
		return result, nil
	}

	unlock := r.locks.Lock(DateKey(result.Date))
	defer unlock()

	due, err := r.appointmentRepo.FindByDate(ctx, h, result.Date)
	if err != nil {
		r.log.Warnf("Failed to find appointments for %s: %+v", result.Date, err)
		return nil, err
	}

	for i := range due {
		a := &due[i]
		if a.Status != entity.StatusScheduled || a.ReminderSent {
			continue
		}
		result.Eligible++

		msg, ok := r.compose(ctx, h, a, settings)
		if !ok {
			result.Skipped++
			continue
		}

		a.ReminderSent = true
		if err := r.appointmentRepo.Save(ctx, h, a); err != nil {
			if !errors.Is(err, store.ErrPersistFailed) {
				r.log.Warnf("Failed to latch reminder for appointment %s: %+v", a.ID, err)
				result.Failed++
				continue
			}
			// the latch is visible in memory; the snapshot will catch up
			r.log.Warnf("Reminder latch for appointment %s not persisted: %+v", a.ID, err)
		}

		if _, err := r.mailer.Send(ctx, h, msg); err != nil && !errors.Is(err, store.ErrPersistFailed) {
			r.log.Warnf("Failed to send reminder for appointment %s: %+v", a.ID, err)
			result.Failed++
			continue
		}
		result.Sent++
		r.log.Infof("Reminder sent: appointment=%s, recipient=%s", a.ID, msg.To)
	}

	return result, nil
}

// compose builds the reminder for a. It reports false when the patient or
// doctor is missing or the patient has no email address.
func (r *ReminderSweep) compose(ctx context.Context, h store.Handle, a *entity.Appointment, settings *entity.Settings) (Message, bool) {
	patient, err := r.patientRepo.FindByID(ctx, h, a.PatientID)
	if err != nil || patient == nil {
		r.log.Warnf("Skipping reminder for appointment %s: patient %s unavailable: %v", a.ID, a.PatientID, err)
		return Message{}, false
	}
	if strings.TrimSpace(patient.Email) == "" {
		r.log.Debugf("Skipping reminder for appointment %s: patient has no email", a.ID)
		return Message{}, false
	}
	doctor, err := r.doctorRepo.FindByID(ctx, h, a.DoctorID)
	if err != nil || doctor == nil {
		r.log.Warnf("Skipping reminder for appointment %s: doctor %s unavailable: %v", a.ID, a.DoctorID, err)
		return Message{}, false
	}

	body := RenderTemplate(settings.EmailTemplates.Reminder, TemplateVars{
		PatientName: patient.Name,
		DoctorName:  doctor.Name,
		Date:        a.Date,
		Time:        a.Time,
		ClinicName:  settings.ClinicName,
	})
	return Message{
		To:      patient.Email,
		Subject: reminderSubject + ": " + a.Date,
		Body:    body,
		Type:    entity.NotificationAuto,
	}, true
}
