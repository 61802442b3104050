package usecase

import (
	"context"
	"strings"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
)

const followUpSubject = "Follow-up"

type NotificationUsecase interface {
	List(ctx context.Context) (*dto.NotificationListResponse, error)
	SendManual(ctx context.Context, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error)
}

type notificationUsecase struct {
	db               *store.Store
	log              *logrus.Logger
	notificationRepo repository.NotificationLogRepository
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	appointmentRepo  repository.AppointmentRepository
	settingsRepo     repository.SettingsRepository
	mailer           service.Mailer
}

func NewNotificationUsecase(
	db *store.Store,
	log *logrus.Logger,
	notificationRepo repository.NotificationLogRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	settingsRepo repository.SettingsRepository,
	mailer service.Mailer,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		settingsRepo:     settingsRepo,
		mailer:           mailer,
	}
}

// List returns the notification log, newest first.
func (u *notificationUsecase) List(ctx context.Context) (*dto.NotificationListResponse, error) {
	logs, err := u.notificationRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find notifications: %+v", err)
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(logs),
		Total:         len(logs),
	}, nil
}

// SendManual sends a staff-initiated message to a patient.
func (u *notificationUsecase) SendManual(ctx context.Context, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if strings.TrimSpace(patient.Email) == "" {
		return nil, ErrPatientNoEmail
	}

	body := req.Message
	if strings.TrimSpace(body) == "" {
		if body, err = u.renderFollowUp(ctx, patient, req.AppointmentID); err != nil {
			return nil, err
		}
	}
	subject := req.Subject
	if subject == "" {
		subject = followUpSubject
	}

	entry, err := u.mailer.Send(ctx, u.db, service.Message{
		To:      patient.Email,
		Subject: subject,
		Body:    body,
		Type:    entity.NotificationManual,
	})
	if !committed(err) {
		return nil, err
	}
	return converter.NotificationToResponse(entry), err
}

func (u *notificationUsecase) renderFollowUp(ctx context.Context, patient *entity.Patient, appointmentID string) (string, error) {
	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return "", err
	}

	vars := service.TemplateVars{
		PatientName: patient.Name,
		ClinicName:  settings.ClinicName,
	}
	if appointmentID != "" {
		a, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
		if err != nil {
			return "", err
		}
		if a == nil || a.PatientID != patient.ID {
			return "", ErrAppointmentNotFound
		}
		vars.Date, vars.Time = a.Date, a.Time
		doctor, err := u.doctorRepo.FindByID(ctx, u.db, a.DoctorID)
		if err != nil {
			return "", err
		}
		if doctor != nil {
			vars.DoctorName = doctor.Name
		}
	}
	return service.RenderTemplate(settings.EmailTemplates.FollowUp, vars), nil
}
