package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"medicore/config"
	"medicore/internal/delivery/http/middleware"
	"medicore/internal/domain/entity"
	"medicore/internal/infrastructure/bytestore"
	"medicore/internal/repository"
	"medicore/internal/seed"
	"medicore/internal/service"
	"medicore/internal/store"
	"medicore/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Seeded doctor d1 works Mon-Thu and Sun 09:00-17:00 for a fee of 300.
const (
	monday = "2024-06-10"
	friday = "2024-06-14"
)

// fixedNow is Monday 2024-06-10 at 08:00 local time.
func fixedNow() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.Local) }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	store         *store.Store
	appointments  AppointmentUsecase
	doctors       DoctorUsecase
	patients      PatientUsecase
	users         UserUsecase
	auth          AuthUsecase
	settings      SettingsUsecase
	notifications NotificationUsecase
	dashboard     *dashboardUsecase
	finance       FinanceUsecase
	backup        *backupUsecase
	sweep         *service.ReminderSweep
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithPersister(t, nil)
}

func newFixtureWithPersister(t *testing.T, persister *store.Persister) *fixture {
	t.Helper()
	log := quietLogger()
	s, err := store.Open(context.Background(), store.Options{
		Persister: persister,
		Seed:      seed.Defaults(log),
		Log:       log,
	})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	locks := service.NewKeyedMutex(log)
	t.Cleanup(locks.Stop)

	appointmentRepo := repository.NewAppointmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	userRepo := repository.NewUserRepository()
	settingsRepo := repository.NewSettingsRepository()
	notificationRepo := repository.NewNotificationLogRepository()

	engine := service.NewScheduleEngine(log, doctorRepo, appointmentRepo)
	queue := service.NewQueueAllocator(service.QueueScopeDoctor, appointmentRepo)
	mailer := service.NewLogMailer(log, notificationRepo)
	sweep := service.NewReminderSweep(log, locks, appointmentRepo, doctorRepo, patientRepo, settingsRepo, mailer)
	sweep.SetClock(fixedNow)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test", AccessExpiry: time.Minute})

	dashboard := NewDashboardUsecase(s, log, sweep, appointmentRepo, doctorRepo, patientRepo).(*dashboardUsecase)
	dashboard.now = fixedNow
	backup := NewBackupUsecase(s, log, afero.NewMemMapFs()).(*backupUsecase)
	backup.now = fixedNow

	return &fixture{
		store:         s,
		appointments:  NewAppointmentUsecase(s, log, locks, appointmentRepo, doctorRepo, patientRepo, engine, queue),
		doctors:       NewDoctorUsecase(s, log, doctorRepo, appointmentRepo),
		patients:      NewPatientUsecase(s, log, locks, patientRepo, appointmentRepo),
		users:         NewUserUsecase(s, log, locks, userRepo, doctorRepo),
		auth:          NewAuthUsecase(s, log, userRepo, jwtService),
		settings:      NewSettingsUsecase(s, log, settingsRepo),
		notifications: NewNotificationUsecase(s, log, notificationRepo, patientRepo, doctorRepo, appointmentRepo, settingsRepo, mailer),
		dashboard:     dashboard,
		finance:       NewFinanceUsecase(s, log, appointmentRepo, doctorRepo),
		backup:        backup,
		sweep:         sweep,
	}
}

func asDoctor(doctorID string) context.Context {
	return middleware.WithPrincipal(context.Background(), middleware.Principal{
		UserID:    "u-" + doctorID,
		Role:      entity.RoleDoctor,
		RelatedID: doctorID,
	})
}

func quotaPersister() *store.Persister {
	return store.NewPersister(bytestore.NewMemory(), store.DefaultKey, 1, quietLogger())
}
