package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"medicore/internal/domain/entity"
	"medicore/internal/repository"
	"medicore/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{Log: quietLogger()})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mondayDoctor works Mondays 09:00-10:00 only.
func mondayDoctor(id string) *entity.Doctor {
	return &entity.Doctor{
		ID:              id,
		Name:            "Dr. " + id,
		Specialty:       "General Practice",
		ConsultationFee: decimal.NewFromInt(500),
		Schedule: entity.WeeklySchedule{
			{Day: entity.Monday, StartTime: "09:00", EndTime: "10:00", IsWorking: true},
		}.Normalize(),
	}
}

func mustSave(t *testing.T, s *store.Store, table, id string, v any) {
	t.Helper()
	// a write that is live in memory but not durable still counts
	if err := s.Upsert(context.Background(), table, id, v); err != nil && !errors.Is(err, store.ErrPersistFailed) {
		t.Fatalf("Upsert(%s/%s) error = %v", table, id, err)
	}
}

func repos() (*ScheduleEngine, *QueueAllocator) {
	doctors := repository.NewDoctorRepository()
	appointments := repository.NewAppointmentRepository()
	return NewScheduleEngine(quietLogger(), doctors, appointments),
		NewQueueAllocator(QueueScopeDoctor, appointments)
}

// booked fills the fields every stored appointment carries.
func booked(a entity.Appointment) *entity.Appointment {
	if a.Type == 0 {
		a.Type = entity.TypeConsultation
	}
	if a.PaymentStatus == 0 {
		a.PaymentStatus = entity.PaymentPending
	}
	return &a
}
