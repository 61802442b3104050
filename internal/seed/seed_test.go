package seed

import (
	"context"
	"io"
	"testing"
	"time"

	"medicore/internal/domain/entity"
	"medicore/internal/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func openSeeded(t *testing.T) *store.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s, err := store.Open(context.Background(), store.Options{Seed: Defaults(log), Log: log})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	s := openSeeded(t)

	settings, err := repository.NewSettingsRepository().Get(ctx, s)
	if err != nil || settings.ClinicName != "MediCore Clinic" || !settings.EnableAutoReminders {
		t.Errorf("settings = %+v, %v", settings, err)
	}

	admin, err := repository.NewUserRepository().FindByUsername(ctx, s, "admin")
	if err != nil || admin == nil {
		t.Fatalf("admin user = %v, %v", admin, err)
	}
	if admin.Role != entity.RoleAdmin {
		t.Errorf("admin.Role = %s", admin.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")) != nil {
		t.Error("admin password hash does not match")
	}

	docs, _ := repository.NewDoctorRepository().FindAll(ctx, s)
	if len(docs) != 3 {
		t.Fatalf("doctors = %d, want 3", len(docs))
	}
	for _, d := range docs {
		if err := d.Schedule.Validate(); err != nil || len(d.Schedule) != 7 {
			t.Errorf("doctor %s schedule invalid: %v", d.ID, err)
		}
	}
}

func TestDemoKeepsBookingRules(t *testing.T) {
	ctx := context.Background()
	s := openSeeded(t)

	var res *DemoResult
	err := s.Batch(ctx, func(h store.Handle) error {
		var err error
		res, err = Demo(ctx, h, DemoOptions{
			Patients:     5,
			Appointments: 40,
			Days:         7,
			Scope:        service.QueueScopeDoctor,
			RandSeed:     42,
			Now:          time.Date(2024, 6, 10, 8, 0, 0, 0, time.Local),
		})
		return err
	})
	if err != nil {
		t.Fatalf("Demo() error = %v", err)
	}
	if res.Patients != 5 || res.Appointments == 0 {
		t.Fatalf("Demo() = %+v", res)
	}

	appts, _ := repository.NewAppointmentRepository().FindAll(ctx, s)
	slots := map[string]bool{}
	queues := map[string][]int{}
	for _, a := range appts {
		key := a.DoctorID + "|" + a.Date + "|" + a.Time
		if slots[key] {
			t.Errorf("double booking at %s", key)
		}
		slots[key] = true
		queues[a.DoctorID+"|"+a.Date] = append(queues[a.DoctorID+"|"+a.Date], a.QueueNumber)
	}
	for key, nums := range queues {
		for i, n := range nums {
			if n != i+1 {
				t.Errorf("%s queue numbers = %v, want 1..%d", key, nums, len(nums))
				break
			}
		}
	}
}
