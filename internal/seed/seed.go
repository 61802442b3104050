// Package seed holds the records a new store starts with.
package seed

import (
	"context"
	"fmt"

	"medicore/internal/domain/entity"
	"medicore/internal/repository"
	"medicore/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user     entity.User
	password string
}

var accounts = []account{
	{user: entity.User{ID: "u1", Name: "Super Admin", Username: "Admin", Role: entity.RoleAdmin}, password: "admin123"},
	{user: entity.User{ID: "u2", Name: "Front Desk", Username: "Reception", Role: entity.RoleReceptionist}, password: "user123"},
	{user: entity.User{ID: "u3", Name: "Dr. Sarah Hassan", Username: "Doctor", Role: entity.RoleDoctor, RelatedID: "d1"}, password: "doc123"},
}

func weekdays(start, end string, days ...entity.Weekday) entity.WeeklySchedule {
	ws := make(entity.WeeklySchedule, 0, len(days))
	for _, d := range days {
		ws = append(ws, entity.DaySchedule{Day: d, StartTime: start, EndTime: end, IsWorking: true})
	}
	return ws.Normalize()
}

func doctors() []entity.Doctor {
	return []entity.Doctor{
		{
			ID:              "d1",
			Name:            "Dr. Sarah Hassan",
			Specialty:       "General Practice",
			Email:           "sarah.hassan@medicore.local",
			Phone:           "+20 100 000 0001",
			ConsultationFee: decimal.NewFromInt(300),
			Schedule:        weekdays("09:00", "17:00", entity.Monday, entity.Tuesday, entity.Wednesday, entity.Thursday, entity.Sunday),
		},
		{
			ID:              "d2",
			Name:            "Dr. Omar Khaled",
			Specialty:       "Cardiology",
			Email:           "omar.khaled@medicore.local",
			Phone:           "+20 100 000 0002",
			ConsultationFee: decimal.NewFromInt(600),
			Schedule:        weekdays("12:00", "20:00", entity.Monday, entity.Wednesday, entity.Saturday),
		},
		{
			ID:              "d3",
			Name:            "Dr. Laila Mostafa",
			Specialty:       "Pediatrics",
			Email:           "laila.mostafa@medicore.local",
			Phone:           "+20 100 000 0003",
			ConsultationFee: decimal.NewFromInt(450),
			Schedule:        weekdays("10:00", "14:00", entity.Tuesday, entity.Thursday, entity.Saturday),
		},
	}
}

func patients() []entity.Patient {
	return []entity.Patient{
		{
			ID:      "p1",
			Name:    "Ahmed Ali",
			Email:   "ahmed.ali@example.com",
			Phone:   "+20 111 000 0001",
			Age:     42,
			Gender:  entity.GenderMale,
			Address: "12 Nile St, Cairo",
			History: []entity.MedicalRecord{
				{ID: "mr1", Date: "2023-11-02", Condition: "Hypertension", Treatment: "Lifestyle changes, follow-up in 3 months", Medications: "Amlodipine 5mg"},
			},
		},
		{
			ID:      "p2",
			Name:    "Mona Ibrahim",
			Email:   "mona.ibrahim@example.com",
			Phone:   "+20 111 000 0002",
			Age:     29,
			Gender:  entity.GenderFemale,
			Address: "4 Tahrir Sq, Cairo",
			History: []entity.MedicalRecord{},
		},
	}
}

// Defaults returns the SeedFunc that writes the settings, staff accounts,
// doctors and patients a new clinic starts with.
func Defaults(log *logrus.Logger) store.SeedFunc {
	return func(ctx context.Context, h store.Handle) error {
		settings := entity.DefaultSettings()
		if err := repository.NewSettingsRepository().Save(ctx, h, &settings); err != nil {
			return err
		}

		userRepo := repository.NewUserRepository()
		for _, a := range accounts {
			user := a.user
			hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", user.Username, err)
			}
			user.PasswordHash = string(hash)
			if err := userRepo.Save(ctx, h, &user); err != nil {
				return err
			}
		}

		doctorRepo := repository.NewDoctorRepository()
		for _, d := range doctors() {
			if err := doctorRepo.Save(ctx, h, &d); err != nil {
				return err
			}
		}

		patientRepo := repository.NewPatientRepository()
		for _, p := range patients() {
			if err := patientRepo.Save(ctx, h, &p); err != nil {
				return err
			}
		}

		if log != nil {
			log.Infof("Seeded store: %d users, %d doctors, %d patients", len(accounts), len(doctors()), len(patients()))
		}
		return nil
	}
}
