package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medicore/internal/domain/entity"
	"medicore/internal/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNoDoctors = errors.New("no doctors to book demo appointments with")

type DemoOptions struct {
	Patients     int
	Appointments int
	// Days is how many days ahead, starting today, appointments are spread over.
	Days  int
	Scope service.QueueScope
	// RandSeed makes the generated data reproducible; 0 picks a random seed.
	RandSeed uint64
	Now      time.Time
}

type DemoResult struct {
	Patients     int
	Appointments int
}

// Demo adds fake patients and appointments. Appointments are only placed on
// free slots of the existing doctors and get queue numbers in order, so the
// result obeys the same rules as real bookings.
func Demo(ctx context.Context, h store.Handle, opts DemoOptions) (*DemoResult, error) {
	if opts.Days <= 0 {
		opts.Days = 7
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	faker := gofakeit.New(opts.RandSeed)

	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	result := &DemoResult{}
	for i := 0; i < opts.Patients; i++ {
		p := fakePatient(faker)
		if err := patientRepo.Save(ctx, h, &p); err != nil {
			return result, err
		}
		result.Patients++
	}
	if opts.Appointments == 0 {
		return result, nil
	}

	docs, err := doctorRepo.FindAll(ctx, h)
	if err != nil {
		return result, err
	}
	if len(docs) == 0 {
		return result, ErrNoDoctors
	}
	pats, err := patientRepo.FindAll(ctx, h)
	if err != nil {
		return result, err
	}
	if len(pats) == 0 {
		return result, fmt.Errorf("no patients to book demo appointments for")
	}
	booked, err := appointmentRepo.FindAll(ctx, h)
	if err != nil {
		return result, err
	}

	types := []entity.AppointmentType{entity.TypeFirstVisit, entity.TypeConsultation, entity.TypeFollowUp}
	attempts := 0
	for result.Appointments < opts.Appointments && attempts < opts.Appointments*20 {
		attempts++
		doc := &docs[faker.Number(0, len(docs)-1)]
		date := opts.Now.AddDate(0, 0, faker.Number(0, opts.Days-1)).Format(entity.DateLayout)

		slots, err := service.GenerateSlots(doc, date, false)
		if err != nil {
			continue
		}
		free := service.FreeSlots(slots, booked, doc.ID, date, "")
		if len(free) == 0 {
			continue
		}

		a := entity.Appointment{
			ID:          uuid.NewString(),
			DoctorID:    doc.ID,
			PatientID:   pats[faker.Number(0, len(pats)-1)].ID,
			Date:        date,
			Time:        free[faker.Number(0, len(free)-1)],
			Status:      entity.StatusScheduled,
			Type:        types[faker.Number(0, len(types)-1)],
			TotalFee:    doc.ConsultationFee,
			AmountPaid:  decimal.Zero,
			QueueNumber: service.NextQueueNumber(booked, doc.ID, date, opts.Scope),
		}
		if faker.Bool() {
			a.AmountPaid = doc.ConsultationFee
		}
		if err := a.ApplyPayment(); err != nil {
			return result, err
		}
		if err := appointmentRepo.Save(ctx, h, &a); err != nil {
			return result, err
		}
		booked = append(booked, a)
		result.Appointments++
	}
	return result, nil
}

func fakePatient(f *gofakeit.Faker) entity.Patient {
	gender := entity.GenderFemale
	if strings.EqualFold(f.Gender(), "male") {
		gender = entity.GenderMale
	}
	birth := f.DateRange(time.Now().AddDate(-90, 0, 0), time.Now().AddDate(-1, 0, 0))
	addr := f.Address()

	return entity.Patient{
		ID:          uuid.NewString(),
		Name:        f.Name(),
		Email:       f.Email(),
		Phone:       f.Phone(),
		Age:         int(time.Since(birth).Hours() / 24 / 365),
		Gender:      gender,
		Address:     fmt.Sprintf("%s, %s", addr.Street, addr.City),
		DateOfBirth: birth.Format(entity.DateLayout),
		History:     []entity.MedicalRecord{},
	}
}
