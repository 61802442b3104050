package usecase

import (
	"context"
	"time"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PatientUsecase interface {
	List(ctx context.Context) (*dto.PatientListResponse, error)
	Get(ctx context.Context, id string) (*dto.PatientResponse, error)
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id string) error
	AddMedicalRecord(ctx context.Context, id string, req *dto.MedicalRecordRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db              *store.Store
	log             *logrus.Logger
	locks           *service.KeyedMutex
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewPatientUsecase(
	db *store.Store,
	log *logrus.Logger,
	locks *service.KeyedMutex,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		locks:           locks,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) Get(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{ID: uuid.NewString(), History: []entity.MedicalRecord{}}
	if err := applyPatientRequest(patient, req); err != nil {
		return nil, err
	}

	err := u.patientRepo.Save(ctx, u.db, patient)
	if !committed(err) {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s", patient.ID)
	return converter.PatientToResponse(patient), err
}

// Update replaces the patient's contact details; the medical history is
// kept as is.
func (u *patientUsecase) Update(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	unlock := u.locks.Lock(patientKey(id))
	defer unlock()

	patient, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPatientRequest(patient, req); err != nil {
		return nil, err
	}

	err = u.patientRepo.Save(ctx, u.db, patient)
	if !committed(err) {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}
	return converter.PatientToResponse(patient), err
}

// Delete removes a patient without Scheduled, Checked In or In Progress
// appointments.
func (u *patientUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.find(ctx, id); err != nil {
		return err
	}

	appts, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return err
	}
	for _, a := range appts {
		if a.PatientID == id && a.IsActive() && a.Status != entity.StatusCompleted {
			return ErrPatientHasBookings
		}
	}

	err = u.patientRepo.Delete(ctx, u.db, id)
	if !committed(err) {
		u.log.Warnf("Failed to delete patient %s: %+v", id, err)
		return err
	}
	u.log.Infof("Patient deleted: id=%s", id)
	return err
}

// AddMedicalRecord appends one entry to the patient's history.
func (u *patientUsecase) AddMedicalRecord(ctx context.Context, id string, req *dto.MedicalRecordRequest) (*dto.PatientResponse, error) {
	date := req.Date
	if date == "" {
		date = today(u.now)
	} else if _, err := entity.ParseDate(date); err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(patientKey(id))
	defer unlock()

	patient, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.History = append(patient.History, entity.MedicalRecord{
		ID:          uuid.NewString(),
		Date:        date,
		Condition:   req.Condition,
		Treatment:   req.Treatment,
		Allergies:   req.Allergies,
		Medications: req.Medications,
	})

	err = u.patientRepo.Save(ctx, u.db, patient)
	if !committed(err) {
		u.log.Warnf("Failed to add medical record for patient %s: %+v", id, err)
		return nil, err
	}
	return converter.PatientToResponse(patient), err
}

func (u *patientUsecase) find(ctx context.Context, id string) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func patientKey(id string) string { return "patient:" + id }

func applyPatientRequest(patient *entity.Patient, req *dto.CreatePatientRequest) error {
	var gender entity.Gender
	if req.Gender != "" {
		g, err := entity.ParseGender(req.Gender)
		if err != nil {
			return err
		}
		gender = g
	}

	patient.Name = req.Name
	patient.Email = req.Email
	patient.Phone = req.Phone
	patient.Age = req.Age
	patient.Gender = gender
	patient.Address = req.Address
	patient.DateOfBirth = req.DateOfBirth
	if patient.History == nil {
		patient.History = []entity.MedicalRecord{}
	}
	return nil
}
