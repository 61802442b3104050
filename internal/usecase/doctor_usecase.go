package usecase

import (
	"context"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Get(ctx context.Context, id string) (*dto.DoctorResponse, error)
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id string) error
}

type doctorUsecase struct {
	db              *store.Store
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	db *store.Store,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *doctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) Get(ctx context.Context, id string) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{ID: uuid.NewString()}
	if err := applyDoctorRequest(doctor, req); err != nil {
		return nil, err
	}

	err := u.doctorRepo.Save(ctx, u.db, doctor)
	if !committed(err) {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%s, name=%s", doctor.ID, doctor.Name)
	return converter.DoctorToResponse(doctor), err
}

// Update replaces the doctor's profile and schedule. Existing appointments
// are kept even if they no longer fall inside the new schedule.
func (u *doctorUsecase) Update(ctx context.Context, id string, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDoctorRequest(doctor, req); err != nil {
		return nil, err
	}

	err = u.doctorRepo.Save(ctx, u.db, doctor)
	if !committed(err) {
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}
	return converter.DoctorToResponse(doctor), err
}

// Delete removes a doctor that has no Scheduled, Checked In or In Progress
// appointments left.
func (u *doctorUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.find(ctx, id); err != nil {
		return err
	}

	appts, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return err
	}
	for _, a := range appts {
		if a.DoctorID == id && a.IsActive() && a.Status != entity.StatusCompleted {
			return ErrDoctorHasBookings
		}
	}

	err = u.doctorRepo.Delete(ctx, u.db, id)
	if !committed(err) {
		u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
		return err
	}
	u.log.Infof("Doctor deleted: id=%s", id)
	return err
}

func (u *doctorUsecase) find(ctx context.Context, id string) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, service.ErrDoctorNotFound
	}
	return doctor, nil
}

func applyDoctorRequest(doctor *entity.Doctor, req *dto.CreateDoctorRequest) error {
	if req.ConsultationFee.IsNegative() {
		return entity.ErrInvalidAmount
	}
	schedule, err := converter.ScheduleFromRequest(req.Schedule)
	if err != nil {
		return err
	}
	if err := schedule.Validate(); err != nil {
		return err
	}

	doctor.Name = req.Name
	doctor.Specialty = req.Specialty
	doctor.Email = req.Email
	doctor.Phone = req.Phone
	doctor.ConsultationFee = req.ConsultationFee
	doctor.Schedule = schedule.Normalize()
	doctor.Bio = req.Bio
	return nil
}
