package usecase

import (
	"context"
	"fmt"
	"sort"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	List(ctx context.Context, filter *dto.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	ChangeStatus(ctx context.Context, id string, req *dto.ChangeStatusRequest) (*dto.AppointmentResponse, error)
	RecordPayment(ctx context.Context, id string, req *dto.RecordPaymentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id string) error
	AvailableSlots(ctx context.Context, q *dto.SlotQuery) (*dto.SlotsResponse, error)
}

type appointmentUsecase struct {
	db              *store.Store
	log             *logrus.Logger
	locks           *service.KeyedMutex
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	engine          *service.ScheduleEngine
	queue           *service.QueueAllocator
}

func NewAppointmentUsecase(
	db *store.Store,
	log *logrus.Logger,
	locks *service.KeyedMutex,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	engine *service.ScheduleEngine,
	queue *service.QueueAllocator,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		locks:           locks,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		engine:          engine,
		queue:           queue,
	}
}

// List returns appointments matching filter, ordered by date, then time.
// Doctor accounts only ever see their own appointments.
func (u *appointmentUsecase) List(ctx context.Context, filter *dto.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	if filter == nil {
		filter = &dto.AppointmentFilter{}
	}
	doctorID := filter.DoctorID
	if scope := doctorScope(ctx); scope != "" {
		doctorID = scope
	}

	var status entity.AppointmentStatus
	if filter.Status != "" {
		s, err := entity.ParseAppointmentStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	all, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	matched := make([]entity.Appointment, 0, len(all))
	for _, a := range all {
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		if status != 0 && a.Status != status {
			continue
		}
		matched = append(matched, a)
	}
	sortByDateTime(matched)

	doctorNames, patientNames, err := u.names(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(matched, doctorNames, patientNames),
		Total:        len(matched),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	a, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(a), nil
}

// Book creates a Scheduled appointment.
//
// Checks run in order: doctor and patient exist, the time is a slot of the
// doctor's window (the whole day for emergencies), the slot is free, and the
// payment is justified. Non-emergency bookings then get the next queue
// number. The date lock is held from the collision check until the save.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if _, err := entity.ParseDate(req.Date); err != nil {
		return nil, err
	}
	unlock := u.locks.Lock(service.DateKey(req.Date))
	defer unlock()

	doctor, err := u.doctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if err := u.patientExists(ctx, req.PatientID); err != nil {
		return nil, err
	}

	apptType := entity.TypeConsultation
	if req.Type != "" {
		if apptType, err = entity.ParseAppointmentType(req.Type); err != nil {
			return nil, err
		}
	}

	a := &entity.Appointment{
		ID:          uuid.NewString(),
		DoctorID:    doctor.ID,
		PatientID:   req.PatientID,
		Date:        req.Date,
		Time:        req.Time,
		Status:      entity.StatusScheduled,
		Type:        apptType,
		TotalFee:    doctor.ConsultationFee,
		AmountPaid:  req.AmountPaid,
		PaymentNote: req.PaymentNote,
		Notes:       req.Notes,
		Emergency:   req.Emergency,
	}
	if req.TotalFee != nil {
		a.TotalFee = *req.TotalFee
	}

	if err := u.checkSlot(ctx, doctor, a, ""); err != nil {
		return nil, err
	}
	if err := a.ApplyPayment(); err != nil {
		return nil, err
	}
	if err := u.assignQueueNumber(ctx, a); err != nil {
		return nil, err
	}

	if err := u.save(ctx, a); !committed(err) {
		return nil, err
	} else if err != nil {
		return converter.AppointmentToResponse(a), err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, time=%s, queue=%d", a.ID, a.DoctorID, a.Date, a.Time, a.QueueNumber)
	return converter.AppointmentToResponse(a), nil
}

// Update edits an appointment in place. The slot is checked again only when
// the doctor, date, time or emergency flag changes; the appointment never
// collides with itself. The queue number given at booking is kept as is.
func (u *appointmentUsecase) Update(ctx context.Context, id string, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.Date != nil {
		if _, err := entity.ParseDate(*req.Date); err != nil {
			return nil, err
		}
	}

	var result *dto.AppointmentResponse
	err := u.withAppointmentLocked(ctx, id, func(a *entity.Appointment) ([]string, error) {
		if req.Date != nil {
			return []string{a.Date, *req.Date}, nil
		}
		return []string{a.Date}, nil
	}, func(a *entity.Appointment) error {
		before := *a

		if req.DoctorID != nil {
			a.DoctorID = *req.DoctorID
		}
		if req.PatientID != nil && *req.PatientID != a.PatientID {
			if err := u.patientExists(ctx, *req.PatientID); err != nil {
				return err
			}
			a.PatientID = *req.PatientID
		}
		if req.Date != nil {
			a.Date = *req.Date
		}
		if req.Time != nil {
			a.Time = *req.Time
		}
		if req.Emergency != nil {
			a.Emergency = *req.Emergency
		}
		if req.Type != nil {
			t, err := entity.ParseAppointmentType(*req.Type)
			if err != nil {
				return err
			}
			a.Type = t
		}
		if req.TotalFee != nil {
			a.TotalFee = *req.TotalFee
		}
		if req.AmountPaid != nil {
			a.AmountPaid = *req.AmountPaid
		}
		if req.PaymentNote != nil {
			a.PaymentNote = *req.PaymentNote
		}
		if req.Notes != nil {
			a.Notes = *req.Notes
		}

		doctor, err := u.doctor(ctx, a.DoctorID)
		if err != nil {
			return err
		}
		moved := a.DoctorID != before.DoctorID || a.Date != before.Date
		if moved || a.Time != before.Time || a.Emergency != before.Emergency {
			if err := checkGrid(doctor, a); err != nil {
				return err
			}
			if a.IsActive() {
				if err := u.engine.ValidateBooking(ctx, u.db, doctor.ID, a.Date, a.Time, a.ID); err != nil {
					return err
				}
			}
		}
		if err := a.ApplyPayment(); err != nil {
			return err
		}

		err = u.save(ctx, a)
		if committed(err) {
			result = converter.AppointmentToResponse(a)
		}
		return err
	})
	return result, err
}

// ChangeStatus walks one edge of the status graph. Reviving a Cancelled
// appointment checks that its slot is still on the doctor's grid and free.
func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id string, req *dto.ChangeStatusRequest) (*dto.AppointmentResponse, error) {
	to, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var result *dto.AppointmentResponse
	err = u.withAppointmentLocked(ctx, id, nil, func(a *entity.Appointment) error {
		if a.Status == to {
			result = converter.AppointmentToResponse(a)
			return nil
		}
		from := a.Status
		if !a.IsActive() && to != entity.StatusCancelled {
			doctor, err := u.doctor(ctx, a.DoctorID)
			if err != nil {
				return err
			}
			if err := u.checkSlot(ctx, doctor, a, a.ID); err != nil {
				return err
			}
		}
		if err := a.TransitionTo(to); err != nil {
			return err
		}

		err := u.save(ctx, a)
		if committed(err) {
			u.log.Infof("Appointment %s status changed: %s -> %s", a.ID, from, to)
			result = converter.AppointmentToResponse(a)
		}
		return err
	})
	return result, err
}

// RecordPayment sets the amount collected so far. A partial payment needs a
// note; on failure the stored appointment is left unchanged.
func (u *appointmentUsecase) RecordPayment(ctx context.Context, id string, req *dto.RecordPaymentRequest) (*dto.AppointmentResponse, error) {
	var result *dto.AppointmentResponse
	err := u.withAppointmentLocked(ctx, id, nil, func(a *entity.Appointment) error {
		a.AmountPaid = req.AmountPaid
		if req.TotalFee != nil {
			a.TotalFee = *req.TotalFee
		}
		if req.PaymentNote != "" {
			a.PaymentNote = req.PaymentNote
		}
		if err := a.ApplyPayment(); err != nil {
			return err
		}

		err := u.save(ctx, a)
		if committed(err) {
			u.log.Infof("Payment recorded: appointment=%s, paid=%s, status=%s", a.ID, a.AmountPaid, a.PaymentStatus)
			result = converter.AppointmentToResponse(a)
		}
		return err
	})
	return result, err
}

func (u *appointmentUsecase) Delete(ctx context.Context, id string) error {
	return u.withAppointmentLocked(ctx, id, nil, func(a *entity.Appointment) error {
		err := u.appointmentRepo.Delete(ctx, u.db, a.ID)
		if !committed(err) {
			u.log.Warnf("Failed to delete appointment %s: %+v", a.ID, err)
			return err
		}
		u.log.Infof("Appointment deleted: id=%s", a.ID)
		return err
	})
}

func (u *appointmentUsecase) AvailableSlots(ctx context.Context, q *dto.SlotQuery) (*dto.SlotsResponse, error) {
	result, err := u.engine.AvailableSlots(ctx, u.db, service.SlotQuery{
		DoctorID:  q.DoctorID,
		Date:      q.Date,
		ExcludeID: q.ExcludeID,
		Emergency: q.Emergency,
	})
	if err != nil {
		return nil, err
	}
	return converter.SlotResultToResponse(result), nil
}

// withAppointmentLocked loads appointment id, locks the dates returned by
// keys (its own date when keys is nil) and runs fn on a fresh copy read
// under the lock. If the appointment moved to another date in between, the
// lock is retaken.
func (u *appointmentUsecase) withAppointmentLocked(
	ctx context.Context,
	id string,
	keys func(a *entity.Appointment) ([]string, error),
	fn func(a *entity.Appointment) error,
) error {
	for attempt := 0; attempt < 3; attempt++ {
		snapshot, err := u.find(ctx, id)
		if err != nil {
			return err
		}
		dates := []string{snapshot.Date}
		if keys != nil {
			if dates, err = keys(snapshot); err != nil {
				return err
			}
		}
		lockKeys := make([]string, len(dates))
		for i, d := range dates {
			lockKeys[i] = service.DateKey(d)
		}

		unlock := u.locks.Lock(lockKeys...)
		current, err := u.find(ctx, id)
		if err != nil {
			unlock()
			return err
		}
		if current.Date != snapshot.Date {
			unlock()
			continue
		}
		err = fn(current)
		unlock()
		return err
	}
	return fmt.Errorf("appointment %s kept moving while being updated", id)
}

// find loads an appointment visible to the caller.
func (u *appointmentUsecase) find(ctx context.Context, id string) (*entity.Appointment, error) {
	a, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if a == nil {
		return nil, ErrAppointmentNotFound
	}
	if scope := doctorScope(ctx); scope != "" && a.DoctorID != scope {
		return nil, ErrAppointmentNotOwned
	}
	return a, nil
}

func (u *appointmentUsecase) doctor(ctx context.Context, id string) (*entity.Doctor, error) {
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

func (u *appointmentUsecase) patientExists(ctx context.Context, id string) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}

// checkSlot verifies that a's time is on the doctor's slot grid for its
// date and that no other active appointment holds it.
func (u *appointmentUsecase) checkSlot(ctx context.Context, doctor *entity.Doctor, a *entity.Appointment, excludeID string) error {
	if err := checkGrid(doctor, a); err != nil {
		return err
	}
	return u.engine.ValidateBooking(ctx, u.db, doctor.ID, a.Date, a.Time, excludeID)
}

// checkGrid reports whether a sits on one of the doctor's slots for its date.
func checkGrid(doctor *entity.Doctor, a *entity.Appointment) error {
	if !entity.IsSlotTime(a.Time) {
		return fmt.Errorf("%w: %q", entity.ErrInvalidTime, a.Time)
	}
	slots, err := service.GenerateSlots(doctor, a.Date, a.Emergency)
	if err != nil {
		return err
	}
	if !service.OnGrid(slots, a.Time) {
		return fmt.Errorf("%w: %s on %s", service.ErrOutsideSchedule, a.Time, a.Date)
	}
	return nil
}

// assignQueueNumber gives a non-emergency appointment its number once.
func (u *appointmentUsecase) assignQueueNumber(ctx context.Context, a *entity.Appointment) error {
	if a.Emergency || a.HasQueueNumber() {
		return nil
	}
	n, err := u.queue.Next(ctx, u.db, a.DoctorID, a.Date)
	if err != nil {
		u.log.Warnf("Failed to allocate queue number for %s on %s: %+v", a.DoctorID, a.Date, err)
		return err
	}
	a.QueueNumber = n
	return nil
}

func (u *appointmentUsecase) save(ctx context.Context, a *entity.Appointment) error {
	err := u.appointmentRepo.Save(ctx, u.db, a)
	switch {
	case err == nil:
	case committed(err):
		u.log.Errorf("Appointment %s saved in memory but not persisted: %+v", a.ID, err)
	default:
		u.log.Warnf("Failed to save appointment %s: %+v", a.ID, err)
	}
	return err
}

func (u *appointmentUsecase) names(ctx context.Context) (map[string]string, map[string]string, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, nil, err
	}
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, nil, err
	}
	doctorNames := make(map[string]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.Name
	}
	patientNames := make(map[string]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = p.Name
	}
	return doctorNames, patientNames, nil
}

func sortByDateTime(appts []entity.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
