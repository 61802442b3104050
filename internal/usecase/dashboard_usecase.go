package usecase

import (
	"context"
	"sort"
	"time"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type DashboardUsecase interface {
	Refresh(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db              *store.Store
	log             *logrus.Logger
	sweep           *service.ReminderSweep
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	now             func() time.Time
}

func NewDashboardUsecase(
	db *store.Store,
	log *logrus.Logger,
	sweep *service.ReminderSweep,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		sweep:           sweep,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		now:             time.Now,
	}
}

// Refresh runs one reminder sweep and returns today's queue board. A sweep
// failure is logged and does not hide the board.
func (u *dashboardUsecase) Refresh(ctx context.Context) (*dto.DashboardResponse, error) {
	sweep, err := u.sweep.Run(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to run reminder sweep: %+v", err)
	}

	date := today(u.now)
	todays, err := u.appointmentRepo.FindByDate(ctx, u.db, date)
	if err != nil {
		u.log.Warnf("Failed to find appointments for %s: %+v", date, err)
		return nil, err
	}
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	if scope := doctorScope(ctx); scope != "" {
		mine := todays[:0]
		for _, a := range todays {
			if a.DoctorID == scope {
				mine = append(mine, a)
			}
		}
		todays = mine
	}
	sortByQueue(todays)

	doctorNames := make(map[string]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.Name
	}
	patientNames := make(map[string]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = p.Name
	}

	board := &dto.DashboardResponse{
		Date:          date,
		Sweep:         converter.SweepResultToResponse(sweep),
		Current:       []dto.QueueEntry{},
		Waiting:       []dto.QueueEntry{},
		TotalPatients: len(patients),
		TotalDoctors:  len(doctors),
		TodayRevenue:  decimal.Zero,
	}
	for _, a := range todays {
		entry := dto.QueueEntry{
			AppointmentID: a.ID,
			QueueNumber:   a.QueueNumber,
			Time:          a.Time,
			Status:        a.Status.String(),
			Emergency:     a.Emergency,
			DoctorID:      a.DoctorID,
			DoctorName:    doctorNames[a.DoctorID],
			PatientID:     a.PatientID,
			PatientName:   patientNames[a.PatientID],
		}
		switch a.Status {
		case entity.StatusInProgress:
			board.Current = append(board.Current, entry)
		case entity.StatusScheduled, entity.StatusCheckedIn:
			board.Waiting = append(board.Waiting, entry)
		case entity.StatusCompleted:
			board.CompletedToday++
		}
		if a.IsActive() {
			board.TodayRevenue = board.TodayRevenue.Add(a.AmountPaid)
		}
	}
	return board, nil
}

// sortByQueue orders emergencies first, then by queue number, then time.
func sortByQueue(appts []entity.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		a, b := appts[i], appts[j]
		if a.Emergency != b.Emergency {
			return a.Emergency
		}
		if a.QueueNumber != b.QueueNumber {
			return a.QueueNumber < b.QueueNumber
		}
		return a.Time < b.Time
	})
}
