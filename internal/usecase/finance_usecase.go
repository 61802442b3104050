package usecase

import (
	"context"
	"sort"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	unknownDoctor    = "Unknown"
	unknownSpecialty = "General"
)

type FinanceUsecase interface {
	Summary(ctx context.Context, q *dto.FinanceQuery) (*dto.FinanceSummaryResponse, error)
}

type financeUsecase struct {
	db              *store.Store
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
}

func NewFinanceUsecase(
	db *store.Store,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
) FinanceUsecase {
	return &financeUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

// Summary aggregates payments of appointments dated within [From, To]; an
// empty bound is open. Collected counts every appointment, outstanding only
// those that are not Cancelled.
func (u *financeUsecase) Summary(ctx context.Context, q *dto.FinanceQuery) (*dto.FinanceSummaryResponse, error) {
	for _, d := range []string{q.From, q.To} {
		if d == "" {
			continue
		}
		if _, err := entity.ParseDate(d); err != nil {
			return nil, err
		}
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return nil, ErrInvalidRange
	}

	appts, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	byID := make(map[string]*entity.Doctor, len(doctors))
	for i := range doctors {
		byID[doctors[i].ID] = &doctors[i]
	}

	summary := &dto.FinanceSummaryResponse{
		From:           q.From,
		To:             q.To,
		TotalCollected: decimal.Zero,
		Outstanding:    decimal.Zero,
	}
	months := map[string]decimal.Decimal{}
	perDoctor := map[string]*dto.FinanceBreakdown{}
	perSpecialty := map[string]*dto.FinanceBreakdown{}

	for i := range appts {
		a := &appts[i]
		if (q.From != "" && a.Date < q.From) || (q.To != "" && a.Date > q.To) {
			continue
		}

		pending := a.Outstanding()
		summary.TotalCollected = summary.TotalCollected.Add(a.AmountPaid)
		if a.IsActive() {
			summary.Outstanding = summary.Outstanding.Add(pending)
		}
		if a.AmountPaid.IsPositive() && len(a.Date) >= 7 {
			month := a.Date[:7]
			months[month] = months[month].Add(a.AmountPaid)
		}

		docKey, docName, specialty := a.DoctorID, unknownDoctor, unknownSpecialty
		if d, ok := byID[a.DoctorID]; ok {
			docName = d.Name
			if d.Specialty != "" {
				specialty = d.Specialty
			}
		}
		accumulate(perDoctor, docKey, docName, a, pending)
		accumulate(perSpecialty, specialty, specialty, a, pending)
	}

	summary.Monthly = make([]dto.MonthlyAmount, 0, len(months))
	for month, amount := range months {
		summary.Monthly = append(summary.Monthly, dto.MonthlyAmount{Month: month, Collected: amount})
	}
	sort.Slice(summary.Monthly, func(i, j int) bool { return summary.Monthly[i].Month < summary.Monthly[j].Month })

	summary.ByDoctor = sortedBreakdown(perDoctor)
	summary.BySpecialty = sortedBreakdown(perSpecialty)
	return summary, nil
}

func accumulate(rows map[string]*dto.FinanceBreakdown, key, name string, a *entity.Appointment, pending decimal.Decimal) {
	row, ok := rows[key]
	if !ok {
		row = &dto.FinanceBreakdown{Key: key, Name: name, Billed: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
		rows[key] = row
	}
	row.Count++
	row.Billed = row.Billed.Add(a.TotalFee)
	row.Paid = row.Paid.Add(a.AmountPaid)
	row.Pending = row.Pending.Add(pending)
}

// sortedBreakdown orders rows by amount paid, highest first, then by name.
func sortedBreakdown(rows map[string]*dto.FinanceBreakdown) []dto.FinanceBreakdown {
	out := make([]dto.FinanceBreakdown, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Paid.Cmp(out[j].Paid); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
