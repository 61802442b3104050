package service

import (
	"context"
	"errors"
	"fmt"

	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
)

// SlotMinutes is the width of one bookable slot.
const SlotMinutes = 30

var (
	ErrSlotUnavailable    = errors.New("slot is no longer available")
	ErrDoctorNotAvailable = errors.New("doctor is not working on this day")
	ErrOutsideSchedule    = errors.New("time is not a slot in the doctor's schedule")
	ErrDoctorNotFound     = errors.New("doctor not found")
)

// SlotQuery asks for the free slots of one doctor on one date. ExcludeID is
// the appointment being edited, which must not collide with itself.
type SlotQuery struct {
	DoctorID  string
	Date      string
	ExcludeID string
	Emergency bool
}

// SlotResult lists the free slots in time order. Working is false when the
// doctor does not work that weekday and no emergency override was requested;
// Slots is then empty.
type SlotResult struct {
	DoctorID string
	Date     string
	Weekday  entity.Weekday
	Working  bool
	Slots    []string
}

// Window returns the bookable window of doctor on date, in minutes after
// midnight. The emergency override opens the full day.
func Window(doctor *entity.Doctor, date string, emergency bool) (start, end int, err error) {
	if emergency {
		return 0, 24 * 60, nil
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return 0, 0, err
	}
	entry, ok := doctor.Schedule.Lookup(entity.WeekdayOf(day))
	if !ok || !entry.IsWorking {
		return 0, 0, ErrDoctorNotAvailable
	}
	if start, err = entity.ParseClock(entry.StartTime); err != nil {
		return 0, 0, err
	}
	if end, err = entity.ParseClock(entry.EndTime); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// GenerateSlots enumerates [start, end) of the doctor's window for date in
// SlotMinutes steps, ignoring existing appointments.
func GenerateSlots(doctor *entity.Doctor, date string, emergency bool) ([]string, error) {
	if _, err := entity.ParseDate(date); err != nil {
		return nil, err
	}
	start, end, err := Window(doctor, date, emergency)
	if err != nil {
		return nil, err
	}
	slots := make([]string, 0, (end-start)/SlotMinutes+1)
	for m := start; m < end; m += SlotMinutes {
		slots = append(slots, entity.FormatClock(m))
	}
	return slots, nil
}

// FreeSlots drops every slot held by an active appointment of doctorID on
// date other than excludeID.
func FreeSlots(slots []string, appointments []entity.Appointment, doctorID, date, excludeID string) []string {
	taken := make(map[string]bool)
	for i := range appointments {
		a := &appointments[i]
		if a.Occupies(doctorID, date, a.Time, excludeID) {
			taken[a.Time] = true
		}
	}
	free := make([]string, 0, len(slots))
	for _, s := range slots {
		if !taken[s] {
			free = append(free, s)
		}
	}
	return free
}

// OnGrid reports whether clock is one of the generated slots.
func OnGrid(slots []string, clock string) bool {
	for _, s := range slots {
		if s == clock {
			return true
		}
	}
	return false
}

// ScheduleEngine answers slot queries and commit-time collision checks
// against the store.
type ScheduleEngine struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewScheduleEngine(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) *ScheduleEngine {
	return &ScheduleEngine{
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

// AvailableSlots computes the free slots for a doctor and date. An empty
// result is not an error: the doctor may be fully booked or off that day.
func (e *ScheduleEngine) AvailableSlots(ctx context.Context, h store.Handle, q SlotQuery) (*SlotResult, error) {
	day, err := entity.ParseDate(q.Date)
	if err != nil {
		return nil, err
	}
	doctor, err := e.doctorRepo.FindByID(ctx, h, q.DoctorID)
	if err != nil {
		e.log.Warnf("Failed to find doctor %s: %+v", q.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	result := &SlotResult{
		DoctorID: q.DoctorID,
		Date:     q.Date,
		Weekday:  entity.WeekdayOf(day),
		Slots:    []string{},
	}

	slots, err := GenerateSlots(doctor, q.Date, q.Emergency)
	if errors.Is(err, ErrDoctorNotAvailable) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Working = true

	booked, err := e.appointmentRepo.FindByDoctorAndDate(ctx, h, q.DoctorID, q.Date)
	if err != nil {
		e.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", q.DoctorID, q.Date, err)
		return nil, err
	}
	result.Slots = FreeSlots(slots, booked, q.DoctorID, q.Date, q.ExcludeID)
	return result, nil
}

// ValidateBooking re-runs the collision check at commit time. It fails with
// ErrSlotUnavailable when another active appointment holds the slot.
func (e *ScheduleEngine) ValidateBooking(ctx context.Context, h store.Handle, doctorID, date, clock, excludeID string) error {
	booked, err := e.appointmentRepo.FindByDoctorAndDate(ctx, h, doctorID, date)
	if err != nil {
		e.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", doctorID, date, err)
		return err
	}
	for i := range booked {
		if booked[i].Occupies(doctorID, date, clock, excludeID) {
			return fmt.Errorf("%w: %s %s held by %s", ErrSlotUnavailable, date, clock, booked[i].ID)
		}
	}
	return nil
}
