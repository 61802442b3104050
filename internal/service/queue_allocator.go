package service

import (
	"context"
	"fmt"

	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/store"
)

// QueueScope decides which appointments share one queue number sequence.
type QueueScope uint8

const (
	// QueueScopeDoctor numbers each doctor's day separately.
	QueueScopeDoctor QueueScope = iota + 1
	// QueueScopeClinic numbers the whole clinic's day as one queue.
	QueueScopeClinic
)

func ParseQueueScope(s string) (QueueScope, error) {
	switch s {
	case "", "doctor":
		return QueueScopeDoctor, nil
	case "clinic":
		return QueueScopeClinic, nil
	}
	return 0, fmt.Errorf("unknown queue scope %q", s)
}

func (s QueueScope) String() string {
	if s == QueueScopeClinic {
		return "clinic"
	}
	return "doctor"
}

// NextQueueNumber returns max+1 over the queue numbers already assigned in
// the sequence of (doctorID, date), or of date alone for clinic scope.
// Cancelled appointments keep their numbers, so numbers are never reused.
func NextQueueNumber(appointments []entity.Appointment, doctorID, date string, scope QueueScope) int {
	highest := 0
	for i := range appointments {
		a := &appointments[i]
		if a.Date != date {
			continue
		}
		if scope != QueueScopeClinic && a.DoctorID != doctorID {
			continue
		}
		if a.QueueNumber > highest {
			highest = a.QueueNumber
		}
	}
	return highest + 1
}

// QueueAllocator hands out queue numbers. Callers hold the date lock from
// allocation until the appointment is saved.
type QueueAllocator struct {
	scope           QueueScope
	appointmentRepo repository.AppointmentRepository
}

func NewQueueAllocator(scope QueueScope, appointmentRepo repository.AppointmentRepository) *QueueAllocator {
	if scope == 0 {
		scope = QueueScopeDoctor
	}
	return &QueueAllocator{scope: scope, appointmentRepo: appointmentRepo}
}

func (q *QueueAllocator) Scope() QueueScope { return q.scope }

func (q *QueueAllocator) Next(ctx context.Context, h store.Handle, doctorID, date string) (int, error) {
	sameDay, err := q.appointmentRepo.FindByDate(ctx, h, date)
	if err != nil {
		return 0, err
	}
	return NextQueueNumber(sameDay, doctorID, date, q.scope), nil
}
