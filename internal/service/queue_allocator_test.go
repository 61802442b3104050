package service

import (
	"context"
	"testing"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

func TestNextQueueNumber(t *testing.T) {
	appts := []entity.Appointment{
		{ID: "a1", DoctorID: "d1", Date: monday, QueueNumber: 1, Status: entity.StatusCancelled},
		{ID: "a2", DoctorID: "d1", Date: monday, QueueNumber: 2},
		{ID: "a3", DoctorID: "d2", Date: monday, QueueNumber: 5},
		{ID: "a4", DoctorID: "d1", Date: tuesday, QueueNumber: 9},
		{ID: "a5", DoctorID: "d1", Date: monday, Emergency: true},
	}

	tests := []struct {
		name     string
		doctorID string
		date     string
		scope    QueueScope
		want     int
	}{
		{name: "first of the day", doctorID: "d3", date: monday, scope: QueueScopeDoctor, want: 1},
		{name: "cancelled numbers are not reused", doctorID: "d1", date: monday, scope: QueueScopeDoctor, want: 3},
		{name: "other doctors do not count", doctorID: "d2", date: monday, scope: QueueScopeDoctor, want: 6},
		{name: "clinic scope spans doctors", doctorID: "d1", date: monday, scope: QueueScopeClinic, want: 6},
		{name: "other dates do not count", doctorID: "d1", date: "2024-06-12", scope: QueueScopeClinic, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextQueueNumber(appts, tt.doctorID, tt.date, tt.scope); got != tt.want {
				t.Errorf("NextQueueNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueueAllocatorReadsStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_, queue := repos()

	n, err := queue.Next(ctx, s, "d1", monday)
	if err != nil || n != 1 {
		t.Fatalf("Next() = %d, %v, want 1", n, err)
	}
	mustSave(t, s, store.TableAppointments, "a1", booked(entity.Appointment{
		ID: "a1", DoctorID: "d1", Date: monday, Time: "09:00", QueueNumber: n, Status: entity.StatusCancelled,
	}))
	if n, _ = queue.Next(ctx, s, "d1", monday); n != 2 {
		t.Errorf("Next() after cancelled booking = %d, want 2", n)
	}
}

func TestParseQueueScope(t *testing.T) {
	for in, want := range map[string]QueueScope{"": QueueScopeDoctor, "doctor": QueueScopeDoctor, "clinic": QueueScopeClinic} {
		if got, err := ParseQueueScope(in); err != nil || got != want {
			t.Errorf("ParseQueueScope(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseQueueScope("ward"); err == nil {
		t.Error("ParseQueueScope(ward) succeeded, want error")
	}
}
