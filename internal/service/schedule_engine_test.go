package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

// 2024-06-10 is a Monday, 2024-06-11 a Tuesday.
const (
	monday  = "2024-06-10"
	tuesday = "2024-06-11"
)

func TestGenerateSlots(t *testing.T) {
	doc := mondayDoctor("d1")

	tests := []struct {
		name      string
		date      string
		emergency bool
		want      []string
		wantErr   error
		wantLen   int
	}{
		{name: "working window", date: monday, want: []string{"09:00", "09:30"}},
		{name: "day off", date: tuesday, wantErr: ErrDoctorNotAvailable},
		{name: "emergency opens full day", date: tuesday, emergency: true, wantLen: 48},
		{name: "bad date", date: "10/06/2024", wantErr: entity.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlots(doc, tt.date, tt.emergency)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GenerateSlots() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateSlots() error = %v", err)
			}
			if tt.want != nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateSlots() = %v, want %v", got, tt.want)
			}
			if tt.wantLen > 0 {
				if len(got) != tt.wantLen || got[0] != "00:00" || got[len(got)-1] != "23:30" {
					t.Errorf("GenerateSlots() = %d slots %v..%v, want 48 from 00:00 to 23:30", len(got), got[0], got[len(got)-1])
				}
			}
		})
	}
}

func TestGenerateSlotsHalfOpenWindow(t *testing.T) {
	doc := mondayDoctor("d1")
	doc.Schedule = entity.WeeklySchedule{
		{Day: entity.Monday, StartTime: "22:00", EndTime: "24:00", IsWorking: true},
	}.Normalize()

	got, err := GenerateSlots(doc, monday, false)
	if err != nil {
		t.Fatalf("GenerateSlots() error = %v", err)
	}
	want := []string{"22:00", "22:30", "23:00", "23:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenerateSlots() = %v, want %v", got, want)
	}
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	engine, _ := repos()

	mustSave(t, s, store.TableDoctors, "d1", mondayDoctor("d1"))
	mustSave(t, s, store.TableAppointments, "a1", booked(entity.Appointment{
		ID: "a1", DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00", Status: entity.StatusScheduled,
	}))
	mustSave(t, s, store.TableAppointments, "a2", booked(entity.Appointment{
		ID: "a2", DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:30", Status: entity.StatusCancelled,
	}))

	tests := []struct {
		name        string
		query       SlotQuery
		wantWorking bool
		want        []string
	}{
		{name: "booked slot is hidden, cancelled slot is free", query: SlotQuery{DoctorID: "d1", Date: monday}, wantWorking: true, want: []string{"09:30"}},
		{name: "editing keeps own slot", query: SlotQuery{DoctorID: "d1", Date: monday, ExcludeID: "a1"}, wantWorking: true, want: []string{"09:00", "09:30"}},
		{name: "day off is empty, not an error", query: SlotQuery{DoctorID: "d1", Date: tuesday}, wantWorking: false, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.AvailableSlots(ctx, s, tt.query)
			if err != nil {
				t.Fatalf("AvailableSlots() error = %v", err)
			}
			if got.Working != tt.wantWorking {
				t.Errorf("Working = %v, want %v", got.Working, tt.wantWorking)
			}
			if !reflect.DeepEqual(got.Slots, tt.want) {
				t.Errorf("Slots = %v, want %v", got.Slots, tt.want)
			}
		})
	}

	if _, err := engine.AvailableSlots(ctx, s, SlotQuery{DoctorID: "nobody", Date: monday}); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("AvailableSlots() unknown doctor error = %v, want ErrDoctorNotFound", err)
	}
}

func TestValidateBooking(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	engine, _ := repos()

	mustSave(t, s, store.TableAppointments, "a1", booked(entity.Appointment{
		ID: "a1", DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00", Status: entity.StatusCheckedIn,
	}))

	if err := engine.ValidateBooking(ctx, s, "d1", monday, "09:00", ""); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("ValidateBooking() collision error = %v, want ErrSlotUnavailable", err)
	}
	if err := engine.ValidateBooking(ctx, s, "d1", monday, "09:00", "a1"); err != nil {
		t.Errorf("ValidateBooking() self error = %v, want nil", err)
	}
	if err := engine.ValidateBooking(ctx, s, "d2", monday, "09:00", ""); err != nil {
		t.Errorf("ValidateBooking() other doctor error = %v, want nil", err)
	}
}
