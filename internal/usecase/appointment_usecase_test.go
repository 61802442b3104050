package usecase

import (
	"context"
	"errors"
	"testing"

	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/shopspring/decimal"
)

func book(t *testing.T, f *fixture, req dto.CreateAppointmentRequest) *dto.AppointmentResponse {
	t.Helper()
	resp, err := f.appointments.Book(context.Background(), &req)
	if err != nil {
		t.Fatalf("Book(%+v) error = %v", req, err)
	}
	return resp
}

func strp(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

func TestBookDefaults(t *testing.T) {
	f := newFixture(t)

	resp := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})

	if resp.Status != "Scheduled" || resp.Type != "Consultation" {
		t.Errorf("status/type = %s/%s", resp.Status, resp.Type)
	}
	if !resp.TotalFee.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TotalFee = %s, want doctor fee 300", resp.TotalFee)
	}
	if resp.PaymentStatus != "Pending" || resp.QueueNumber != 1 || resp.ReminderSent {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBookRejectsDoubleBooking(t *testing.T) {
	f := newFixture(t)
	book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})

	_, err := f.appointments.Book(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:00",
	})
	if !errors.Is(err, service.ErrSlotUnavailable) {
		t.Fatalf("second Book() error = %v, want ErrSlotUnavailable", err)
	}

	// another doctor may take the same time
	book(t, f, dto.CreateAppointmentRequest{DoctorID: "d2", PatientID: "p2", Date: monday, Time: "12:00"})
}

func TestBookChecks(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		wantErr error
	}{
		{"unknown doctor", dto.CreateAppointmentRequest{DoctorID: "nope", PatientID: "p1", Date: monday, Time: "09:00"}, service.ErrDoctorNotFound},
		{"unknown patient", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "nope", Date: monday, Time: "09:00"}, ErrPatientNotFound},
		{"bad date", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: "10-06-2024", Time: "09:00"}, entity.ErrInvalidDate},
		{"bad time", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "9am"}, entity.ErrInvalidTime},
		{"day off", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: friday, Time: "09:00"}, service.ErrDoctorNotAvailable},
		{"before window", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "08:30"}, service.ErrOutsideSchedule},
		{"window end is exclusive", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "17:00"}, service.ErrOutsideSchedule},
		{"off grid", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:15"}, service.ErrOutsideSchedule},
		{"negative amount", dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00", AmountPaid: decimal.NewFromInt(-1)}, entity.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.appointments.Book(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Book() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookEmergencyOverride(t *testing.T) {
	f := newFixture(t)

	resp := book(t, f, dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p1", Date: friday, Time: "22:00", Emergency: true,
	})
	if !resp.Emergency || resp.QueueNumber != 0 {
		t.Errorf("emergency booking = %+v, want no queue number", resp)
	}

	// emergencies still hold their slot
	_, err := f.appointments.Book(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p2", Date: friday, Time: "22:00", Emergency: true,
	})
	if !errors.Is(err, service.ErrSlotUnavailable) {
		t.Errorf("second emergency Book() error = %v, want ErrSlotUnavailable", err)
	}
}

func TestQueueNumbersSurviveCancellation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})
	if first.QueueNumber != 1 {
		t.Fatalf("first queue number = %d, want 1", first.QueueNumber)
	}
	if _, err := f.appointments.ChangeStatus(ctx, first.ID, &dto.ChangeStatusRequest{Status: "Cancelled"}); err != nil {
		t.Fatalf("cancel error = %v", err)
	}

	second := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:30"})
	if second.QueueNumber != 2 {
		t.Errorf("second queue number = %d, want 2", second.QueueNumber)
	}

	// the cancelled slot is free again and the next number is still fresh
	third := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:00"})
	if third.QueueNumber != 3 {
		t.Errorf("third queue number = %d, want 3", third.QueueNumber)
	}

	// other doctors keep their own sequence
	other := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d2", PatientID: "p1", Date: monday, Time: "12:00"})
	if other.QueueNumber != 1 {
		t.Errorf("other doctor queue number = %d, want 1", other.QueueNumber)
	}
}

func TestPartialPaymentNeedsNote(t *testing.T) {
	f := newFixture(t)
	fee := decimal.NewFromInt(500)

	_, err := f.appointments.Book(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p1", Date: monday, Time: "10:00",
		TotalFee: &fee, AmountPaid: decimal.NewFromInt(200),
	})
	if !errors.Is(err, entity.ErrMissingJustification) {
		t.Fatalf("Book() error = %v, want ErrMissingJustification", err)
	}

	resp := book(t, f, dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p1", Date: monday, Time: "10:00",
		TotalFee: &fee, AmountPaid: decimal.NewFromInt(200), PaymentNote: "pays rest next visit",
	})
	if resp.PaymentStatus != "Partial" {
		t.Errorf("PaymentStatus = %s, want Partial", resp.PaymentStatus)
	}
	if !resp.Outstanding.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Outstanding = %s, want 300", resp.Outstanding)
	}
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})

	_, err := f.appointments.RecordPayment(ctx, a.ID, &dto.RecordPaymentRequest{AmountPaid: decimal.NewFromInt(100)})
	if !errors.Is(err, entity.ErrMissingJustification) {
		t.Fatalf("RecordPayment() error = %v, want ErrMissingJustification", err)
	}
	stored, _ := f.appointments.Get(ctx, a.ID)
	if !stored.AmountPaid.IsZero() || stored.PaymentStatus != "Pending" {
		t.Errorf("failed payment changed the stored appointment: %+v", stored)
	}

	paid, err := f.appointments.RecordPayment(ctx, a.ID, &dto.RecordPaymentRequest{AmountPaid: decimal.NewFromInt(400)})
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if paid.PaymentStatus != "Paid" || !paid.Outstanding.IsZero() {
		t.Errorf("overpayment = %+v, want Paid with nothing outstanding", paid)
	}
}

func TestChangeStatusFollowsLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})

	for _, s := range []string{"Checked In", "In Progress", "Completed"} {
		if _, err := f.appointments.ChangeStatus(ctx, a.ID, &dto.ChangeStatusRequest{Status: s}); err != nil {
			t.Fatalf("ChangeStatus(%s) error = %v", s, err)
		}
	}

	_, err := f.appointments.ChangeStatus(ctx, a.ID, &dto.ChangeStatusRequest{Status: "Scheduled"})
	if !errors.Is(err, entity.ErrInvalidTransition) {
		t.Fatalf("Completed -> Scheduled error = %v, want ErrInvalidTransition", err)
	}

	resp, err := f.appointments.ChangeStatus(ctx, a.ID, &dto.ChangeStatusRequest{Status: "In Progress"})
	if err != nil || resp.Status != "In Progress" {
		t.Fatalf("Completed -> In Progress = %+v, %v", resp, err)
	}

	if _, err := f.appointments.ChangeStatus(ctx, a.ID, &dto.ChangeStatusRequest{Status: "In Progress"}); err != nil {
		t.Errorf("same status error = %v, want no-op", err)
	}
}

func TestReviveCancelledChecksSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})
	if _, err := f.appointments.ChangeStatus(ctx, first.ID, &dto.ChangeStatusRequest{Status: "Cancelled"}); err != nil {
		t.Fatal(err)
	}
	book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:00"})

	_, err := f.appointments.ChangeStatus(ctx, first.ID, &dto.ChangeStatusRequest{Status: "Scheduled"})
	if !errors.Is(err, service.ErrSlotUnavailable) {
		t.Errorf("revive error = %v, want ErrSlotUnavailable", err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})
	book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:30"})

	t.Run("same slot does not collide with itself", func(t *testing.T) {
		resp, err := f.appointments.Update(ctx, a.ID, &dto.UpdateAppointmentRequest{Time: strp("09:00"), Notes: strp("bring x-ray")})
		if err != nil || resp.Notes != "bring x-ray" {
			t.Fatalf("Update() = %+v, %v", resp, err)
		}
	})

	t.Run("taken slot", func(t *testing.T) {
		_, err := f.appointments.Update(ctx, a.ID, &dto.UpdateAppointmentRequest{Time: strp("09:30")})
		if !errors.Is(err, service.ErrSlotUnavailable) {
			t.Fatalf("Update() error = %v, want ErrSlotUnavailable", err)
		}
	})

	t.Run("move to another day keeps the booking number", func(t *testing.T) {
		resp, err := f.appointments.Update(ctx, a.ID, &dto.UpdateAppointmentRequest{Date: strp("2024-06-11"), Time: strp("10:00")})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if resp.Date != "2024-06-11" || resp.QueueNumber != a.QueueNumber {
			t.Errorf("moved appointment = %+v", resp)
		}
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := f.appointments.Update(ctx, "missing", &dto.UpdateAppointmentRequest{})
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Errorf("Update() error = %v, want ErrAppointmentNotFound", err)
		}
	})
}

func TestUpdateCancelledStaysOnGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})
	if _, err := f.appointments.ChangeStatus(ctx, a.ID, &dto.ChangeStatusRequest{Status: "Cancelled"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		req     dto.UpdateAppointmentRequest
		wantErr error
	}{
		{name: "non-working day", req: dto.UpdateAppointmentRequest{Date: strp(friday), Time: strp("09:00")}, wantErr: service.ErrDoctorNotAvailable},
		{name: "off the slot grid", req: dto.UpdateAppointmentRequest{Time: strp("09:10")}, wantErr: service.ErrOutsideSchedule},
		{name: "outside working hours", req: dto.UpdateAppointmentRequest{Time: strp("18:00")}, wantErr: service.ErrOutsideSchedule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := f.appointments.Update(ctx, a.ID, &req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	moved, err := f.appointments.Update(ctx, a.ID, &dto.UpdateAppointmentRequest{Date: strp("2024-06-11"), Time: strp("10:00")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if moved.Status != "Cancelled" || moved.QueueNumber != a.QueueNumber {
		t.Errorf("moved cancelled appointment = %+v, want status and number kept", moved)
	}
}

func TestReviveChecksScheduleGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stray := &entity.Appointment{
		ID: "a-stray", DoctorID: "d1", PatientID: "p1",
		Date: friday, Time: "03:00", Status: entity.StatusCancelled,
		Type: entity.TypeConsultation, PaymentStatus: entity.PaymentPending,
	}
	if err := repository.NewAppointmentRepository().Save(ctx, f.store, stray); err != nil {
		t.Fatal(err)
	}

	_, err := f.appointments.ChangeStatus(ctx, stray.ID, &dto.ChangeStatusRequest{Status: "Scheduled"})
	if !errors.Is(err, service.ErrDoctorNotAvailable) {
		t.Fatalf("revive error = %v, want ErrDoctorNotAvailable", err)
	}
	got, _ := f.appointments.Get(ctx, stray.ID)
	if got.Status != "Cancelled" {
		t.Errorf("status after failed revive = %s, want Cancelled", got.Status)
	}
}

func TestEmergencyOffKeepsNoNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00", Emergency: true})

	resp, err := f.appointments.Update(ctx, a.ID, &dto.UpdateAppointmentRequest{Emergency: boolp(false)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if resp.Emergency || resp.QueueNumber != 0 {
		t.Errorf("Update() = %+v, want a plain booking without a number", resp)
	}
}

func TestDoctorAccountsSeeOwnAppointments(t *testing.T) {
	f := newFixture(t)
	mine := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00"})
	theirs := book(t, f, dto.CreateAppointmentRequest{DoctorID: "d2", PatientID: "p2", Date: monday, Time: "12:00"})

	ctx := asDoctor("d1")
	list, err := f.appointments.List(ctx, &dto.AppointmentFilter{DoctorID: "d2"})
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Appointments[0].ID != mine.ID {
		t.Errorf("List() = %+v, want only own appointment", list)
	}
	if list.Appointments[0].PatientName != "Ahmed Ali" {
		t.Errorf("PatientName = %q", list.Appointments[0].PatientName)
	}

	if _, err := f.appointments.Get(ctx, theirs.ID); !errors.Is(err, ErrAppointmentNotOwned) {
		t.Errorf("Get(other doctor's) error = %v, want ErrAppointmentNotOwned", err)
	}
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	f := newFixture(t)
	book(t, f, dto.CreateAppointmentRequest{DoctorID: "d3", PatientID: "p1", Date: "2024-06-11", Time: "10:00"})

	resp, err := f.appointments.AvailableSlots(context.Background(), &dto.SlotQuery{DoctorID: "d3", Date: "2024-06-11"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}
	if len(resp.Slots) != len(want) {
		t.Fatalf("Slots = %v, want %v", resp.Slots, want)
	}
	for i := range want {
		if resp.Slots[i] != want[i] {
			t.Fatalf("Slots = %v, want %v", resp.Slots, want)
		}
	}
	if resp.Weekday != "Tue" || !resp.Working {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBookReportsUnpersistedWrite(t *testing.T) {
	f := newFixtureWithPersister(t, quotaPersister())

	resp, err := f.appointments.Book(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p1", Date: monday, Time: "09:00",
	})
	if !errors.Is(err, store.ErrPersistFailed) || !errors.Is(err, store.ErrStorageQuotaExceeded) {
		t.Fatalf("Book() error = %v, want a quota PersistError", err)
	}
	if resp == nil || resp.QueueNumber != 1 {
		t.Fatalf("Book() response = %+v, want the committed appointment", resp)
	}

	// the booking is live in memory
	_, err = f.appointments.Book(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID: "d1", PatientID: "p2", Date: monday, Time: "09:00",
	})
	if !errors.Is(err, service.ErrSlotUnavailable) {
		t.Errorf("second Book() error = %v, want ErrSlotUnavailable", err)
	}
}
