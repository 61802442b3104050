package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents where a visit is in its lifecycle
type AppointmentStatus uint8

const (
	StatusScheduled AppointmentStatus = iota + 1
	StatusCheckedIn
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

var statusLabels = map[AppointmentStatus]string{
	StatusScheduled:  "Scheduled",
	StatusCheckedIn:  "Checked In",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

// transitions is the lifecycle graph: from -> allowed targets.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusInProgress, StatusScheduled, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCheckedIn},
	StatusCompleted:  {StatusInProgress},
	StatusCancelled:  {StatusScheduled},
}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	return parseEnum(statusLabels, "appointment status", s)
}

func (s AppointmentStatus) String() string { return enumString(statusLabels, s) }
func (s AppointmentStatus) MarshalText() ([]byte, error) {
	return marshalEnum(statusLabels, "appointment status", s)
}
func (s *AppointmentStatus) UnmarshalText(b []byte) error {
	return unmarshalInto(s, statusLabels, "appointment status", b)
}

// AllowedTransitions returns the statuses reachable in one step.
func (s AppointmentStatus) AllowedTransitions() []AppointmentStatus {
	next := transitions[s]
	out := make([]AppointmentStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether to is reachable in one step. Staying in
// the current status is always allowed and changes nothing.
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	if s == to {
		return true
	}
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// AppointmentType classifies the visit.
type AppointmentType uint8

const (
	TypeFirstVisit AppointmentType = iota + 1
	TypeConsultation
	TypeFollowUp
)

var appointmentTypeLabels = map[AppointmentType]string{
	TypeFirstVisit:   "First Visit",
	TypeConsultation: "Consultation",
	TypeFollowUp:     "Follow-up",
}

func ParseAppointmentType(s string) (AppointmentType, error) {
	return parseEnum(appointmentTypeLabels, "appointment type", s)
}

func (t AppointmentType) String() string { return enumString(appointmentTypeLabels, t) }
func (t AppointmentType) MarshalText() ([]byte, error) {
	return marshalEnum(appointmentTypeLabels, "appointment type", t)
}
func (t *AppointmentType) UnmarshalText(b []byte) error {
	return unmarshalInto(t, appointmentTypeLabels, "appointment type", b)
}

// PaymentStatus is derived from TotalFee and AmountPaid, never set directly.
type PaymentStatus uint8

const (
	PaymentPending PaymentStatus = iota + 1
	PaymentPartial
	PaymentPaid
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentPending: "Pending",
	PaymentPartial: "Partial",
	PaymentPaid:    "Paid",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum(paymentStatusLabels, "payment status", s)
}

func (p PaymentStatus) String() string { return enumString(paymentStatusLabels, p) }
func (p PaymentStatus) MarshalText() ([]byte, error) {
	return marshalEnum(paymentStatusLabels, "payment status", p)
}
func (p *PaymentStatus) UnmarshalText(b []byte) error {
	return unmarshalInto(p, paymentStatusLabels, "payment status", b)
}

// DerivePaymentStatus computes the payment state from the fee and the amount
// collected so far. Overpayment counts as Paid.
func DerivePaymentStatus(totalFee, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case !amountPaid.IsPositive():
		return PaymentPending
	case amountPaid.GreaterThanOrEqual(totalFee):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// Appointment is a booked visit of a patient with a doctor
type Appointment struct {
	ID            string            `json:"id"`
	DoctorID      string            `json:"doctor_id"`
	PatientID     string            `json:"patient_id"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	Type          AppointmentType   `json:"type"`
	TotalFee      decimal.Decimal   `json:"total_fee"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	PaymentNote   string            `json:"payment_note,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	QueueNumber   int               `json:"queue_number,omitempty"`
	Emergency     bool              `json:"emergency,omitempty"`
	ReminderSent  bool              `json:"reminder_sent"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// HasQueueNumber reports whether a queue number was assigned.
func (a *Appointment) HasQueueNumber() bool {
	return a.QueueNumber > 0
}

// Occupies reports whether a blocks the (doctor, date, time) slot for any
// appointment other than excludeID.
func (a *Appointment) Occupies(doctorID, date, clock, excludeID string) bool {
	return a.DoctorID == doctorID &&
		a.Date == date &&
		a.Time == clock &&
		a.IsActive() &&
		(excludeID == "" || a.ID != excludeID)
}

// TransitionTo moves the appointment to status to, or fails with
// ErrInvalidTransition leaving it untouched.
func (a *Appointment) TransitionTo(to AppointmentStatus) error {
	if _, ok := statusLabels[to]; !ok {
		return fmt.Errorf("%w: unknown target status %d", ErrInvalidTransition, to)
	}
	if !a.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	a.Status = to
	return nil
}

// ApplyPayment re-derives PaymentStatus from the current amounts. A partial
// payment without a note fails with ErrMissingJustification and leaves the
// stored PaymentStatus unchanged.
func (a *Appointment) ApplyPayment() error {
	if a.TotalFee.IsNegative() || a.AmountPaid.IsNegative() {
		return ErrInvalidAmount
	}
	status := DerivePaymentStatus(a.TotalFee, a.AmountPaid)
	if status == PaymentPartial && strings.TrimSpace(a.PaymentNote) == "" {
		return ErrMissingJustification
	}
	a.PaymentStatus = status
	return nil
}

// Outstanding is the fee still owed, never negative.
func (a *Appointment) Outstanding() decimal.Decimal {
	rest := a.TotalFee.Sub(a.AmountPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
