package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID    string           `json:"doctor_id" validate:"required"`
	PatientID   string           `json:"patient_id" validate:"required"`
	Date        string           `json:"date" validate:"required,isodate"`
	Time        string           `json:"time" validate:"required,slot"`
	Type        string           `json:"type" validate:"omitempty,oneof='First Visit' Consultation Follow-up"`
	TotalFee    *decimal.Decimal `json:"total_fee"` // defaults to the doctor's consultation fee
	AmountPaid  decimal.Decimal  `json:"amount_paid"`
	PaymentNote string           `json:"payment_note"`
	Notes       string           `json:"notes"`
	Emergency   bool             `json:"emergency"`
}

// UpdateAppointmentRequest edits an appointment in place; nil fields are
// left unchanged.
type UpdateAppointmentRequest struct {
	DoctorID    *string          `json:"doctor_id" validate:"omitempty,min=1"`
	PatientID   *string          `json:"patient_id" validate:"omitempty,min=1"`
	Date        *string          `json:"date" validate:"omitempty,isodate"`
	Time        *string          `json:"time" validate:"omitempty,slot"`
	Type        *string          `json:"type" validate:"omitempty,oneof='First Visit' Consultation Follow-up"`
	TotalFee    *decimal.Decimal `json:"total_fee"`
	AmountPaid  *decimal.Decimal `json:"amount_paid"`
	PaymentNote *string          `json:"payment_note"`
	Notes       *string          `json:"notes"`
	Emergency   *bool            `json:"emergency"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Scheduled 'Checked In' 'In Progress' Completed Cancelled"`
}

type RecordPaymentRequest struct {
	AmountPaid  decimal.Decimal  `json:"amount_paid"`
	TotalFee    *decimal.Decimal `json:"total_fee"`
	PaymentNote string           `json:"payment_note"`
}

type AppointmentFilter struct {
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date" validate:"omitempty,isodate"`
	Status    string `json:"status" validate:"omitempty,oneof=Scheduled 'Checked In' 'In Progress' Completed Cancelled"`
}

type SlotQuery struct {
	DoctorID  string `json:"doctor_id" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	ExcludeID string `json:"exclude_id"`
	Emergency bool   `json:"emergency"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            string          `json:"id"`
	DoctorID      string          `json:"doctor_id"`
	DoctorName    string          `json:"doctor_name,omitempty"`
	PatientID     string          `json:"patient_id"`
	PatientName   string          `json:"patient_name,omitempty"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	Status        string          `json:"status"`
	Type          string          `json:"type"`
	TotalFee      decimal.Decimal `json:"total_fee"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PaymentStatus string          `json:"payment_status"`
	PaymentNote   string          `json:"payment_note,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	QueueNumber   int             `json:"queue_number,omitempty"`
	Emergency     bool            `json:"emergency"`
	ReminderSent  bool            `json:"reminder_sent"`
	NextStatuses  []string        `json:"next_statuses"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type SlotsResponse struct {
	DoctorID string   `json:"doctor_id"`
	Date     string   `json:"date"`
	Weekday  string   `json:"weekday"`
	Working  bool     `json:"working"`
	Slots    []string `json:"slots"`
}
