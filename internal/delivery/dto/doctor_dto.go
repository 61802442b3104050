package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type DayScheduleRequest struct {
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	IsWorking bool   `json:"is_working"`
}

type CreateDoctorRequest struct {
	Name            string               `json:"name" validate:"required,min=2"`
	Specialty       string               `json:"specialty" validate:"required"`
	Email           string               `json:"email" validate:"omitempty,email"`
	Phone           string               `json:"phone" validate:"omitempty,max=30"`
	ConsultationFee decimal.Decimal      `json:"consultation_fee"`
	Schedule        []DayScheduleRequest `json:"schedule" validate:"max=7,dive"`
	Bio             string               `json:"bio"`
}

type UpdateDoctorRequest = CreateDoctorRequest

// Response DTOs

type DayScheduleResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsWorking bool   `json:"is_working"`
}

type DoctorResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Specialty       string                `json:"specialty"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	ConsultationFee decimal.Decimal       `json:"consultation_fee"`
	Schedule        []DayScheduleResponse `json:"schedule"`
	Bio             string                `json:"bio,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
