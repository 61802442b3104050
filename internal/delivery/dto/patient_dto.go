package dto

import "time"

// Request DTOs

type CreatePatientRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Age         int    `json:"age" validate:"gte=0,lte=150"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,isodate"`
}

type UpdatePatientRequest = CreatePatientRequest

type MedicalRecordRequest struct {
	Date        string `json:"date" validate:"omitempty,isodate"` // defaults to today
	Condition   string `json:"condition" validate:"required"`
	Treatment   string `json:"treatment"`
	Allergies   string `json:"allergies"`
	Medications string `json:"medications"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Condition   string `json:"condition"`
	Treatment   string `json:"treatment"`
	Allergies   string `json:"allergies,omitempty"`
	Medications string `json:"medications,omitempty"`
}

type PatientResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	Phone       string                  `json:"phone"`
	Age         int                     `json:"age"`
	Gender      string                  `json:"gender,omitempty"`
	Address     string                  `json:"address"`
	DateOfBirth string                  `json:"date_of_birth,omitempty"`
	History     []MedicalRecordResponse `json:"history"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
