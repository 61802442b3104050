package dto

import "github.com/shopspring/decimal"

type SweepResponse struct {
	Date     string `json:"date"`
	Disabled bool   `json:"disabled"`
	Eligible int    `json:"eligible"`
	Sent     int    `json:"sent"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

type QueueEntry struct {
	AppointmentID string `json:"appointment_id"`
	QueueNumber   int    `json:"queue_number,omitempty"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	Emergency     bool   `json:"emergency"`
	DoctorID      string `json:"doctor_id"`
	DoctorName    string `json:"doctor_name"`
	PatientID     string `json:"patient_id"`
	PatientName   string `json:"patient_name"`
}

type DashboardResponse struct {
	Date           string          `json:"date"`
	Sweep          *SweepResponse  `json:"sweep,omitempty"`
	Current        []QueueEntry    `json:"current"`
	Waiting        []QueueEntry    `json:"waiting"`
	CompletedToday int             `json:"completed_today"`
	TotalPatients  int             `json:"total_patients"`
	TotalDoctors   int             `json:"total_doctors"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
}
