package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/service"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	next := a.Status.AllowedTransitions()
	nextLabels := make([]string, len(next))
	for i, s := range next {
		nextLabels[i] = s.String()
	}

	return &dto.AppointmentResponse{
		ID:            a.ID,
		DoctorID:      a.DoctorID,
		PatientID:     a.PatientID,
		Date:          a.Date,
		Time:          a.Time,
		Status:        a.Status.String(),
		Type:          a.Type.String(),
		TotalFee:      a.TotalFee,
		AmountPaid:    a.AmountPaid,
		Outstanding:   a.Outstanding(),
		PaymentStatus: a.PaymentStatus.String(),
		PaymentNote:   a.PaymentNote,
		Notes:         a.Notes,
		QueueNumber:   a.QueueNumber,
		Emergency:     a.Emergency,
		ReminderSent:  a.ReminderSent,
		NextStatuses:  nextLabels,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AppointmentsToResponses converts appointments, filling doctor and patient
// names from the given lookups when present.
func AppointmentsToResponses(appts []entity.Appointment, doctorNames, patientNames map[string]string) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appts))
	for i := range appts {
		resp := AppointmentToResponse(&appts[i])
		resp.DoctorName = doctorNames[appts[i].DoctorID]
		resp.PatientName = patientNames[appts[i].PatientID]
		responses[i] = *resp
	}
	return responses
}

func SlotResultToResponse(r *service.SlotResult) *dto.SlotsResponse {
	return &dto.SlotsResponse{
		DoctorID: r.DoctorID,
		Date:     r.Date,
		Weekday:  r.Weekday.String(),
		Working:  r.Working,
		Slots:    r.Slots,
	}
}

func SweepResultToResponse(r *service.SweepResult) *dto.SweepResponse {
	if r == nil {
		return nil
	}
	return &dto.SweepResponse{
		Date:     r.Date,
		Disabled: r.Disabled,
		Eligible: r.Eligible,
		Sent:     r.Sent,
		Skipped:  r.Skipped,
		Failed:   r.Failed,
	}
}
