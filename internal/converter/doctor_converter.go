package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

// ScheduleFromRequest parses the weekday labels of a schedule request.
// Validation of the windows is left to WeeklySchedule.Validate.
func ScheduleFromRequest(req []dto.DayScheduleRequest) (entity.WeeklySchedule, error) {
	ws := make(entity.WeeklySchedule, 0, len(req))
	for _, d := range req {
		day, err := entity.ParseWeekday(d.Day)
		if err != nil {
			return nil, err
		}
		ws = append(ws, entity.DaySchedule{
			Day:       day,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsWorking: d.IsWorking,
		})
	}
	return ws, nil
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	schedule := make([]dto.DayScheduleResponse, len(doctor.Schedule))
	for i, d := range doctor.Schedule {
		schedule[i] = dto.DayScheduleResponse{
			Day:       d.Day.String(),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsWorking: d.IsWorking,
		}
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Specialty:       doctor.Specialty,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		ConsultationFee: doctor.ConsultationFee,
		Schedule:        schedule,
		Bio:             doctor.Bio,
		CreatedAt:       doctor.CreatedAt,
		UpdatedAt:       doctor.UpdatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
