package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	history := make([]dto.MedicalRecordResponse, len(p.History))
	for i, r := range p.History {
		history[i] = dto.MedicalRecordResponse{
			ID:          r.ID,
			Date:        r.Date,
			Condition:   r.Condition,
			Treatment:   r.Treatment,
			Allergies:   r.Allergies,
			Medications: r.Medications,
		}
	}

	resp := &dto.PatientResponse{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Age:         p.Age,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth,
		History:     history,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Gender != 0 {
		resp.Gender = p.Gender.String()
	}
	return resp
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
