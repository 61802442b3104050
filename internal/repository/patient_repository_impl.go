package repository

import (
	"context"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"
	"medicore/internal/store"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) FindAll(ctx context.Context, h store.Handle) ([]entity.Patient, error) {
	return store.List[entity.Patient](ctx, h, store.TablePatients)
}

func (r *patientRepository) FindByID(ctx context.Context, h store.Handle, id string) (*entity.Patient, error) {
	return store.Find[entity.Patient](ctx, h, store.TablePatients, id)
}

func (r *patientRepository) Save(ctx context.Context, h store.Handle, patient *entity.Patient) error {
	touch(&patient.CreatedAt, &patient.UpdatedAt)
	return h.Upsert(ctx, store.TablePatients, patient.ID, patient)
}

func (r *patientRepository) Delete(ctx context.Context, h store.Handle, id string) error {
	return h.Delete(ctx, store.TablePatients, id)
}
