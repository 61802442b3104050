package repository

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

type PatientRepository interface {
	FindAll(ctx context.Context, h store.Handle) ([]entity.Patient, error)
	FindByID(ctx context.Context, h store.Handle, id string) (*entity.Patient, error)
	Save(ctx context.Context, h store.Handle, patient *entity.Patient) error
	Delete(ctx context.Context, h store.Handle, id string) error
}
