package repository

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

type DoctorRepository interface {
	FindAll(ctx context.Context, h store.Handle) ([]entity.Doctor, error)
	FindByID(ctx context.Context, h store.Handle, id string) (*entity.Doctor, error)
	Save(ctx context.Context, h store.Handle, doctor *entity.Doctor) error
	Delete(ctx context.Context, h store.Handle, id string) error
}
