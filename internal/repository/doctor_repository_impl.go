package repository

import (
	"context"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"
	"medicore/internal/store"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindAll(ctx context.Context, h store.Handle) ([]entity.Doctor, error) {
	return store.List[entity.Doctor](ctx, h, store.TableDoctors)
}

func (r *doctorRepository) FindByID(ctx context.Context, h store.Handle, id string) (*entity.Doctor, error) {
	return store.Find[entity.Doctor](ctx, h, store.TableDoctors, id)
}

func (r *doctorRepository) Save(ctx context.Context, h store.Handle, doctor *entity.Doctor) error {
	touch(&doctor.CreatedAt, &doctor.UpdatedAt)
	return h.Upsert(ctx, store.TableDoctors, doctor.ID, doctor)
}

func (r *doctorRepository) Delete(ctx context.Context, h store.Handle, id string) error {
	return h.Delete(ctx, store.TableDoctors, id)
}
