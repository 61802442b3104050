package repository

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

type AppointmentRepository interface {
	FindAll(ctx context.Context, h store.Handle) ([]entity.Appointment, error)
	FindByID(ctx context.Context, h store.Handle, id string) (*entity.Appointment, error)
	FindByDate(ctx context.Context, h store.Handle, date string) ([]entity.Appointment, error)
	FindByDoctorAndDate(ctx context.Context, h store.Handle, doctorID, date string) ([]entity.Appointment, error)
	Save(ctx context.Context, h store.Handle, appointment *entity.Appointment) error
	Delete(ctx context.Context, h store.Handle, id string) error
}
