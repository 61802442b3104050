package repository

import (
	"context"
	"time"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"
	"medicore/internal/store"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) FindAll(ctx context.Context, h store.Handle) ([]entity.Appointment, error) {
	return store.List[entity.Appointment](ctx, h, store.TableAppointments)
}

func (r *appointmentRepository) FindByID(ctx context.Context, h store.Handle, id string) (*entity.Appointment, error) {
	return store.Find[entity.Appointment](ctx, h, store.TableAppointments, id)
}

func (r *appointmentRepository) FindByDate(ctx context.Context, h store.Handle, date string) ([]entity.Appointment, error) {
	return r.filter(ctx, h, func(a *entity.Appointment) bool {
		return a.Date == date
	})
}

func (r *appointmentRepository) FindByDoctorAndDate(ctx context.Context, h store.Handle, doctorID, date string) ([]entity.Appointment, error) {
	return r.filter(ctx, h, func(a *entity.Appointment) bool {
		return a.DoctorID == doctorID && a.Date == date
	})
}

func (r *appointmentRepository) Save(ctx context.Context, h store.Handle, appointment *entity.Appointment) error {
	touch(&appointment.CreatedAt, &appointment.UpdatedAt)
	return h.Upsert(ctx, store.TableAppointments, appointment.ID, appointment)
}

func (r *appointmentRepository) Delete(ctx context.Context, h store.Handle, id string) error {
	return h.Delete(ctx, store.TableAppointments, id)
}

func (r *appointmentRepository) filter(ctx context.Context, h store.Handle, keep func(*entity.Appointment) bool) ([]entity.Appointment, error) {
	all, err := r.FindAll(ctx, h)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// touch stamps creation and modification times the way gorm's autoCreateTime
// and autoUpdateTime would.
func touch(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
