package repository

import (
	"context"
	"strings"

	"medicore/internal/domain/entity"
	domainRepo "medicore/internal/domain/repository"
	"medicore/internal/store"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindAll(ctx context.Context, h store.Handle) ([]entity.User, error) {
	return store.List[entity.User](ctx, h, store.TableUsers)
}

func (r *userRepository) FindByID(ctx context.Context, h store.Handle, id string) (*entity.User, error) {
	return store.Find[entity.User](ctx, h, store.TableUsers, id)
}

// FindByUsername matches case-insensitively.
func (r *userRepository) FindByUsername(ctx context.Context, h store.Handle, username string) (*entity.User, error) {
	users, err := r.FindAll(ctx, h)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Save(ctx context.Context, h store.Handle, user *entity.User) error {
	return h.Upsert(ctx, store.TableUsers, user.ID, user)
}

func (r *userRepository) Delete(ctx context.Context, h store.Handle, id string) error {
	return h.Delete(ctx, store.TableUsers, id)
}
