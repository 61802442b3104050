package repository

import (
	"context"

	"medicore/internal/domain/entity"
	"medicore/internal/store"
)

type UserRepository interface {
	FindAll(ctx context.Context, h store.Handle) ([]entity.User, error)
	FindByID(ctx context.Context, h store.Handle, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, h store.Handle, username string) (*entity.User, error)
	Save(ctx context.Context, h store.Handle, user *entity.User) error
	Delete(ctx context.Context, h store.Handle, id string) error
}
