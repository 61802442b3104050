package usecase

import (
	"context"
	"strings"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase interface {
	List(ctx context.Context) (*dto.UserListResponse, error)
	Get(ctx context.Context, id string) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userUsecase struct {
	db         *store.Store
	log        *logrus.Logger
	locks      *service.KeyedMutex
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
}

func NewUserUsecase(
	db *store.Store,
	log *logrus.Logger,
	locks *service.KeyedMutex,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
) UserUsecase {
	return &userUsecase{
		db:         db,
		log:        log,
		locks:      locks,
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
	}
}

const usersKey = "users"

func (u *userUsecase) List(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}
	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

// Create adds a staff account. Usernames are unique ignoring case.
func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(usersKey)
	defer unlock()

	existing, err := u.userRepo.FindByUsername(ctx, u.db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to check username %s: %+v", req.Username, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user := &entity.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Username:  strings.TrimSpace(req.Username),
		Role:      role,
		RelatedID: req.RelatedID,
	}
	if err := u.checkDoctorLink(ctx, user); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	user.PasswordHash = string(hash)

	err = u.userRepo.Save(ctx, u.db, user)
	if !committed(err) {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.log.Infof("User created: id=%s, username=%s, role=%s", user.ID, user.Username, user.Role)
	return converter.UserToResponse(user), err
}

func (u *userUsecase) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(usersKey)
	defer unlock()

	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleAdmin && role != entity.RoleAdmin {
		if err := u.ensureAnotherAdmin(ctx, id); err != nil {
			return nil, err
		}
	}

	user.Name = req.Name
	user.Role = role
	user.RelatedID = req.RelatedID
	if err := u.checkDoctorLink(ctx, user); err != nil {
		return nil, err
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	err = u.userRepo.Save(ctx, u.db, user)
	if !committed(err) {
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}
	return converter.UserToResponse(user), err
}

func (u *userUsecase) Delete(ctx context.Context, id string) error {
	unlock := u.locks.Lock(usersKey)
	defer unlock()

	user, err := u.find(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == entity.RoleAdmin {
		if err := u.ensureAnotherAdmin(ctx, id); err != nil {
			return err
		}
	}

	err = u.userRepo.Delete(ctx, u.db, id)
	if !committed(err) {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}
	u.log.Infof("User deleted: id=%s", id)
	return err
}

func (u *userUsecase) find(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// checkDoctorLink requires Doctor accounts to point at a stored doctor and
// clears the link on every other role.
func (u *userUsecase) checkDoctorLink(ctx context.Context, user *entity.User) error {
	if user.Role != entity.RoleDoctor {
		user.RelatedID = ""
		return nil
	}
	if user.RelatedID == "" {
		return ErrDoctorLinkRequired
	}
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, user.RelatedID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorLinkRequired
	}
	return nil
}

func (u *userUsecase) ensureAnotherAdmin(ctx context.Context, excludeID string) error {
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		return err
	}
	for _, other := range users {
		if other.ID != excludeID && other.Role == entity.RoleAdmin {
			return nil
		}
	}
	return ErrLastAdmin
}
