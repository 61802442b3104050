package handler

import (
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/response"
	"medicore/pkg/validator"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Create(r.Context(), &req)
	respond(w, http.StatusCreated, "User created successfully", user, err, "Failed to create user")
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.Get(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "User retrieved successfully", user, err, "Failed to get user")
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.userUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}
	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", list.Users, &response.Meta{Total: list.Total})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	respond(w, http.StatusOK, "User updated successfully", user, err, "Failed to update user")
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.userUsecase.Delete(r.Context(), mux.Vars(r)["id"])
	respond(w, http.StatusOK, "User deleted successfully", nil, err, "Failed to delete user")
}
