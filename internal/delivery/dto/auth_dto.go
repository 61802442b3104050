package dto

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=Admin Receptionist Doctor Nurse Billing"`
	RelatedID string `json:"related_id"`
}

// UpdateUserRequest leaves the password unchanged when it is empty.
type UpdateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Role      string `json:"role" validate:"required,oneof=Admin Receptionist Doctor Nurse Billing"`
	RelatedID string `json:"related_id"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	RelatedID string `json:"related_id,omitempty"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
