package converter

import (
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The password
// hash never leaves the store.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role.String(),
		RelatedID: user.RelatedID,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
