package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/user"
)

// UserResponse is the list/create output shape.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// UserDetail is the single-user output shape with timestamps.
type UserDetail struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserDTO is the payload for creating a user.
type CreateUserDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UpdateUserDTO carries optional fields; only non-nil ones are applied.
type UpdateUserDTO struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateUserDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

// Active resolves the optional is_active flag, defaulting to true.
func (d CreateUserDTO) Active() bool {
	if d.IsActive == nil {
		return true
	}
	return *d.IsActive
}

var ErrNotFound = errors.New("user not found")

func ToResponse(u *userDatamodel.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

func ToDetail(u *userDatamodel.User) UserDetail {
	return UserDetail{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
