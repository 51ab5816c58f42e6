package user

import (
	"log/slog"

	"github.com/frahmantamala/conference-management/internal"
	"github.com/frahmantamala/conference-management/internal/core/common/pagination"
	userDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/user"
)

// Repository is the data access surface for users. Reads exclude
// soft-deleted rows.
type Repository interface {
	GetByID(id string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
	UpdateFields(id string, updates map[string]interface{}) (*userDatamodel.User, error)
	Delete(id string) error
	List(limit, offset int) (int64, []*userDatamodel.User, error)
}

// PasswordHasher hashes plaintext passwords before persistence.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) CreateUser(dto CreateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("create user rejected: email already registered", "email", dto.Email)
		return nil, internal.ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	record := &userDatamodel.User{
		Email:        dto.Email,
		PasswordHash: hash,
		IsActive:     dto.Active(),
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	resp := ToResponse(record)
	return &resp, nil
}

func (s *Service) RetrieveUser(userID string) (*UserDetail, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Warn("user not found", "user_id", userID)
		return nil, internal.ErrUserNotFound
	}

	detail := ToDetail(record)
	return &detail, nil
}

// UpdateUser applies only the fields present in the DTO. Passwords are
// re-hashed before persistence.
func (s *Service) UpdateUser(userID string, dto UpdateUserDTO) (*UserResponse, error) {
	updates := map[string]interface{}{}

	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) == 0 {
		return nil, internal.ErrNoUpdateFields
	}

	record, err := s.repo.UpdateFields(userID, updates)
	if err != nil {
		if err == ErrNotFound {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}

	resp := ToResponse(record)
	return &resp, nil
}

func (s *Service) DeleteUser(userID string) error {
	if err := s.repo.Delete(userID); err != nil {
		if err == ErrNotFound {
			return internal.ErrUserNotFound
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return err
	}
	return nil
}

func (s *Service) ListUsers(params pagination.Params) (*pagination.Response[UserResponse], error) {
	total, records, err := s.repo.List(params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	items := make([]UserResponse, 0, len(records))
	for _, record := range records {
		items = append(items, ToResponse(record))
	}

	resp := pagination.NewResponse(items, total, params)
	return &resp, nil
}
