package services

import (
	"context"
	"strings"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(ctx context.Context, actor models.Principal, req *UserWriteRequest) (*models.User, error)
	Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *UserWriteRequest) (*models.User, error)
	Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error
	GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.User, error)
}

type UserWriteRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleTenant
}

func (s *userService) validate(req *UserWriteRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("name", "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperrors.Validation("email", "email is required")
	}
	if !validRole(req.Role) {
		return apperrors.Validation("role", "role must be admin or tenant")
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		return apperrors.Validation("status", "status must be active or inactive")
	}
	return nil
}

func (s *userService) Create(ctx context.Context, actor models.Principal, req *UserWriteRequest) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("password", "password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Status:       req.Status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("user", "email already registered")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor models.Principal, id uuid.UUID, req *UserWriteRequest) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	user.Status = req.Status
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("user", "email already registered")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor models.Principal, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("user")
		}
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) GetByID(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor models.Principal, limit, offset int) ([]*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, limit, offset)
}
