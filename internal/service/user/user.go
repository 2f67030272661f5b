package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
)

// User service: profile management and role administration
type UserService struct {
	userRepo repository.UserRepo
}

func NewService(userRepo repository.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, params repository.UpdateProfileParams) (models.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, params)
}

// List every user. Admin operation
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateRole changes another user's role. Admin operation
// Already issued access tokens keep the old role until their next refresh
func (s *UserService) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, fmt.Errorf("unknown role %q", role)
	}

	return s.userRepo.UpdateRole(ctx, userID, role)
}

// ListStudents lists users with the student role. School operation
func (s *UserService) ListStudents(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListByRole(ctx, models.RoleStudent)
}
