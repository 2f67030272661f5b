package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/models"
)

// Storage aggregates repositories over a single connection or transaction
type Storage interface {
	User() UserRepo
	Todo() TodoRepo

	// Run fn within a database transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}

type CreateUserParams struct {
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
	Role           models.Role
}

type UpdateProfileParams struct {
	FirstName string
	LastName  string
	Avatar    *string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If a user with the same email exists must return apperrors.ErrUserAlreadyExists
	Create(ctx context.Context, params CreateUserParams) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)

	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)

	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (models.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) (models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error

	// Overwrite the stored refresh token hash unconditionally
	// nil revokes the session (sign in, logout)
	SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash *string) error

	// Replace the stored refresh token hash only while it still equals prev.
	// Must return apperrors.ErrUnauthorized when the user is gone or a
	// concurrent rotation replaced the hash first (refresh)
	RotateRefreshTokenHash(ctx context.Context, userID uuid.UUID, prev *string, next string) error
}

type CreateTodoParams struct {
	UserID      uuid.UUID
	Title       string
	Description *string
}

type UpdateTodoParams struct {
	Title       string
	Description *string
	Completed   bool
}

// Todo repository interface
// Every method is scoped by the owning user: a todo owned by somebody else
// behaves exactly like a missing one
type TodoRepo interface {
	Create(ctx context.Context, params CreateTodoParams) (models.Todo, error)

	// Must return apperrors.ErrTodoNotFound if id does not exist for that user
	Get(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error)
	Update(ctx context.Context, userID uuid.UUID, todoID uuid.UUID, params UpdateTodoParams) (models.Todo, error)
	Delete(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
}
