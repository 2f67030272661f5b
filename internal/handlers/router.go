package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/handlers/middleware"
	"github.com/mkovaleva/classtrack/internal/logger"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
	"github.com/mkovaleva/classtrack/internal/service/auth"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// NewRouter wires every endpoint with its required tier. The principal is
// resolved once per request; the tier middleware decides admission
func NewRouter(
	authService authService,
	userService userService,
	todoService todoService,
	logger logger.Logger,
) http.Handler {
	require := func(tier auth.Tier, h http.Handler) http.Handler {
		return middleware.Require(tier)(h)
	}

	api := http.NewServeMux()

	api.Handle("POST /auth/signup", handleSignUp(authService, logger))
	api.Handle("POST /auth/signin", handleSignIn(authService, logger))
	api.Handle("POST /auth/refresh", handleRefresh(authService, logger))
	api.Handle("POST /auth/logout", require(auth.TierAuthenticated, handleLogout(authService, logger)))
	api.Handle("GET /auth/me", require(auth.TierAuthenticated, handleMe()))
	api.Handle("POST /auth/forgot-password", handleForgotPassword(authService, logger))
	api.Handle("POST /auth/reset-password", handleResetPassword(authService, logger))

	api.Handle("GET /users/profile", require(auth.TierAuthenticated, handleGetProfile(userService, logger)))
	api.Handle("PUT /users/profile", require(auth.TierAuthenticated, handleUpdateProfile(userService, logger)))
	api.Handle("GET /users", require(auth.TierAdminOnly, handleListUsers(userService, logger)))
	api.Handle("PUT /users/role", require(auth.TierAdminOnly, handleUpdateRole(userService, logger)))

	api.Handle("GET /school/students", require(auth.TierSchoolOrAdmin, handleListStudents(userService, logger)))

	api.Handle("GET /todos", require(auth.TierAnyRole, handleListTodos(todoService, logger)))
	api.Handle("POST /todos", require(auth.TierAnyRole, handleCreateTodo(todoService, logger)))
	api.Handle("GET /todos/{id}", require(auth.TierAnyRole, handleGetTodo(todoService, logger)))
	api.Handle("PUT /todos/{id}", require(auth.TierAnyRole, handleUpdateTodo(todoService, logger)))
	api.Handle("DELETE /todos/{id}", require(auth.TierAnyRole, handleDeleteTodo(todoService, logger)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root,
		middleware.Logger(logger),
		middleware.Principal(authService),
	)
}

type authService interface {
	// Register a new user
	// Has to return apperrors.ErrUserAlreadyExists if the email is taken
	SignUp(ctx context.Context, params auth.SignUpParams) (models.User, error)

	// Check credentials and start a session
	// Has to return apperrors.ErrUnauthorized on any credential mismatch
	SignIn(ctx context.Context, email string, password string) (models.Session, error)

	// Rotate the session using a refresh token
	// Has to return apperrors.ErrUnauthorized on any mismatch
	Refresh(ctx context.Context, userID uuid.UUID, refresh string) (models.Session, error)

	// Revoke the active session
	Logout(ctx context.Context, userID uuid.UUID) error

	// Issue a password reset token for the email's account
	// Has to return apperrors.ErrUserNotFound for unknown emails
	ForgotPassword(ctx context.Context, email string) (string, error)

	// Set a new password for the user the reset token names
	// Has to return apperrors.ErrInvalidToken for bad or over-age tokens
	ResetPassword(ctx context.Context, token string, password string) error

	// Map an Authorization header to a principal, nil if it can't
	Resolve(authorization string) *models.Principal
}

type userService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params repository.UpdateProfileParams) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) (models.User, error)
	ListStudents(ctx context.Context) ([]models.User, error)
}

type todoService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
	Get(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error)
	Create(ctx context.Context, userID uuid.UUID, title string, description *string) (models.Todo, error)
	Update(ctx context.Context, userID uuid.UUID, todoID uuid.UUID, params repository.UpdateTodoParams) (models.Todo, error)
	Delete(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error)
}
