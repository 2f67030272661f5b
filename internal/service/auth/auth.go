package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
	"github.com/mkovaleva/classtrack/internal/service/auth/tokenmanager"
)

// Interface to create or compare password and refresh token hashes
type PasswordHasher interface {
	// Generate hash from value
	Hash(value string) (string, error)

	// Compare known hash and user provided value
	// Must be protected against timing attacks
	Compare(hashed string, value string) error
}

// Manager that issues and validates signed tokens
type TokenManager interface {
	IssuePair(user models.User) (models.TokenPair, error)
	ParseAccess(access string) (tokenmanager.Claims, error)
	IssueReset(userID uuid.UUID) (string, error)
	ParseReset(token string) (uuid.UUID, error)
}

type Config struct {
	// Hasher used for passwords and refresh tokens
	// Defaults to BcryptHasher
	Hasher PasswordHasher
}

type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string

	// Empty role defaults to student
	Role models.Role
}

// Auth service: sign up, sign in, session rotation, password reset and
// bearer token resolution
type AuthService struct {
	token    TokenManager
	hasher   PasswordHasher
	userRepo repository.UserRepo
}

func NewService(cfg Config, token TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	return &AuthService{
		token:    token,
		hasher:   hasher,
		userRepo: userRepo,
	}, nil
}

// SignUp creates a user. Does not start a session: the client signs in after
// Fails apperrors.ErrUserAlreadyExists on a duplicate email
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (models.User, error) {
	if params.Role == "" {
		params.Role = models.RoleStudent
	}
	if !params.Role.Valid() {
		return models.User{}, fmt.Errorf("unknown role %q", params.Role)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err := s.userRepo.Create(ctx, repository.CreateUserParams{
		Email:          params.Email,
		HashedPassword: hash,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Role:           params.Role,
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// SignIn checks credentials and starts a new session chain
// Unknown email and wrong password fail with the same apperrors.ErrUnauthorized
func (s *AuthService) SignIn(ctx context.Context, email string, password string) (models.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return models.Session{}, apperrors.ErrUnauthorized
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.Session{}, apperrors.ErrUnauthorized
	}

	pair, err := s.token.IssuePair(user)
	if err != nil {
		return models.Session{}, fmt.Errorf("error while issuing tokens. Err: %w", err)
	}

	// Overwriting the stored hash invalidates whatever session existed before
	refreshHash, err := s.hasher.Hash(pair.Refresh.Value)
	if err != nil {
		return models.Session{}, fmt.Errorf("error while hashing refresh token. Err: %w", err)
	}
	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, &refreshHash); err != nil {
		return models.Session{}, fmt.Errorf("error while storing refresh token. Err: %w", err)
	}

	return models.Session{User: user, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new pair and rotates the stored
// hash, which permanently invalidates the presented token.
// Any mismatch fails apperrors.ErrUnauthorized: unknown user, revoked
// session, token that was rotated away already
func (s *AuthService) Refresh(ctx context.Context, userID uuid.UUID, refresh string) (models.Session, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.Session{}, apperrors.ErrUnauthorized
	}

	// nil hash means the session was revoked: nothing can match it
	if user.RefreshTokenHash == nil {
		return models.Session{}, apperrors.ErrUnauthorized
	}
	if err := s.hasher.Compare(*user.RefreshTokenHash, refresh); err != nil {
		return models.Session{}, apperrors.ErrUnauthorized
	}

	pair, err := s.token.IssuePair(user)
	if err != nil {
		return models.Session{}, fmt.Errorf("error while issuing tokens. Err: %w", err)
	}

	refreshHash, err := s.hasher.Hash(pair.Refresh.Value)
	if err != nil {
		return models.Session{}, fmt.Errorf("error while hashing refresh token. Err: %w", err)
	}

	// Compare-and-set against the hash that was just compared, so two
	// concurrent refreshes with the same token cannot both rotate
	if err := s.userRepo.RotateRefreshTokenHash(ctx, user.ID, user.RefreshTokenHash, refreshHash); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return models.Session{}, apperrors.ErrUnauthorized
		}
		return models.Session{}, fmt.Errorf("error while rotating refresh token. Err: %w", err)
	}

	return models.Session{User: user, Tokens: pair}, nil
}

// Logout revokes the active session. Every later refresh attempt fails
// until the user signs in again
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.SetRefreshTokenHash(ctx, userID, nil); err != nil {
		return fmt.Errorf("error while revoking session. Err: %w", err)
	}

	return nil
}

// ForgotPassword issues a reset token for the account. Delivering it to the
// user (mail with a reset link) is not this service's concern
// Fails apperrors.ErrUserNotFound for an unknown email, which leaks whether
// the address is registered; kept to match the existing behavior
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.token.IssueReset(user.ID)
	if err != nil {
		return "", fmt.Errorf("error while issuing reset token. Err: %w", err)
	}

	return token, nil
}

// ResetPassword sets a new password for the user the reset token names
// Does not revoke the active refresh session: a live session survives the
// password change
func (s *AuthService) ResetPassword(ctx context.Context, token string, password string) error {
	userID, err := s.token.ParseReset(token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("can't use this as password. Err: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("error while updating password. Err: %w", err)
	}

	return nil
}

// Resolve maps an Authorization header value to a principal
// Missing or invalid tokens resolve to nil rather than an error: whether a
// principal is required at all is the gate's decision, not this one's
func (s *AuthService) Resolve(authorization string) *models.Principal {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" {
		return nil
	}

	claims, err := s.token.ParseAccess(token)
	if err != nil {
		return nil
	}

	return &models.Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}
}
