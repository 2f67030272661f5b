package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/models"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultSigningMethod   = "HS256"

	// Reset tokens are signed with a day long expiry but verification
	// additionally rejects anything older than defaultResetMaxAge, so the
	// effective window is the smaller of the two
	resetTokenSignTTL  = 24 * time.Hour
	defaultResetMaxAge = 15 * time.Minute
)

// Claims embedded in access and refresh tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID   `json:"uid"`
	Email  string      `json:"email,omitempty"`
	Role   models.Role `json:"role,omitempty"`
}

// Token manager with sensible defaults
type Config struct {
	// Distinct secrets per token kind, so possession of one token type
	// never lets anyone forge another. All three are required
	AccessSecret  string
	RefreshSecret string
	ResetSecret   string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set the default is used
	Alg string

	// Token lifetimes
	// If not set the defaults are used
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	ResetMaxAge time.Duration
}

type TokenManager struct {
	accessKey  string
	refreshKey string
	resetKey   string

	alg jwt.SigningMethod

	accessTTL   time.Duration
	refreshTTL  time.Duration
	resetMaxAge time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" || cfg.ResetSecret == "" {
		return nil, errors.New("all token secrets must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)
	setDefaultDuration(&cfg.ResetMaxAge, defaultResetMaxAge)

	return &TokenManager{
		accessKey:   cfg.AccessSecret,
		refreshKey:  cfg.RefreshSecret,
		resetKey:    cfg.ResetSecret,
		alg:         jwt.GetSigningMethod(cfg.Alg),
		accessTTL:   cfg.AccessTTL,
		refreshTTL:  cfg.RefreshTTL,
		resetMaxAge: cfg.ResetMaxAge,
	}, nil
}

// IssuePair generates access and refresh tokens for the user. Pure function
// of the user and current time: persisting the refresh hash is the caller's job
func (m *TokenManager) IssuePair(user models.User) (models.TokenPair, error) {
	now := time.Now().Truncate(time.Second)
	accessExpiresAt := now.Add(m.accessTTL)
	refreshExpiresAt := now.Add(m.refreshTTL)

	access, err := m.sign(m.accessKey, user, now, accessExpiresAt)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	refresh, err := m.sign(m.refreshKey, user, now, refreshExpiresAt)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while signing refresh token. Err: %w", err)
	}

	return models.TokenPair{
		Access:  models.IssuedToken{Value: access, ExpiresAt: accessExpiresAt},
		Refresh: models.IssuedToken{Value: refresh, ExpiresAt: refreshExpiresAt},
	}, nil
}

// Parse and validate an access token
// Fails with apperrors.ErrInvalidToken no matter what went wrong: a forged
// token and an expired one must be indistinguishable to the caller
func (m *TokenManager) ParseAccess(access string) (Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		access,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.accessKey), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w. Err: %v", apperrors.ErrInvalidToken, err)
	}

	return *claims, nil
}

// IssueReset generates a password reset token carrying the user id only
func (m *TokenManager) IssueReset(userID uuid.UUID) (string, error) {
	now := time.Now().Truncate(time.Second)

	token, err := m.sign(m.resetKey, models.User{ID: userID}, now, now.Add(resetTokenSignTTL))
	if err != nil {
		return "", fmt.Errorf("error while signing reset token. Err: %w", err)
	}

	return token, nil
}

// ParseReset validates a password reset token and returns the user id.
// On top of the signature expiry it enforces the reset max age against the
// token's issue time
func (m *TokenManager) ParseReset(token string) (uuid.UUID, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.resetKey), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w. Err: %v", apperrors.ErrInvalidToken, err)
	}

	if claims.IssuedAt == nil || time.Since(claims.IssuedAt.Time) > m.resetMaxAge {
		return uuid.Nil, fmt.Errorf("%w. Err: reset token over max age", apperrors.ErrInvalidToken)
	}

	return claims.UserID, nil
}

func (m *TokenManager) sign(key string, user models.User, issuedAt time.Time, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(issuedAt),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	)

	return token.SignedString([]byte(key))
}
