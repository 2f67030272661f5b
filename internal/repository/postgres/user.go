package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
)

type UserRepo struct {
	DB DBTX
}

const userColumns = `id, created_at, email, password_hash, first_name, last_name, role, avatar, refresh_token_hash`

const createUser = `-- name: CreateUser
INSERT INTO users (id, email, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

func (r *UserRepo) Create(ctx context.Context, params repository.CreateUserParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser,
		uuid.New(), params.Email, params.HashedPassword, params.FirstName, params.LastName, params.Role)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return user, apperrors.ErrUserAlreadyExists
		}

		return user, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const getUserByID = `-- name: GetUserByID
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`

func (r *UserRepo) GetByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByID, userID)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const getUserByEmail = `-- name: GetUserByEmail
SELECT ` + userColumns + `
FROM users
WHERE email = $1
`

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByEmail, email)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const listUsers = `-- name: ListUsers
SELECT ` + userColumns + `
FROM users
ORDER BY created_at
`

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, _ := r.DB.Query(ctx, listUsers)
	users, err := pgx.CollectRows(rows, rowToUser)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

const listUsersByRole = `-- name: ListUsersByRole
SELECT ` + userColumns + `
FROM users
WHERE role = $1
ORDER BY created_at
`

func (r *UserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	rows, _ := r.DB.Query(ctx, listUsersByRole, role)
	users, err := pgx.CollectRows(rows, rowToUser)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

const updateProfile = `-- name: UpdateProfile
UPDATE users
SET first_name = $2, last_name = $3, avatar = $4
WHERE id = $1
RETURNING ` + userColumns

func (r *UserRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, params repository.UpdateProfileParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, updateProfile, userID, params.FirstName, params.LastName, params.Avatar)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const updateRole = `-- name: UpdateRole
UPDATE users
SET role = $2
WHERE id = $1
RETURNING ` + userColumns

func (r *UserRepo) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) (models.User, error) {
	rows, _ := r.DB.Query(ctx, updateRole, userID, role)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const updatePassword = `-- name: UpdatePassword
UPDATE users
SET password_hash = $2
WHERE id = $1
`

func (r *UserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	tag, err := r.DB.Exec(ctx, updatePassword, userID, hashedPassword)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

const setRefreshTokenHash = `-- name: SetRefreshTokenHash
UPDATE users
SET refresh_token_hash = $2
WHERE id = $1
`

func (r *UserRepo) SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash *string) error {
	tag, err := r.DB.Exec(ctx, setRefreshTokenHash, userID, hash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

const rotateRefreshTokenHash = `-- name: RotateRefreshTokenHash
UPDATE users
SET refresh_token_hash = $3
WHERE id = $1 AND refresh_token_hash IS NOT DISTINCT FROM $2
`

// Compare-and-set on the stored hash: the update applies only while the
// stored value still equals prev. Two concurrent refreshes that both passed
// the bcrypt compare cannot both win here
func (r *UserRepo) RotateRefreshTokenHash(ctx context.Context, userID uuid.UUID, prev *string, next string) error {
	tag, err := r.DB.Exec(ctx, rotateRefreshTokenHash, userID, prev, next)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// User is gone or another rotation replaced the hash first
		return apperrors.ErrUnauthorized
	}

	return nil
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName, &u.Role, &u.Avatar, &u.RefreshTokenHash)
	return u, err
}
