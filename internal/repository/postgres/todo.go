package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
)

type TodoRepo struct {
	DB DBTX
}

const todoColumns = `id, user_id, created_at, title, description, completed`

const createTodo = `-- name: CreateTodo
INSERT INTO todos (id, user_id, title, description)
VALUES ($1, $2, $3, $4)
RETURNING ` + todoColumns

func (r *TodoRepo) Create(ctx context.Context, params repository.CreateTodoParams) (models.Todo, error) {
	rows, _ := r.DB.Query(ctx, createTodo, uuid.New(), params.UserID, params.Title, params.Description)
	todo, err := pgx.CollectOneRow(rows, rowToTodo)
	if err != nil {
		return todo, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

const getTodo = `-- name: GetTodo
SELECT ` + todoColumns + `
FROM todos
WHERE id = $2 AND user_id = $1
`

func (r *TodoRepo) Get(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error) {
	rows, _ := r.DB.Query(ctx, getTodo, userID, todoID)
	todo, err := pgx.CollectOneRow(rows, rowToTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, apperrors.ErrTodoNotFound
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const updateTodo = `-- name: UpdateTodo
UPDATE todos
SET title = $3, description = $4, completed = $5
WHERE id = $2 AND user_id = $1
RETURNING ` + todoColumns

func (r *TodoRepo) Update(ctx context.Context, userID uuid.UUID, todoID uuid.UUID, params repository.UpdateTodoParams) (models.Todo, error) {
	rows, _ := r.DB.Query(ctx, updateTodo, userID, todoID, params.Title, params.Description, params.Completed)
	todo, err := pgx.CollectOneRow(rows, rowToTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, apperrors.ErrTodoNotFound
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const deleteTodo = `-- name: DeleteTodo
DELETE FROM todos
WHERE id = $2 AND user_id = $1
RETURNING ` + todoColumns

func (r *TodoRepo) Delete(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error) {
	rows, _ := r.DB.Query(ctx, deleteTodo, userID, todoID)
	todo, err := pgx.CollectOneRow(rows, rowToTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, apperrors.ErrTodoNotFound
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const listTodosByUser = `-- name: ListTodosByUser
SELECT ` + todoColumns + `
FROM todos
WHERE user_id = $1
ORDER BY created_at
`

func (r *TodoRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	rows, _ := r.DB.Query(ctx, listTodosByUser, userID)
	todos, err := pgx.CollectRows(rows, rowToTodo)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todos, nil
}

func rowToTodo(row pgx.CollectableRow) (models.Todo, error) {
	var t models.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.Title, &t.Description, &t.Completed)
	return t, err
}
