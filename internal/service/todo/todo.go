package todo

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
)

// Todo service. Every operation is scoped to the calling user: nobody can
// read or touch another user's todos, they simply do not exist for them
type TodoService struct {
	todoRepo repository.TodoRepo
}

func NewService(todoRepo repository.TodoRepo) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	return s.todoRepo.ListByUser(ctx, userID)
}

func (s *TodoService) Get(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error) {
	return s.todoRepo.Get(ctx, userID, todoID)
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, title string, description *string) (models.Todo, error) {
	return s.todoRepo.Create(ctx, repository.CreateTodoParams{
		UserID:      userID,
		Title:       title,
		Description: description,
	})
}

func (s *TodoService) Update(ctx context.Context, userID uuid.UUID, todoID uuid.UUID, params repository.UpdateTodoParams) (models.Todo, error) {
	return s.todoRepo.Update(ctx, userID, todoID, params)
}

func (s *TodoService) Delete(ctx context.Context, userID uuid.UUID, todoID uuid.UUID) (models.Todo, error) {
	return s.todoRepo.Delete(ctx, userID, todoID)
}
