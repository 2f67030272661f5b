package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/handlers/middleware"
	"github.com/mkovaleva/classtrack/internal/handlers/render"
	"github.com/mkovaleva/classtrack/internal/logger"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/repository"
)

type TodoResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
}

func newTodoResponse(t models.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

func handleListTodos(s todoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		todos, err := s.List(r.Context(), p.ID)
		if err != nil {
			l.Error("list todos failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := make([]TodoResponse, 0, len(todos))
		for _, t := range todos {
			res = append(res, newTodoResponse(t))
		}
		render.JSON(w, res)
	})
}

func handleCreateTodo(s todoService, l logger.Logger) http.Handler {
	type request struct {
		Title       string  `json:"title" validate:"required"`
		Description *string `json:"description"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		todo, err := s.Create(r.Context(), p.ID, data.Title, data.Description)
		if err != nil {
			l.Error("create todo failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, newTodoResponse(todo), http.StatusCreated)
	})
}

func handleGetTodo(s todoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		todoID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid todo id", http.StatusBadRequest)
			return
		}

		todo, err := s.Get(r.Context(), p.ID, todoID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTodoNotFound):
				render.ServiceError(w, "Todo not found", http.StatusNotFound)
			default:
				l.Error("get todo failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newTodoResponse(todo))
	})
}

func handleUpdateTodo(s todoService, l logger.Logger) http.Handler {
	type request struct {
		Title       string  `json:"title" validate:"required"`
		Description *string `json:"description"`
		Completed   bool    `json:"completed"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		todoID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid todo id", http.StatusBadRequest)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		todo, err := s.Update(r.Context(), p.ID, todoID, repository.UpdateTodoParams{
			Title:       data.Title,
			Description: data.Description,
			Completed:   data.Completed,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTodoNotFound):
				render.ServiceError(w, "Todo not found", http.StatusNotFound)
			default:
				l.Error("update todo failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newTodoResponse(todo))
	})
}

func handleDeleteTodo(s todoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		todoID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid todo id", http.StatusBadRequest)
			return
		}

		todo, err := s.Delete(r.Context(), p.ID, todoID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTodoNotFound):
				render.ServiceError(w, "Todo not found", http.StatusNotFound)
			default:
				l.Error("delete todo failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newTodoResponse(todo))
	})
}
