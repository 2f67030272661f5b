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

// UserResponse is the user as returned to clients. The password hash and
// the refresh token hash never leave the service
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
	Avatar    *string     `json:"avatar,omitempty"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Avatar:    u.Avatar,
	}
}

func newUserResponseList(users []models.User) []UserResponse {
	res := make([]UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, newUserResponse(u))
	}
	return res
}

func handleGetProfile(s userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		user, err := s.GetProfile(r.Context(), p.ID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusNotFound)
			default:
				l.Error("get profile failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newUserResponse(user))
	})
}

func handleUpdateProfile(s userService, l logger.Logger) http.Handler {
	type request struct {
		FirstName string  `json:"first_name" validate:"required"`
		LastName  string  `json:"last_name" validate:"required"`
		Avatar    *string `json:"avatar"`
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

		user, err := s.UpdateProfile(r.Context(), p.ID, repository.UpdateProfileParams{
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Avatar:    data.Avatar,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusNotFound)
			default:
				l.Error("update profile failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newUserResponse(user))
	})
}

func handleListUsers(s userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := s.ListUsers(r.Context())
		if err != nil {
			l.Error("list users failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, newUserResponseList(users))
	})
}

func handleUpdateRole(s userService, l logger.Logger) http.Handler {
	type request struct {
		UserID uuid.UUID   `json:"user_id" validate:"required"`
		Role   models.Role `json:"role" validate:"required,oneof=admin school student"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := s.UpdateRole(r.Context(), data.UserID, data.Role)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusNotFound)
			default:
				l.Error("update role failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newUserResponse(user))
	})
}

func handleListStudents(s userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		students, err := s.ListStudents(r.Context())
		if err != nil {
			l.Error("list students failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, newUserResponseList(students))
	})
}
