package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/handlers/middleware"
	"github.com/mkovaleva/classtrack/internal/handlers/render"
	"github.com/mkovaleva/classtrack/internal/logger"
	"github.com/mkovaleva/classtrack/internal/models"
	"github.com/mkovaleva/classtrack/internal/service/auth"
)

// SessionResponse is what sign in and refresh return: profile fields plus a
// fresh token pair. ExpiresAt is the access token expiry in epoch seconds,
// for the client to schedule a proactive refresh
type SessionResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

func newSessionResponse(s models.Session) SessionResponse {
	return SessionResponse{
		UserResponse: newUserResponse(s.User),
		AccessToken:  s.Tokens.Access.Value,
		RefreshToken: s.Tokens.Refresh.Value,
		ExpiresAt:    s.Tokens.Access.ExpiresAt.Unix(),
	}
}

func handleSignUp(s authService, l logger.Logger) http.Handler {
	type request struct {
		Email     string      `json:"email" validate:"required,email"`
		Password  string      `json:"password" validate:"required,min=8"`
		FirstName string      `json:"first_name" validate:"required"`
		LastName  string      `json:"last_name" validate:"required"`
		Role      models.Role `json:"role" validate:"omitempty,oneof=admin school student"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := s.SignUp(r.Context(), auth.SignUpParams{
			Email:     data.Email,
			Password:  data.Password,
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Role:      data.Role,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.ServiceError(w, "User already exists", http.StatusConflict)
			default:
				l.Error("sign up failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSONWithStatus(w, newUserResponse(user), http.StatusCreated)
	})
}

func handleSignIn(s authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		session, err := s.SignIn(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUnauthorized):
				// Same answer for unknown email and wrong password
				render.ServiceError(w, "Access denied", http.StatusUnauthorized)
			default:
				l.Error("sign in failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newSessionResponse(session))
	})
}

func handleRefresh(s authService, l logger.Logger) http.Handler {
	type request struct {
		UserID       uuid.UUID `json:"user_id" validate:"required"`
		RefreshToken string    `json:"refresh_token" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		session, err := s.Refresh(r.Context(), data.UserID, data.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUnauthorized):
				render.ServiceError(w, "Access denied", http.StatusUnauthorized)
			default:
				l.Error("refresh failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newSessionResponse(session))
	})
}

func handleLogout(s authService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if err := s.Logout(r.Context(), p.ID); err != nil {
			l.Error("logout failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{Message: "Logged out"})
	})
}

func handleMe() http.Handler {
	type response struct {
		ID    uuid.UUID   `json:"id"`
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.PrincipalFromContext(r.Context())
		if p == nil {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{ID: p.ID, Email: p.Email, Role: p.Role})
	})
}

func handleForgotPassword(s authService, l logger.Logger) http.Handler {
	type request struct {
		Email string `json:"email" validate:"required,email"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		// The reset token goes into the mail the external mailer sends.
		// This service only issues it
		_, err = s.ForgotPassword(r.Context(), data.Email)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusNotFound)
			default:
				l.Error("forgot password failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{Message: "Email Sent"})
	})
}

func handleResetPassword(s authService, l logger.Logger) http.Handler {
	type request struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		if err := s.ResetPassword(r.Context(), data.Token, data.Password); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidToken):
				render.ServiceError(w, "Invalid token", http.StatusUnauthorized)
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusNotFound)
			default:
				l.Error("reset password failed", "error", err.Error())
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{Message: "Password changed"})
	})
}
