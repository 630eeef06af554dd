package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cbummouad/ticket-backend/internal/middleware"
	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/service"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

type AuthHTTP struct {
	svc *service.AuthService
}

func NewAuthHTTP(svc *service.AuthService) *AuthHTTP {
	return &AuthHTTP{svc: svc}
}

func publicUser(u *models.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"full_name": u.Name,
	}
}

// POST /auth/register
func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			FullName string `json:"full_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, token, err := h.svc.Register(r.Context(), in.Email, in.Password, in.FullName)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			utils.Error(w, http.StatusBadRequest, "Email and password are required")
			return
		case errors.Is(err, repository.ErrDuplicate):
			utils.Error(w, http.StatusConflict, "User with this email already exists")
			return
		case err != nil:
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		utils.JSON(w, http.StatusCreated, map[string]any{
			"user":    publicUser(u),
			"token":   token,
			"message": "User registered successfully",
		})
	}
}

// POST /auth/login
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, token, err := h.svc.Login(r.Context(), in.Email, in.Password)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			utils.Error(w, http.StatusBadRequest, "Email and password are required")
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		case err != nil:
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]any{
			"user":    publicUser(u),
			"token":   token,
			"message": "Login successful",
		})
	}
}

// GET /auth/profile (protected)
func (h *AuthHTTP) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"user": map[string]string{
				"id":    identity.ID,
				"email": identity.Email,
			},
		})
	}
}

// POST /auth/logout — tokens are stateless; nothing to revoke server-side.
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Message(w, http.StatusOK, "Logout successful")
	}
}
