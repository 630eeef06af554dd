package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

type UserHTTP struct {
	users     repository.UserRepository
	userRoles repository.UserRoleRepository
}

func NewUserHTTP(users repository.UserRepository, userRoles repository.UserRoleRepository) *UserHTTP {
	return &UserHTTP{users: users, userRoles: userRoles}
}

type userDTO struct {
	Email             string  `json:"email" validate:"required,email"`
	Name              string  `json:"name" validate:"required"`
	Status            string  `json:"statut"`
	Phone             string  `json:"phone"`
	Address           string  `json:"address"`
	Geocode           string  `json:"geocode"`
	Info              string  `json:"infos"`
	CurrentBalance    float64 `json:"solde_actuelle"`
	AuthorizedBalance float64 `json:"solde_autorise"`
	QRCode            string  `json:"qr_code"`
	RPPID             string  `json:"id_rpp"`
	UserCode          string  `json:"code_user"`
	Image             string  `json:"image"`
	Schema            string  `json:"schema"`
}

// GET /users
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.users.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if users == nil {
			users = []models.User{}
		}
		utils.JSON(w, http.StatusOK, users)
	}
}

// GET /users/{id}
func (h *UserHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// GET /users/email/{email}
func (h *UserHTTP) GetByEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _, err := h.users.GetByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// POST /users
func (h *UserHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in userDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.Error(w, http.StatusBadRequest, "Email and name are required")
			return
		}

		u := &models.User{
			Email:             in.Email,
			Name:              in.Name,
			Status:            in.Status,
			Phone:             in.Phone,
			Address:           in.Address,
			Geocode:           in.Geocode,
			Info:              in.Info,
			CurrentBalance:    in.CurrentBalance,
			AuthorizedBalance: in.AuthorizedBalance,
			QRCode:            in.QRCode,
			RPPID:             in.RPPID,
			UserCode:          in.UserCode,
			Image:             in.Image,
			Schema:            in.Schema,
		}
		if err := h.users.Create(r.Context(), u, ""); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				utils.Error(w, http.StatusConflict, "User with this email already exists")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// PUT /users/{id} — only provided fields are applied.
func (h *UserHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Email             *string  `json:"email"`
		Name              *string  `json:"name"`
		Status            *string  `json:"statut"`
		Phone             *string  `json:"phone"`
		Address           *string  `json:"address"`
		Geocode           *string  `json:"geocode"`
		Info              *string  `json:"infos"`
		CurrentBalance    *float64 `json:"solde_actuelle"`
		AuthorizedBalance *float64 `json:"solde_autorise"`
		QRCode            *string  `json:"qr_code"`
		RPPID             *string  `json:"id_rpp"`
		UserCode          *string  `json:"code_user"`
		Image             *string  `json:"image"`
		Schema            *string  `json:"schema"`
		IsDeleted         *bool    `json:"isdeleted"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}

		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Status != nil {
			u.Status = *in.Status
		}
		if in.Phone != nil {
			u.Phone = *in.Phone
		}
		if in.Address != nil {
			u.Address = *in.Address
		}
		if in.Geocode != nil {
			u.Geocode = *in.Geocode
		}
		if in.Info != nil {
			u.Info = *in.Info
		}
		if in.CurrentBalance != nil {
			u.CurrentBalance = *in.CurrentBalance
		}
		if in.AuthorizedBalance != nil {
			u.AuthorizedBalance = *in.AuthorizedBalance
		}
		if in.QRCode != nil {
			u.QRCode = *in.QRCode
		}
		if in.RPPID != nil {
			u.RPPID = *in.RPPID
		}
		if in.UserCode != nil {
			u.UserCode = *in.UserCode
		}
		if in.Image != nil {
			u.Image = *in.Image
		}
		if in.Schema != nil {
			u.Schema = *in.Schema
		}
		if in.IsDeleted != nil {
			u.IsDeleted = *in.IsDeleted
		}

		if err := h.users.Update(r.Context(), u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				utils.Error(w, http.StatusConflict, "User with this email already exists")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// DELETE /users/{id}
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "User deleted successfully")
	}
}

// GET /users/{id}/roles
func (h *UserHTTP) Roles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.userRoles.ListByUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if rows == nil {
			rows = []models.UserRole{}
		}
		utils.JSON(w, http.StatusOK, rows)
	}
}

// POST /users/{id}/roles
func (h *UserHTTP) AssignRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			RoleID string `json:"roleId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.RoleID == "" {
			utils.Error(w, http.StatusBadRequest, "Role ID is required")
			return
		}

		_, err := h.userRoles.Assign(r.Context(), chi.URLParam(r, "id"), in.RoleID)
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			utils.Error(w, http.StatusConflict, "User already has this role")
		case errors.Is(err, repository.ErrForeignKey):
			utils.Error(w, http.StatusBadRequest, "Invalid user or role ID")
		case err != nil:
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
		default:
			utils.Message(w, http.StatusOK, "Role assigned successfully")
		}
	}
}

// DELETE /users/{id}/roles/{roleId}
func (h *UserHTTP) RemoveRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.userRoles.Remove(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "roleId"))
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "Role removed successfully")
	}
}
