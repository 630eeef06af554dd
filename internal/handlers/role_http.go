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

type RoleHTTP struct {
	roles     repository.RoleRepository
	userRoles repository.UserRoleRepository
}

func NewRoleHTTP(roles repository.RoleRepository, userRoles repository.UserRoleRepository) *RoleHTTP {
	return &RoleHTTP{roles: roles, userRoles: userRoles}
}

// GET /roles
func (h *RoleHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := h.roles.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if roles == nil {
			roles = []models.Role{}
		}
		utils.JSON(w, http.StatusOK, roles)
	}
}

// GET /roles/{id}
func (h *RoleHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := h.roles.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if role == nil {
			utils.Error(w, http.StatusNotFound, "Role not found")
			return
		}
		utils.JSON(w, http.StatusOK, role)
	}
}

// GET /roles/slug/{slug}
func (h *RoleHTTP) GetBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := h.roles.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if role == nil {
			utils.Error(w, http.StatusNotFound, "Role not found")
			return
		}
		utils.JSON(w, http.StatusOK, role)
	}
}

// POST /roles
func (h *RoleHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Name string `json:"name" validate:"required"`
		Slug string `json:"slug" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.Error(w, http.StatusBadRequest, "Name and slug are required")
			return
		}

		role := &models.Role{Name: in.Name, Slug: in.Slug}
		if err := h.roles.Create(r.Context(), role); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				utils.Error(w, http.StatusConflict, "Role with this name or slug already exists")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.JSON(w, http.StatusCreated, role)
	}
}

// PUT /roles/{id}
func (h *RoleHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		role, err := h.roles.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if role == nil {
			utils.Error(w, http.StatusNotFound, "Role not found")
			return
		}

		if in.Name != "" {
			role.Name = in.Name
		}
		if in.Slug != "" {
			role.Slug = in.Slug
		}

		if err := h.roles.Update(r.Context(), role); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				utils.Error(w, http.StatusConflict, "Role with this name or slug already exists")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.JSON(w, http.StatusOK, role)
	}
}

// DELETE /roles/{id}
func (h *RoleHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.roles.Delete(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Role not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "Role deleted successfully")
	}
}

// GET /roles/{id}/users
func (h *RoleHTTP) Users() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		role, err := h.roles.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if role == nil {
			utils.Error(w, http.StatusNotFound, "Role not found")
			return
		}

		users, err := h.roles.UsersWith(r.Context(), id)
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

// POST /roles/assign
func (h *RoleHTTP) Assign() http.HandlerFunc {
	type inDTO struct {
		UserID string `json:"userId"`
		RoleID string `json:"roleId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.UserID == "" || in.RoleID == "" {
			utils.Error(w, http.StatusBadRequest, "userId and roleId are required")
			return
		}

		ur, err := h.userRoles.Assign(r.Context(), in.UserID, in.RoleID)
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			utils.Error(w, http.StatusConflict, "User already has this role")
		case errors.Is(err, repository.ErrForeignKey):
			utils.Error(w, http.StatusBadRequest, "Invalid user or role ID")
		case err != nil:
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
		default:
			utils.JSON(w, http.StatusCreated, ur)
		}
	}
}

// POST /roles/remove
func (h *RoleHTTP) Remove() http.HandlerFunc {
	type inDTO struct {
		UserID string `json:"userId"`
		RoleID string `json:"roleId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.UserID == "" || in.RoleID == "" {
			utils.Error(w, http.StatusBadRequest, "userId and roleId are required")
			return
		}

		err := h.userRoles.Remove(r.Context(), in.UserID, in.RoleID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "Role removed from user successfully")
	}
}

// GET /roles/user/{userId}
func (h *RoleHTTP) UserRoles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.userRoles.ListByUser(r.Context(), chi.URLParam(r, "userId"))
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
