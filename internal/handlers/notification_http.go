package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/cbummouad/ticket-backend/internal/middleware"
	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/realtime"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

type NotificationHTTP struct {
	repo repository.NotificationRepository
	hub  *realtime.Hub
	log  zerolog.Logger
}

func NewNotificationHTTP(repo repository.NotificationRepository, hub *realtime.Hub, log zerolog.Logger) *NotificationHTTP {
	return &NotificationHTTP{repo: repo, hub: hub, log: log}
}

// List godoc
// @Summary List notifications for the current user
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Notification
// @Failure 401 {object} object{error=string}
// @Router /notifications [get]
func (h *NotificationHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		out, err := h.repo.ListByUser(r.Context(), identity.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if out == nil {
			out = []models.Notification{}
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

// Unread godoc
// @Summary List unread notifications for the current user
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications/unread [get]
func (h *NotificationHTTP) Unread() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		out, err := h.repo.ListUnread(r.Context(), identity.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if out == nil {
			out = []models.Notification{}
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

// ownedNotification loads the notification and enforces that it belongs
// to the caller. Writes the error response itself when it returns nil.
func (h *NotificationHTTP) ownedNotification(w http.ResponseWriter, r *http.Request) *models.Notification {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return nil
	}
	n, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return nil
	}
	if n == nil {
		utils.Error(w, http.StatusNotFound, "Notification not found")
		return nil
	}
	if n.UserID != identity.ID {
		utils.Error(w, http.StatusForbidden, "Access denied")
		return nil
	}
	return n
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} models.Notification
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /notifications/{id}/read [put]
func (h *NotificationHTTP) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := h.ownedNotification(w, r)
		if n == nil {
			return
		}
		updated, err := h.repo.MarkRead(r.Context(), n.ID)
		if err != nil || updated == nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}

// MarkAllRead godoc
// @Summary Mark all notifications as read for the current user
// @Tags notifications
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /notifications/mark-all-read [put]
func (h *NotificationHTTP) MarkAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		if err := h.repo.MarkAllRead(r.Context(), identity.ID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "All notifications marked as read")
	}
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /notifications/{id} [delete]
func (h *NotificationHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := h.ownedNotification(w, r)
		if n == nil {
			return
		}
		if err := h.repo.Delete(r.Context(), n.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "Notification deleted successfully")
	}
}

// Create godoc
// @Summary Create a notification for a user (admin only)
// @Tags notifications
// @Security BearerAuth
// @Accept json
// @Success 201 {object} models.Notification
// @Router /notifications [post]
func (h *NotificationHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		UserID  string          `json:"user_id" validate:"required"`
		Title   string          `json:"title" validate:"required"`
		Message string          `json:"message" validate:"required"`
		Type    string          `json:"type" validate:"omitempty,oneof=info warning error success"`
		Data    json.RawMessage `json:"data"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.Error(w, http.StatusBadRequest, "user_id, title and message are required")
			return
		}

		n := &models.Notification{
			UserID:  in.UserID,
			Title:   in.Title,
			Message: in.Message,
			Type:    in.Type,
			Data:    in.Data,
		}
		if err := h.repo.Create(r.Context(), n); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				utils.Error(w, http.StatusBadRequest, "Invalid user or role ID")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		h.hub.Publish(n.UserID, "notification", n)
		utils.JSON(w, http.StatusCreated, n)
	}
}

var upgrader = websocket.Upgrader{
	// Cross-origin checks are handled by the CORS middleware; the
	// bearer token already gates this endpoint.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Socket upgrades the connection and joins the caller's room until the
// peer goes away. Events are pushed by the hub; inbound frames are
// discarded.
func (h *NotificationHTTP) Socket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Debug().Err(err).Msg("ws upgrade failed")
			return
		}

		h.hub.Register(identity.ID, conn)
		defer func() {
			h.hub.Unregister(identity.ID, conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
