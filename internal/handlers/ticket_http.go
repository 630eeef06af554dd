package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/middleware"
	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

// Notifier pushes an event to a user's live channel, if any.
type Notifier interface {
	Publish(userID, event string, data any)
}

type TicketHTTP struct {
	tickets       repository.TicketRepository
	notifications repository.NotificationRepository
	notifier      Notifier
}

func NewTicketHTTP(tickets repository.TicketRepository, notifications repository.NotificationRepository, notifier Notifier) *TicketHTTP {
	return &TicketHTTP{tickets: tickets, notifications: notifications, notifier: notifier}
}

// GET /tickets
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tickets, err := h.tickets.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if tickets == nil {
			tickets = []models.Ticket{}
		}
		utils.JSON(w, http.StatusOK, tickets)
	}
}

// GET /tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.tickets.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "Ticket not found")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title           string     `json:"title" validate:"required"`
		Type            string     `json:"type"`
		Description     string     `json:"description" validate:"required"`
		PublishDate     *time.Time `json:"publish_date"`
		AffectDate      *time.Time `json:"affect_date"`
		ResolveDate     *time.Time `json:"resolve_date"`
		AssignedAgentID string     `json:"assigned_agent_id"`
		Priority        string     `json:"priority" validate:"omitempty,oneof=low medium high"`
		Difficulty      string     `json:"difficulty" validate:"omitempty,oneof=low medium high"`
		Status          string     `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Title = strings.TrimSpace(in.Title)
		in.Description = strings.TrimSpace(in.Description)
		if err := validate.Struct(in); err != nil {
			utils.Error(w, http.StatusBadRequest, "Title and description are required")
			return
		}

		identity, ok := middleware.IdentityFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		t := &models.Ticket{
			Title:           in.Title,
			Type:            in.Type,
			Description:     in.Description,
			CreatorID:       identity.ID,
			PublishDate:     in.PublishDate,
			AffectDate:      in.AffectDate,
			ResolveDate:     in.ResolveDate,
			AssignedAgentID: in.AssignedAgentID,
			Priority:        in.Priority,
			Difficulty:      in.Difficulty,
			Status:          in.Status,
		}
		t.ApplyDefaults()

		if err := h.tickets.Create(r.Context(), t); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				utils.Error(w, http.StatusBadRequest, "Invalid user or role ID")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if t.AssignedAgentID != "" {
			h.notifyAssignment(r, t)
		}

		utils.JSON(w, http.StatusCreated, t)
	}
}

// notifyAssignment records a notification for the assigned agent and
// re-emits it on the agent's live channel. Failures only get logged
// server-side via the catch-all; the ticket write has already landed.
func (h *TicketHTTP) notifyAssignment(r *http.Request, t *models.Ticket) {
	n := &models.Notification{
		UserID:  t.AssignedAgentID,
		Title:   "Ticket assigned",
		Message: "You have been assigned ticket: " + t.Title,
		Type:    models.NotificationInfo,
	}
	if err := h.notifications.Create(r.Context(), n); err != nil {
		return
	}
	h.notifier.Publish(n.UserID, "notification", n)
}

// PUT /tickets/{id} — only provided fields are applied.
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Title           *string    `json:"title"`
		Type            *string    `json:"type"`
		Description     *string    `json:"description"`
		PublishDate     *time.Time `json:"publish_date"`
		AffectDate      *time.Time `json:"affect_date"`
		ResolveDate     *time.Time `json:"resolve_date"`
		AssignedAgentID *string    `json:"assigned_agent_id"`
		Priority        *string    `json:"priority"`
		Difficulty      *string    `json:"difficulty"`
		Status          *string    `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := h.tickets.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "Ticket not found")
			return
		}

		previousAgent := t.AssignedAgentID

		if in.Title != nil {
			t.Title = strings.TrimSpace(*in.Title)
		}
		if in.Type != nil {
			t.Type = *in.Type
		}
		if in.Description != nil {
			t.Description = strings.TrimSpace(*in.Description)
		}
		if in.PublishDate != nil {
			t.PublishDate = in.PublishDate
		}
		if in.AffectDate != nil {
			t.AffectDate = in.AffectDate
		}
		if in.ResolveDate != nil {
			t.ResolveDate = in.ResolveDate
		}
		if in.AssignedAgentID != nil {
			t.AssignedAgentID = *in.AssignedAgentID
		}
		if in.Priority != nil {
			t.Priority = *in.Priority
		}
		if in.Difficulty != nil {
			t.Difficulty = *in.Difficulty
		}
		if in.Status != nil {
			t.Status = *in.Status
		}

		if err := h.tickets.Update(r.Context(), t); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				utils.Error(w, http.StatusBadRequest, "Invalid user or role ID")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if t.AssignedAgentID != "" && t.AssignedAgentID != previousAgent {
			h.notifyAssignment(r, t)
		}

		utils.JSON(w, http.StatusOK, t)
	}
}

// DELETE /tickets/{id}
func (h *TicketHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.tickets.Delete(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Ticket not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.Message(w, http.StatusOK, "Ticket deleted successfully")
	}
}
