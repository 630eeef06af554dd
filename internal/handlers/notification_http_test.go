package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cbummouad/ticket-backend/internal/auth"
	"github.com/cbummouad/ticket-backend/internal/handlers"
	"github.com/cbummouad/ticket-backend/internal/middleware"
	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/realtime"
)

func notificationRouter(t *testing.T, repo *fakeNotificationRepo) http.Handler {
	t.Helper()
	h := handlers.NewNotificationHTTP(repo, realtime.NewHub(zerolog.Nop()), zerolog.Nop())
	r := chi.NewRouter()
	r.Use(middleware.WithAuth(zerolog.Nop(), auth.NewLocalVerifier(testSecret), time.Second))
	r.Get("/notifications", h.List())
	r.Get("/notifications/unread", h.Unread())
	r.Put("/notifications/mark-all-read", h.MarkAllRead())
	r.Put("/notifications/{id}/read", h.MarkRead())
	r.Delete("/notifications/{id}", h.Delete())
	return r
}

func TestNotificationOwnership(t *testing.T) {
	t.Run("marking someone else's notification is 403", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.byID["n1"] = &models.Notification{ID: "n1", UserID: "someone-else", Title: "t", Message: "m"}
		r := notificationRouter(t, repo)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/notifications/n1/read", ""))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"Access denied"}`, rec.Body.String())
		assert.False(t, repo.byID["n1"].IsRead)
	})

	t.Run("deleting someone else's notification is 403 and keeps the row", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.byID["n1"] = &models.Notification{ID: "n1", UserID: "someone-else", Title: "t", Message: "m"}
		r := notificationRouter(t, repo)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/notifications/n1", ""))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.NotNil(t, repo.byID["n1"])
	})

	t.Run("unknown notification is 404", func(t *testing.T) {
		r := notificationRouter(t, newFakeNotificationRepo())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/notifications/missing/read", ""))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Notification not found"}`, rec.Body.String())
	})

	t.Run("own notification marks read", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.byID["n1"] = &models.Notification{ID: "n1", UserID: "u-123", Title: "t", Message: "m"}
		r := notificationRouter(t, repo)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/notifications/n1/read", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, repo.byID["n1"].IsRead)
	})
}

func TestNotificationList(t *testing.T) {
	t.Run("lists only the caller's notifications", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.byID["n1"] = &models.Notification{ID: "n1", UserID: "u-123", Title: "mine", Message: "m"}
		repo.byID["n2"] = &models.Notification{ID: "n2", UserID: "other", Title: "not mine", Message: "m"}
		r := notificationRouter(t, repo)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/notifications", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "mine")
		assert.NotContains(t, rec.Body.String(), "not mine")
	})

	t.Run("empty result is an empty array, not null", func(t *testing.T) {
		r := notificationRouter(t, newFakeNotificationRepo())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/notifications/unread", ""))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("mark-all-read flips every row for the caller", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.byID["n1"] = &models.Notification{ID: "n1", UserID: "u-123", Title: "a", Message: "m"}
		repo.byID["n2"] = &models.Notification{ID: "n2", UserID: "u-123", Title: "b", Message: "m"}
		repo.byID["n3"] = &models.Notification{ID: "n3", UserID: "other", Title: "c", Message: "m"}
		r := notificationRouter(t, repo)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/notifications/mark-all-read", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"All notifications marked as read"}`, rec.Body.String())
		assert.True(t, repo.byID["n1"].IsRead)
		assert.True(t, repo.byID["n2"].IsRead)
		assert.False(t, repo.byID["n3"].IsRead)
	})
}
