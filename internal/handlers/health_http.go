package handlers

import (
	"net/http"
	"time"

	"github.com/cbummouad/ticket-backend/internal/utils"
)

func Health(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{
			"status":      "OK",
			"message":     "Ticket Management Backend is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}
