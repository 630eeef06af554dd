package models

import "time"

// User mirrors the users table of the data provider. Only email and
// name are validated by this service; the remaining profile fields are
// passed through as-is.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Status            string    `json:"statut"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	Geocode           string    `json:"geocode"`
	Info              string    `json:"infos"`
	CurrentBalance    float64   `json:"solde_actuelle"`
	AuthorizedBalance float64   `json:"solde_autorise"`
	QRCode            string    `json:"qr_code"`
	RPPID             string    `json:"id_rpp"`
	UserCode          string    `json:"code_user"`
	Image             string    `json:"image"`
	Schema            string    `json:"schema"`
	IsDeleted         bool      `json:"isdeleted"`
	CreatedAt         time.Time `json:"created_at"`
}
