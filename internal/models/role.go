package models

import "time"

type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole links a user to a role. Unique per (user, role) pair.
type UserRole struct {
	ID        string    `json:"id"`
	UserID    string    `json:"id_user"`
	RoleID    string    `json:"id_role"`
	CreatedAt time.Time `json:"created_at"`
	Role      *Role     `json:"role,omitempty"`
}
