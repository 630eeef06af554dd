package auth

import (
	"context"
	"strings"

	"github.com/cbummouad/ticket-backend/internal/models"
)

// RoleGrant is one role currently linked to an identity.
type RoleGrant struct {
	RoleID string
	Name   string
	Slug   string
}

// RoleResolver loads the roles linked to an identity. An identity with
// no roles yields an empty slice, not an error.
type RoleResolver interface {
	RolesOf(ctx context.Context, identityID string) ([]RoleGrant, error)
}

// RoleSource is the slice of the user-role repository the resolver needs.
type RoleSource interface {
	ListByUser(ctx context.Context, userID string) ([]models.UserRole, error)
}

type Resolver struct {
	src RoleSource
}

func NewResolver(src RoleSource) *Resolver { return &Resolver{src: src} }

func (r *Resolver) RolesOf(ctx context.Context, identityID string) ([]RoleGrant, error) {
	rows, err := r.src.ListByUser(ctx, identityID)
	if err != nil {
		return nil, err
	}
	out := make([]RoleGrant, 0, len(rows))
	for _, ur := range rows {
		// The joined role record is occasionally absent; skip such rows
		// instead of dereferencing them.
		if ur.Role == nil {
			continue
		}
		out = append(out, RoleGrant{RoleID: ur.Role.ID, Name: ur.Role.Name, Slug: ur.Role.Slug})
	}
	return out, nil
}

// HasAdmin reports whether any grant is literally named "admin",
// case-insensitively.
func HasAdmin(grants []RoleGrant) bool {
	for _, g := range grants {
		if strings.EqualFold(g.Name, "admin") {
			return true
		}
	}
	return false
}
