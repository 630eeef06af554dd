package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
)

type UserRoleRepo struct{ db repository.DB }

func NewUserRoleRepo(db repository.DB) *UserRoleRepo { return &UserRoleRepo{db: db} }

// ListByUser joins the link rows with their role records. A LEFT JOIN
// is used on purpose: the role side can be absent on inconsistent data,
// in which case the entry carries a nil Role and the caller filters it.
func (r *UserRoleRepo) ListByUser(ctx context.Context, userID string) ([]models.UserRole, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ur.id, ur.id_user, ur.id_role, ur.created_at,
			ro.id, ro.name, ro.slug, ro.created_at, ro.updated_at
		FROM user_roles ur
		LEFT JOIN roles ro ON ro.id = ur.id_role
		WHERE ur.id_user = $1
		ORDER BY ur.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserRole
	for rows.Next() {
		var ur models.UserRole
		var roleID, roleName, roleSlug *string
		var roleCreated, roleUpdated *time.Time
		if err := rows.Scan(
			&ur.ID, &ur.UserID, &ur.RoleID, &ur.CreatedAt,
			&roleID, &roleName, &roleSlug, &roleCreated, &roleUpdated,
		); err != nil {
			return nil, err
		}
		if roleID != nil {
			ur.Role = &models.Role{ID: *roleID, Name: *roleName, Slug: *roleSlug}
			if roleCreated != nil {
				ur.Role.CreatedAt = *roleCreated
			}
			if roleUpdated != nil {
				ur.Role.UpdatedAt = *roleUpdated
			}
		}
		out = append(out, ur)
	}
	return out, rows.Err()
}

func (r *UserRoleRepo) Assign(ctx context.Context, userID, roleID string) (*models.UserRole, error) {
	ur := &models.UserRole{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoleID:    roleID,
		CreatedAt: time.Now(),
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_roles (id, id_user, id_role, created_at)
		VALUES ($1,$2,$3,$4)
	`, ur.ID, ur.UserID, ur.RoleID, ur.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return ur, nil
}

func (r *UserRoleRepo) Remove(ctx context.Context, userID, roleID string) error {
	ct, err := r.db.Exec(ctx, `
		DELETE FROM user_roles WHERE id_user = $1 AND id_role = $2
	`, userID, roleID)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
