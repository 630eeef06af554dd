package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
)

type RoleRepo struct{ db repository.DB }

func NewRoleRepo(db repository.DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) List(ctx context.Context) ([]models.Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, created_at, updated_at
		FROM roles
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Slug, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *RoleRepo) get(ctx context.Context, where string, arg any) (*models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slug, created_at, updated_at
		FROM roles WHERE `+where+` = $1
	`, arg).Scan(&role.ID, &role.Name, &role.Slug, &role.CreatedAt, &role.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Get(ctx context.Context, id string) (*models.Role, error) {
	return r.get(ctx, "id", id)
}

func (r *RoleRepo) GetBySlug(ctx context.Context, slug string) (*models.Role, error) {
	return r.get(ctx, "slug", slug)
}

func (r *RoleRepo) Create(ctx context.Context, role *models.Role) error {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	now := time.Now()
	role.CreatedAt, role.UpdatedAt = now, now
	_, err := r.db.Exec(ctx, `
		INSERT INTO roles (id, name, slug, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, role.ID, role.Name, role.Slug, role.CreatedAt, role.UpdatedAt)
	return mapPgError(err)
}

func (r *RoleRepo) Update(ctx context.Context, role *models.Role) error {
	role.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE roles SET name=$1, slug=$2, updated_at=$3 WHERE id=$4
	`, role.Name, role.Slug, role.UpdatedAt, role.ID)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UsersWith returns the users currently holding the given role.
func (r *RoleRepo) UsersWith(ctx context.Context, roleID string) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			u.id, u.email, u.name, COALESCE(u.statut, ''), COALESCE(u.phone, ''),
			COALESCE(u.address, ''), COALESCE(u.geocode, ''), COALESCE(u.infos, ''),
			COALESCE(u.solde_actuelle, 0), COALESCE(u.solde_autorise, 0),
			COALESCE(u.qr_code, ''), COALESCE(u.id_rpp, ''), COALESCE(u.code_user, ''),
			COALESCE(u.image, ''), COALESCE(u.schema, ''), u.isdeleted, u.created_at
		FROM users u
		JOIN user_roles ur ON ur.id_user = u.id
		WHERE ur.id_role = $1
		ORDER BY u.created_at DESC
	`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
