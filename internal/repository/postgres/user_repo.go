package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
)

type UserRepo struct{ db repository.DB }

func NewUserRepo(db repository.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `
	id, email, name, COALESCE(statut, ''), COALESCE(phone, ''), COALESCE(address, ''),
	COALESCE(geocode, ''), COALESCE(infos, ''), COALESCE(solde_actuelle, 0),
	COALESCE(solde_autorise, 0), COALESCE(qr_code, ''), COALESCE(id_rpp, ''),
	COALESCE(code_user, ''), COALESCE(image, ''), COALESCE(schema, ''), isdeleted, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Status, &u.Phone, &u.Address,
		&u.Geocode, &u.Info, &u.CurrentBalance, &u.AuthorizedBalance,
		&u.QRCode, &u.RPPID, &u.UserCode, &u.Image, &u.Schema,
		&u.IsDeleted, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT`+userCols+` FROM users ORDER BY created_at DESC`)
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

func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT`+userCols+` FROM users WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := r.db.QueryRow(ctx, `
		SELECT`+userCols+`, COALESCE(password_hash, '')
		FROM users WHERE email = $1
	`, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Status, &u.Phone, &u.Address,
		&u.Geocode, &u.Info, &u.CurrentBalance, &u.AuthorizedBalance,
		&u.QRCode, &u.RPPID, &u.UserCode, &u.Image, &u.Schema,
		&u.IsDeleted, &u.CreatedAt, &hash,
	)
	if err == pgx.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &u, hash, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, name, statut, phone, address, geocode, infos,
			solde_actuelle, solde_autorise, qr_code, id_rpp, code_user, image, schema,
			isdeleted, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		u.ID, u.Email, u.Name, u.Status, u.Phone, u.Address, u.Geocode, u.Info,
		u.CurrentBalance, u.AuthorizedBalance, u.QRCode, u.RPPID, u.UserCode,
		u.Image, u.Schema, u.IsDeleted, passwordHash, u.CreatedAt,
	)
	return mapPgError(err)
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE users SET
			email=$1, name=$2, statut=$3, phone=$4, address=$5, geocode=$6, infos=$7,
			solde_actuelle=$8, solde_autorise=$9, qr_code=$10, id_rpp=$11,
			code_user=$12, image=$13, schema=$14, isdeleted=$15
		WHERE id=$16
	`,
		u.Email, u.Name, u.Status, u.Phone, u.Address, u.Geocode, u.Info,
		u.CurrentBalance, u.AuthorizedBalance, u.QRCode, u.RPPID,
		u.UserCode, u.Image, u.Schema, u.IsDeleted, u.ID,
	)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
