package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
)

type TicketRepo struct{ db repository.DB }

func NewTicketRepo(db repository.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketCols = `
	id, title, COALESCE(type, ''), description, creator_id,
	publish_date, affect_date, resolve_date, COALESCE(assigned_agent_id::text, ''),
	priority, difficulty, status, created_at, updated_at`

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(
		&t.ID, &t.Title, &t.Type, &t.Description, &t.CreatorID,
		&t.PublishDate, &t.AffectDate, &t.ResolveDate, &t.AssignedAgentID,
		&t.Priority, &t.Difficulty, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) List(ctx context.Context) ([]models.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT`+ticketCols+` FROM tickets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT`+ticketCols+` FROM tickets WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	_, err := r.db.Exec(ctx, `
		INSERT INTO tickets (id, title, type, description, creator_id, publish_date,
			affect_date, resolve_date, assigned_agent_id, priority, difficulty, status,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		t.ID, t.Title, t.Type, t.Description, t.CreatorID, t.PublishDate,
		t.AffectDate, t.ResolveDate, nullIfEmpty(t.AssignedAgentID),
		t.Priority, t.Difficulty, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	return mapPgError(err)
}

func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket) error {
	t.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET
			title=$1, type=$2, description=$3, publish_date=$4, affect_date=$5,
			resolve_date=$6, assigned_agent_id=$7, priority=$8, difficulty=$9,
			status=$10, updated_at=$11
		WHERE id=$12
	`,
		t.Title, t.Type, t.Description, t.PublishDate, t.AffectDate,
		t.ResolveDate, nullIfEmpty(t.AssignedAgentID), t.Priority, t.Difficulty,
		t.Status, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
