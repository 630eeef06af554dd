package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cbummouad/ticket-backend/internal/models"
)

// DB is the slice of pgxpool.Pool the repositories use. pgxmock's pool
// satisfies it too, which is what the tests run against.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Constraint violations surfaced by the data provider, mapped to
// distinct kinds so handlers can answer 409 vs 400.
var (
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("referenced record does not exist")
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	Create(ctx context.Context, u *models.User, passwordHash string) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
}

type RoleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	Get(ctx context.Context, id string) (*models.Role, error)
	GetBySlug(ctx context.Context, slug string) (*models.Role, error)
	Create(ctx context.Context, r *models.Role) error
	Update(ctx context.Context, r *models.Role) error
	Delete(ctx context.Context, id string) error
	UsersWith(ctx context.Context, roleID string) ([]models.User, error)
}

type UserRoleRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.UserRole, error)
	Assign(ctx context.Context, userID, roleID string) (*models.UserRole, error)
	Remove(ctx context.Context, userID, roleID string) error
}

type TicketRepository interface {
	List(ctx context.Context) ([]models.Ticket, error)
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	Update(ctx context.Context, t *models.Ticket) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]models.Notification, error)
	Get(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
