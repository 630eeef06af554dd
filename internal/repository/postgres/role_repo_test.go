package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/repository/postgres"
)

func TestRoleRepo_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewRoleRepo(mock)

		now := time.Now()
		rows := mock.NewRows([]string{"id", "name", "slug", "created_at", "updated_at"}).
			AddRow("r1", "Admin", "admin", now, now)
		mock.ExpectQuery("SELECT (.+) FROM roles WHERE id = \\$1").
			WithArgs("r1").
			WillReturnRows(rows)

		role, err := repo.Get(context.Background(), "r1")
		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, "Admin", role.Name)
		assert.Equal(t, "admin", role.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing role is nil, not an error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewRoleRepo(mock)

		mock.ExpectQuery("SELECT (.+) FROM roles WHERE id = \\$1").
			WithArgs("nope").
			WillReturnError(pgx.ErrNoRows)

		role, err := repo.Get(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, role)
	})
}

func TestRoleRepo_Create_DuplicateMapsToSentinel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := postgres.NewRoleRepo(mock)

	mock.ExpectExec("INSERT INTO roles").
		WithArgs(pgxmock.AnyArg(), "Admin", "admin", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Create(context.Background(), &models.Role{Name: "Admin", Slug: "admin"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestRoleRepo_Create_GeneratesID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := postgres.NewRoleRepo(mock)

	mock.ExpectExec("INSERT INTO roles").
		WithArgs(pgxmock.AnyArg(), "Agent", "agent", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	role := &models.Role{Name: "Agent", Slug: "agent"}
	require.NoError(t, repo.Create(context.Background(), role))
	assert.NotEmpty(t, role.ID)
	assert.False(t, role.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepo_Delete_NoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := postgres.NewRoleRepo(mock)

	mock.ExpectExec("DELETE FROM roles WHERE id = \\$1").
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
