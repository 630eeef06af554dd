package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/repository/postgres"
)

func TestUserRoleRepo_Assign(t *testing.T) {
	t.Run("inserts a link row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewUserRoleRepo(mock)

		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(pgxmock.AnyArg(), "u-123", "r1", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		ur, err := repo.Assign(context.Background(), "u-123", "r1")
		require.NoError(t, err)
		assert.Equal(t, "u-123", ur.UserID)
		assert.Equal(t, "r1", ur.RoleID)
		assert.NotEmpty(t, ur.ID)
	})

	t.Run("duplicate assignment fails distinctly", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewUserRoleRepo(mock)

		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(pgxmock.AnyArg(), "u-123", "r1", pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err = repo.Assign(context.Background(), "u-123", "r1")
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("unknown user or role fails as foreign key", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewUserRoleRepo(mock)

		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(pgxmock.AnyArg(), "ghost", "r1", pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err = repo.Assign(context.Background(), "ghost", "r1")
		assert.ErrorIs(t, err, repository.ErrForeignKey)
	})
}

func TestUserRoleRepo_ListByUser(t *testing.T) {
	t.Run("joined role records are populated", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewUserRoleRepo(mock)

		now := time.Now()
		rows := mock.NewRows([]string{
			"id", "id_user", "id_role", "created_at",
			"role_id", "role_name", "role_slug", "role_created_at", "role_updated_at",
		}).AddRow("ur1", "u-123", "r1", now, ptr("r1"), ptr("Admin"), ptr("admin"), &now, &now)

		mock.ExpectQuery("SELECT (.+) FROM user_roles ur").
			WithArgs("u-123").
			WillReturnRows(rows)

		out, err := repo.ListByUser(context.Background(), "u-123")
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.NotNil(t, out[0].Role)
		assert.Equal(t, "Admin", out[0].Role.Name)
	})

	t.Run("link row with a missing role carries a nil Role", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := postgres.NewUserRoleRepo(mock)

		now := time.Now()
		rows := mock.NewRows([]string{
			"id", "id_user", "id_role", "created_at",
			"role_id", "role_name", "role_slug", "role_created_at", "role_updated_at",
		}).AddRow("ur1", "u-123", "r-gone", now, nilStr(), nilStr(), nilStr(), nilTime(), nilTime())

		mock.ExpectQuery("SELECT (.+) FROM user_roles ur").
			WithArgs("u-123").
			WillReturnRows(rows)

		out, err := repo.ListByUser(context.Background(), "u-123")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Nil(t, out[0].Role)
	})
}

func ptr(s string) *string { return &s }

func nilStr() *string { return nil }

func nilTime() *time.Time { return nil }
