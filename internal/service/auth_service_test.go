package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbummouad/ticket-backend/internal/auth"
	"github.com/cbummouad/ticket-backend/internal/models"
	"github.com/cbummouad/ticket-backend/internal/repository"
	"github.com/cbummouad/ticket-backend/internal/service"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

const testSecret = "service-test-secret"

type memUserRepo struct {
	byEmail map[string]*models.User
	hashes  map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*models.User{}, hashes: map[string]string{}}
}

func (m *memUserRepo) List(context.Context) ([]models.User, error) { return nil, nil }

func (m *memUserRepo) Get(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, string, error) {
	u := m.byEmail[email]
	if u == nil {
		return nil, "", nil
	}
	return u, m.hashes[email], nil
}

func (m *memUserRepo) Create(_ context.Context, u *models.User, passwordHash string) error {
	if m.byEmail[u.Email] != nil {
		return repository.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = "user-" + u.Email
	}
	m.byEmail[u.Email] = u
	m.hashes[u.Email] = passwordHash
	return nil
}

func (m *memUserRepo) Update(context.Context, *models.User) error { return nil }
func (m *memUserRepo) Delete(context.Context, string) error       { return nil }

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the password", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := service.NewAuthService(repo, testSecret)

		u, tok, err := svc.Register(ctx, "new@example.com", "s3cret", "New User")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.NotEmpty(t, tok)

		stored := repo.hashes["new@example.com"]
		assert.NotEqual(t, "s3cret", stored)
		assert.True(t, utils.CheckPassword(stored, "s3cret"))
	})

	t.Run("issued token passes the local verifier", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := service.NewAuthService(repo, testSecret)

		u, tok, err := svc.Register(ctx, "v@example.com", "pw", "")
		require.NoError(t, err)

		id, err := auth.NewLocalVerifier(testSecret).Verify(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, u.ID, id.ID)
		assert.Equal(t, "v@example.com", id.Email)
	})

	t.Run("blank email or password is rejected", func(t *testing.T) {
		svc := service.NewAuthService(newMemUserRepo(), testSecret)
		_, _, err := svc.Register(ctx, "  ", "pw", "")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		_, _, err = svc.Register(ctx, "a@example.com", "", "")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("duplicate email surfaces the store error", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := service.NewAuthService(repo, testSecret)
		_, _, err := svc.Register(ctx, "dup@example.com", "pw", "")
		require.NoError(t, err)
		_, _, err = svc.Register(ctx, "dup@example.com", "pw2", "")
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*memUserRepo, *service.AuthService) {
		t.Helper()
		repo := newMemUserRepo()
		svc := service.NewAuthService(repo, testSecret)
		_, _, err := svc.Register(ctx, "agent@example.com", "correct-horse", "Agent")
		require.NoError(t, err)
		return repo, svc
	}

	t.Run("valid credentials return a verifiable token", func(t *testing.T) {
		_, svc := seed(t)
		u, tok, err := svc.Login(ctx, "agent@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "agent@example.com", u.Email)

		id, err := auth.NewLocalVerifier(testSecret).Verify(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, u.ID, id.ID)
	})

	t.Run("wrong password fails with the same error as an unknown user", func(t *testing.T) {
		_, svc := seed(t)
		_, _, badPw := svc.Login(ctx, "agent@example.com", "wrong")
		_, _, noUser := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, badPw, service.ErrInvalidCredentials)
		assert.ErrorIs(t, noUser, service.ErrInvalidCredentials)
	})

	t.Run("tokens expire in the future", func(t *testing.T) {
		_, svc := seed(t)
		_, tok, err := svc.Login(ctx, "agent@example.com", "correct-horse")
		require.NoError(t, err)
		id, err := auth.NewLocalVerifier(testSecret).Verify(ctx, tok)
		require.NoError(t, err)
		assert.NotEmpty(t, id.ID)
		// Freshly minted token must still be valid well after issuance.
		time.Sleep(10 * time.Millisecond)
		_, err = auth.NewLocalVerifier(testSecret).Verify(ctx, tok)
		assert.NoError(t, err)
	})
}
