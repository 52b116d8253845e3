package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mention-radar/config"
	"mention-radar/database"
	"mention-radar/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(config.Database{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "auth.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	s := NewService(db, time.Hour)
	s.cost = bcrypt.MinCost
	return s
}

func TestSignUpSignInSignOut(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	identity, session, err := s.SignUp(ctx, " Ana@Example.com ", "segredo", Metadata{FullName: "Ana Souza"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, "Ana Souza", identity.MetadataString("full_name"))
	assert.Equal(t, string(models.RoleUsuario), identity.MetadataString("role"))
	assert.Len(t, session.Token, 26)

	current, err := s.CurrentIdentity(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, current.ID)

	_, _, err = s.SignIn(ctx, "ana@example.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.SignIn(ctx, "ninguem@example.com", "segredo")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	signedIn, second, err := s.SignIn(ctx, "ANA@example.com", "segredo")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, signedIn.ID)
	assert.NotEqual(t, session.Token, second.Token)

	require.NoError(t, s.SignOut(ctx, session.Token))
	_, err = s.CurrentIdentity(ctx, session.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = s.CurrentIdentity(ctx, second.Token)
	assert.NoError(t, err)
	assert.NoError(t, s.SignOut(ctx, ""))
}

func TestSignUpValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.SignUp(ctx, "sem-arroba", "segredo", Metadata{})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = s.SignUp(ctx, "ana@example.com", "12345", Metadata{})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, _, err = s.SignUp(ctx, "ana@example.com", "123456", Metadata{Role: models.RoleAdmin})
	require.NoError(t, err)

	_, _, err = s.SignUp(ctx, "ANA@example.com", "123456", Metadata{})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSessionExpiryAndPurge(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, session, err := s.SignUp(ctx, "ana@example.com", "segredo", Metadata{})
	require.NoError(t, err)

	_, err = s.CurrentIdentity(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = s.CurrentIdentity(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	assert.ErrorIs(t, err, ErrNoSession)

	now = now.Add(2 * time.Hour)
	_, err = s.CurrentIdentity(ctx, session.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSchedulePurge(t *testing.T) {
	s := newTestService(t)

	c, err := s.SchedulePurge("@every 1h")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()

	_, err = s.SchedulePurge("not a schedule")
	assert.Error(t, err)
}
