// Package auth implements password sign-in, sign-up and cookie sessions on
// top of the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mention-radar/models"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrWeakPassword       = fmt.Errorf("a senha deve ter no mínimo %d caracteres", MinPasswordLength)
	ErrInvalidEmail       = errors.New("email inválido")
	ErrNoSession          = errors.New("sessão inexistente ou expirada")
)

// Metadata is the profile information captured at sign-up.
type Metadata struct {
	FullName string
	Role     models.Role
}

type Service struct {
	db   *gorm.DB
	ttl  time.Duration
	cost int
	now  func() time.Time
}

func NewService(db *gorm.DB, sessionTTL time.Duration) *Service {
	return &Service{
		db:   db,
		ttl:  sessionTTL,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new identity and opens a session for it.
func (s *Service) SignUp(ctx context.Context, email, password string, meta Metadata) (models.Identity, models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.Identity{}, models.Session{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return models.Identity{}, models.Session{}, ErrWeakPassword
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Identity{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.Identity{}, models.Session{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return models.Identity{}, models.Session{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.Identity{}, models.Session{}, fmt.Errorf("hash password: %w", err)
	}

	role := meta.Role
	if role == "" {
		role = models.RoleUsuario
	}
	identity := models.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Metadata: datatypes.JSONMap{
			"full_name": strings.TrimSpace(meta.FullName),
			"role":      string(role),
		},
	}
	if err := s.db.WithContext(ctx).Create(&identity).Error; err != nil {
		return models.Identity{}, models.Session{}, fmt.Errorf("create identity: %w", err)
	}

	session, err := s.openSession(ctx, identity.ID)
	if err != nil {
		return models.Identity{}, models.Session{}, err
	}
	return identity, session, nil
}

// SignIn checks the credential pair and opens a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.Identity, models.Session, error) {
	var identity models.Identity
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Identity{}, models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, models.Session{}, fmt.Errorf("load identity: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return models.Identity{}, models.Session{}, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, identity.ID)
	if err != nil {
		return models.Identity{}, models.Session{}, err
	}
	return identity, session, nil
}

func (s *Service) openSession(ctx context.Context, identityID string) (models.Session, error) {
	session := models.Session{
		Token:      ulid.Make().String(),
		IdentityID: identityID,
		ExpiresAt:  s.now().Add(s.ttl).UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// SignOut ends a session. Unknown tokens are ignored.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

// CurrentIdentity resolves the identity behind a live session token.
func (s *Service) CurrentIdentity(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrNoSession
	}
	var session models.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Identity{}, ErrNoSession
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("load session: %w", err)
	}
	if !s.now().Before(session.ExpiresAt) {
		return models.Identity{}, ErrNoSession
	}

	var identity models.Identity
	err = s.db.WithContext(ctx).Where("id = ?", session.IdentityID).First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Identity{}, ErrNoSession
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("load identity: %w", err)
	}
	return identity, nil
}

// PurgeExpired deletes sessions past their expiry.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
