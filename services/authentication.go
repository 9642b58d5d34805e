package services

import (
	"strings"
	"sync"
	"time"

	"genoscope/api/models"
	"genoscope/api/models/conditions"
	"genoscope/api/repositories/flatfile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type (
	Session struct {
		Token     string    `json:"token"`
		Email     string    `json:"email"`
		ExpiresAt time.Time `json:"expiresAt"`
	}

	AuthnService struct {
		users      *flatfile.CredentialRepository
		ttl        time.Duration
		bcryptCost int

		sessions    map[string]Session
		sessionsMux sync.RWMutex

		logger *zap.Logger
		now    func() time.Time
	}
)

func NewAuthnService(cfg *models.Config, users *flatfile.CredentialRepository, logger *zap.Logger) *AuthnService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cost := cfg.AuthX.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &AuthnService{
		users:      users,
		ttl:        time.Duration(cfg.AuthX.SessionTtlMinutes) * time.Minute,
		bcryptCost: cost,
		sessions:   map[string]Session{},
		logger:     logger,
		now:        time.Now,
	}
}

// Signup stores a bcrypt hash of the password under the email
func (a *AuthnService) Signup(email string, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return conditions.ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return err
	}

	created, err := a.users.Append(flatfile.Credential{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return err
	}
	if !created {
		return conditions.ErrUserExists
	}

	a.logger.Info("user signed up", zap.String("email", flatfile.NormalizeEmail(email)))
	return nil
}

// Login checks the credentials and opens a session
func (a *AuthnService) Login(email string, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, conditions.ErrMissingCredentials
	}

	credential, ok := a.users.Find(email)
	if !ok {
		return Session{}, conditions.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return Session{}, conditions.ErrInvalidCredentials
	}

	session := Session{
		Token:     uuid.NewString(),
		Email:     credential.Email,
		ExpiresAt: a.now().Add(a.ttl).UTC(),
	}

	a.sessionsMux.Lock()
	a.sessions[session.Token] = session
	a.sessionsMux.Unlock()

	return session, nil
}

// Authenticate resolves a session token, rejecting unknown and expired ones
func (a *AuthnService) Authenticate(token string) (Session, error) {
	a.sessionsMux.RLock()
	session, ok := a.sessions[token]
	a.sessionsMux.RUnlock()

	if !ok || !a.now().Before(session.ExpiresAt) {
		return Session{}, conditions.ErrInvalidSession
	}
	return session, nil
}

func (a *AuthnService) SweepExpiredSessions() int {
	now := a.now()

	a.sessionsMux.Lock()
	defer a.sessionsMux.Unlock()

	swept := 0
	for token, session := range a.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(a.sessions, token)
			swept++
		}
	}
	return swept
}
