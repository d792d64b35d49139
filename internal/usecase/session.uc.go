package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

const sessionTokenNS = "session_tokens"

// RoleSource reads the current role straight from the users table. Session
// issuance never trusts a role carried by an old token.
type RoleSource interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// SessionStore persists session rows.
type SessionStore interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	GetSessionsByUserID(ctx context.Context, userID string) ([]*domain.Session, error)
	TouchSession(ctx context.Context, token string, at time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

// TokenSigner mints a signed session token and its jti. Satisfied by
// jwtutil.Generator.
type TokenSigner interface {
	Generate(userID, email, role, device string) (string, string, error)
}

// TokenCache keeps the active-token set hot so the auth middleware rarely
// touches postgres. Satisfied by cache.Cache.
type TokenCache interface {
	Set(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, namespace, key string) (string, error)
	Delete(ctx context.Context, namespace, key string) error
}

type SessionUsecase struct {
	roles    RoleSource
	sessions SessionStore
	signer   TokenSigner
	cache    TokenCache
	ids      IDGen
	ttl      time.Duration
}

func NewSessionUsecase(roles RoleSource, sessions SessionStore, signer TokenSigner, cache TokenCache, ids IDGen, ttl time.Duration) *SessionUsecase {
	return &SessionUsecase{
		roles:    roles,
		sessions: sessions,
		signer:   signer,
		cache:    cache,
		ids:      ids,
		ttl:      ttl,
	}
}

// Issue creates a session for an already-authenticated user: fresh role read,
// token signing, token cache, and an async best-effort session row. The login
// response does not wait for postgres; the cache alone is enough for the
// middleware to accept the token.
func (uc *SessionUsecase) Issue(ctx context.Context, user *domain.User, device, ip, userAgent string) (*domain.Session, string, error) {
	role, err := uc.roles.GetRole(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	token, jti, err := uc.signer.Generate(user.ID, user.Email, role, device)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	session := &domain.Session{
		ID:         uc.ids.Generate(),
		UserID:     user.ID,
		AuthToken:  token,
		DeviceID:   optional(device),
		IPAddress:  optional(ip),
		UserAgent:  optional(userAgent),
		IsActive:   true,
		LastSeenAt: &now,
		CreatedAt:  now,
		ExpiresAt:  now.Add(uc.ttl),
	}

	if err := uc.cache.Set(ctx, sessionTokenNS, token, user.ID, uc.ttl); err != nil {
		log.Printf("[SESSION] failed to cache token jti=%s: %v", jti, err)
	}

	go uc.persistWithRetry(session, jti)

	return session, role, nil
}

func (uc *SessionUsecase) persistWithRetry(s *domain.Session, jti string) {
	backoff := 500 * time.Millisecond
	for attempt := 1; attempt <= 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := uc.sessions.CreateSession(ctx, s)
		cancel()
		if err == nil {
			return
		}
		log.Printf("[SESSION] persist attempt %d failed user=%s jti=%s: %v", attempt, s.UserID, jti, err)
		time.Sleep(backoff)
		backoff *= 2
	}
	log.Printf("[SESSION] giving up persisting session user=%s jti=%s", s.UserID, jti)
}

// Exists reports whether the token still belongs to a live session: the cache
// answers most of the time, postgres is the fallback for cache misses (e.g.
// after a redis restart), and a hit there refills the cache.
func (uc *SessionUsecase) Exists(ctx context.Context, token string) error {
	if _, err := uc.cache.Get(ctx, sessionTokenNS, token); err == nil {
		return nil
	}

	s, err := uc.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, xerrors.ErrSessionNotFound) {
			return xerrors.ErrSessionNotFound
		}
		return err
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl > 0 {
		_ = uc.cache.Set(ctx, sessionTokenNS, token, s.UserID, ttl)
	}
	return nil
}

// Touch stamps session activity. Advisory; callers fire-and-forget.
func (uc *SessionUsecase) Touch(ctx context.Context, token string) error {
	return uc.sessions.TouchSession(ctx, token, time.Now())
}

// List returns the user's active sessions, most recently seen first.
func (uc *SessionUsecase) List(ctx context.Context, userID string) ([]*domain.Session, error) {
	return uc.sessions.GetSessionsByUserID(ctx, userID)
}

// Logout revokes a single token.
func (uc *SessionUsecase) Logout(ctx context.Context, token string) error {
	if err := uc.cache.Delete(ctx, sessionTokenNS, token); err != nil {
		log.Printf("[SESSION] failed to evict cached token: %v", err)
	}
	return uc.sessions.DeleteByToken(ctx, token)
}

// LogoutAll revokes every session the user holds.
func (uc *SessionUsecase) LogoutAll(ctx context.Context, userID string) error {
	sessions, err := uc.sessions.GetSessionsByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if err := uc.cache.Delete(ctx, sessionTokenNS, s.AuthToken); err != nil {
			log.Printf("[SESSION] failed to evict cached token: %v", err)
		}
	}
	return uc.sessions.DeleteAllByUser(ctx, userID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
