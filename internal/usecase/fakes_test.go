package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/internal/service/mailer"
	oauth2svc "github.com/tanmay-mevada/DStrA-sub001/internal/service/oauth2"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// fakeAccount mirrors one users row closely enough for the lifecycle flows.
type fakeAccount struct {
	id         string
	hash       string
	role       string
	verified   bool
	otpCode    string
	otpExpires time.Time
	resetToken string
	resetExp   time.Time
	provider   string
}

// fakeUserStore reproduces the repository's conditional-update semantics in
// memory, including the win-at-most-once redemption rules.
type fakeUserStore struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount // by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{accounts: map[string]*fakeAccount{}}
}

func (s *fakeUserStore) UpsertSignupOTP(_ context.Context, id, email, hash, code string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[email]; ok {
		if a.verified {
			return xerrors.ErrUserAlreadyExists
		}
		a.hash, a.otpCode, a.otpExpires = hash, code, exp
		return nil
	}
	s.accounts[email] = &fakeAccount{id: id, hash: hash, role: domain.RoleStudent, otpCode: code, otpExpires: exp}
	return nil
}

func (s *fakeUserStore) RedeemSignupOTP(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	if a.verified {
		return xerrors.ErrAlreadyVerified
	}
	if a.otpCode == "" || a.otpCode != code || !time.Now().Before(a.otpExpires) {
		return xerrors.ErrInvalidOrExpiredOTP
	}
	a.verified = true
	a.otpCode = ""
	return nil
}

func (s *fakeUserStore) SetResetToken(_ context.Context, email, token string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	a.resetToken, a.resetExp = token, exp
	return nil
}

func (s *fakeUserStore) GetEmailByResetToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, a := range s.accounts {
		if a.resetToken != "" && a.resetToken == token && time.Now().Before(a.resetExp) {
			return email, nil
		}
	}
	return "", xerrors.ErrInvalidOrExpiredToken
}

func (s *fakeUserStore) RedeemResetToken(_ context.Context, token, newHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, a := range s.accounts {
		if a.resetToken != "" && a.resetToken == token && time.Now().Before(a.resetExp) {
			a.hash = newHash
			a.resetToken = ""
			return email, nil
		}
	}
	return "", xerrors.ErrInvalidOrExpiredToken
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return s.toUser(email, a), nil
}

func (s *fakeUserStore) CreateFederated(_ context.Context, id, email, provider, _ string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		a = &fakeAccount{id: id, role: domain.RoleStudent}
		s.accounts[email] = a
	}
	a.verified = true
	if a.provider == "" {
		a.provider = provider
	}
	return s.toUser(email, a), nil
}

func (s *fakeUserStore) GetRole(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.id == userID {
			return a.role, nil
		}
	}
	return "", xerrors.ErrUserNotFound
}

func (s *fakeUserStore) setRole(userID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.id == userID {
			a.role = role
		}
	}
}

func (s *fakeUserStore) toUser(email string, a *fakeAccount) *domain.User {
	u := &domain.User{
		ID:           a.id,
		Email:        email,
		PasswordHash: a.hash,
		Role:         a.role,
		IsVerified:   a.verified,
	}
	if a.provider != "" {
		p := a.provider
		u.Provider = &p
	}
	return u
}

// fakeMailer records every dispatch; fail makes Send report delivery failure.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", fmt.Errorf("%w: smtp refused", xerrors.ErrNotificationFailed)
	}
	m.sent = append(m.sent, msg)
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

func (m *fakeMailer) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeLimiter struct{ deny error }

func (l *fakeLimiter) CanRequest(context.Context, string, string) error { return l.deny }

type fakeIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *fakeIDGen) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeGoogle struct {
	user *oauth2svc.GoogleUser
	err  error
}

func (g *fakeGoogle) Verify(context.Context, string) (*oauth2svc.GoogleUser, error) {
	return g.user, g.err
}

// fakeSessionStore keeps sessions in memory.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session // by token
	fails    int                        // CreateSession failures before success
	creates  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*domain.Session{}}
}

func (s *fakeSessionStore) CreateSession(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.fails > 0 {
		s.fails--
		return fmt.Errorf("connection reset")
	}
	cp := *sess
	s.sessions[sess.AuthToken] = &cp
	return nil
}

func (s *fakeSessionStore) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || !time.Now().Before(sess.ExpiresAt) {
		return nil, xerrors.ErrSessionNotFound
	}
	return sess, nil
}

func (s *fakeSessionStore) GetSessionsByUserID(_ context.Context, userID string) ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) TouchSession(_ context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		sess.LastSeenAt = &at
	}
	return nil
}

func (s *fakeSessionStore) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *fakeSessionStore) DeleteAllByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

// fakeSigner mints predictable tokens carrying the role inline.
type fakeSigner struct {
	mu sync.Mutex
	n  int
}

func (f *fakeSigner) Generate(userID, _, role, _ string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	tok := fmt.Sprintf("tok-%s-%s-%d", userID, role, f.n)
	return tok, fmt.Sprintf("jti-%d", f.n), nil
}

// fakeCache is an in-memory TokenCache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Set(_ context.Context, ns, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[ns+":"+key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Get(_ context.Context, ns, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[ns+":"+key]
	if !ok {
		return "", fmt.Errorf("cache miss")
	}
	return v, nil
}

func (c *fakeCache) Delete(_ context.Context, ns, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, ns+":"+key)
	return nil
}
