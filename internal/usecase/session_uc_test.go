package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionUsecase, *fakeUserStore, *fakeSessionStore, *fakeCache) {
	t.Helper()
	users := newFakeUserStore()
	users.accounts["ada@example.com"] = &fakeAccount{id: "u1", role: domain.RoleStudent, verified: true}
	sessions := newFakeSessionStore()
	cache := newFakeCache()
	uc := NewSessionUsecase(users, sessions, &fakeSigner{}, cache, &fakeIDGen{}, time.Hour)
	return uc, users, sessions, cache
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestIssueReadsRoleFresh(t *testing.T) {
	uc, users, _, _ := newSessionFixture(t)
	ctx := context.Background()
	user := &domain.User{ID: "u1", Email: "ada@example.com", Role: domain.RoleStudent}

	_, role, err := uc.Issue(ctx, user, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, role)

	// Promote, then log in again: the new token must carry admin even though
	// the passed-in user struct still says student.
	users.setRole("u1", domain.RoleAdmin)
	session, role, err := uc.Issue(ctx, user, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
	assert.True(t, strings.Contains(session.AuthToken, domain.RoleAdmin))
}

func TestIssueCachesTokenAndPersists(t *testing.T) {
	uc, _, sessions, cache := newSessionFixture(t)
	user := &domain.User{ID: "u1", Email: "ada@example.com"}

	session, _, err := uc.Issue(context.Background(), user, "dev-1", "10.0.0.1", "go-test")
	require.NoError(t, err)

	// The token is accepted immediately from the cache alone.
	require.NoError(t, uc.Exists(context.Background(), session.AuthToken))
	_, err = cache.Get(context.Background(), sessionTokenNS, session.AuthToken)
	require.NoError(t, err)

	// The row lands asynchronously.
	waitFor(t, func() bool {
		got, err := sessions.GetByToken(context.Background(), session.AuthToken)
		return err == nil && got.UserID == "u1"
	})
}

func TestPersistRetriesTransientFailure(t *testing.T) {
	uc, _, sessions, _ := newSessionFixture(t)
	sessions.fails = 2

	session, _, err := uc.Issue(context.Background(), &domain.User{ID: "u1", Email: "ada@example.com"}, "", "", "")
	require.NoError(t, err)

	waitFor(t, func() bool {
		_, err := sessions.GetByToken(context.Background(), session.AuthToken)
		return err == nil
	})
	assert.Equal(t, 3, sessions.creates)
}

func TestExistsFallsBackToStoreAndRefills(t *testing.T) {
	uc, _, sessions, cache := newSessionFixture(t)
	now := time.Now()
	sessions.sessions["tok-x"] = &domain.Session{
		ID: "s1", UserID: "u1", AuthToken: "tok-x",
		IsActive: true, CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}

	// Cache is cold (as after a redis restart); postgres answers and refills.
	require.NoError(t, uc.Exists(context.Background(), "tok-x"))
	_, err := cache.Get(context.Background(), sessionTokenNS, "tok-x")
	assert.NoError(t, err)
}

func TestExistsRejectsUnknownToken(t *testing.T) {
	uc, _, _, _ := newSessionFixture(t)
	err := uc.Exists(context.Background(), "tok-forged")
	assert.ErrorIs(t, err, xerrors.ErrSessionNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	uc, _, sessions, _ := newSessionFixture(t)
	user := &domain.User{ID: "u1", Email: "ada@example.com"}

	session, _, err := uc.Issue(context.Background(), user, "", "", "")
	require.NoError(t, err)
	waitFor(t, func() bool {
		_, err := sessions.GetByToken(context.Background(), session.AuthToken)
		return err == nil
	})

	require.NoError(t, uc.Logout(context.Background(), session.AuthToken))
	assert.ErrorIs(t, uc.Exists(context.Background(), session.AuthToken), xerrors.ErrSessionNotFound)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	uc, _, sessions, _ := newSessionFixture(t)
	user := &domain.User{ID: "u1", Email: "ada@example.com"}
	ctx := context.Background()

	s1, _, err := uc.Issue(ctx, user, "laptop", "", "")
	require.NoError(t, err)
	s2, _, err := uc.Issue(ctx, user, "phone", "", "")
	require.NoError(t, err)

	waitFor(t, func() bool {
		list, _ := sessions.GetSessionsByUserID(ctx, "u1")
		return len(list) == 2
	})

	require.NoError(t, uc.LogoutAll(ctx, "u1"))
	assert.ErrorIs(t, uc.Exists(ctx, s1.AuthToken), xerrors.ErrSessionNotFound)
	assert.ErrorIs(t, uc.Exists(ctx, s2.AuthToken), xerrors.ErrSessionNotFound)
}
