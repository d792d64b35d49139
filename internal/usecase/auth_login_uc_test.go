package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	oauth2svc "github.com/tanmay-mevada/DStrA-sub001/internal/service/oauth2"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginFixture(t *testing.T) (*LoginUsecase, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()

	hash, err := HashPassword("correct-horse1")
	require.NoError(t, err)
	store.accounts["ada@example.com"] = &fakeAccount{id: "u1", hash: hash, role: domain.RoleStudent, verified: true}
	store.accounts["new@example.com"] = &fakeAccount{id: "u2", hash: hash, role: domain.RoleStudent, verified: false}
	store.accounts["fed@example.com"] = &fakeAccount{id: "u3", role: domain.RoleStudent, verified: true, provider: "google"}

	uc := NewLoginUsecase(store, &fakeGoogle{}, &fakeIDGen{})
	return uc, store
}

func TestPasswordLoginSuccess(t *testing.T) {
	uc, _ := newLoginFixture(t)

	user, err := uc.AuthenticatePassword(context.Background(), "ada@example.com", "correct-horse1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.RoleStudent, user.Role)
}

func TestUnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	uc, _ := newLoginFixture(t)
	ctx := context.Background()

	_, unknownErr := uc.AuthenticatePassword(ctx, "ghost@example.com", "whatever123")
	_, wrongErr := uc.AuthenticatePassword(ctx, "ada@example.com", "not-the-pass1")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	// The same error value, not merely the same status: nothing to time or
	// string-match against.
	assert.Equal(t, unknownErr, wrongErr)
	assert.ErrorIs(t, unknownErr, xerrors.ErrInvalidCredentials)
}

func TestFederatedOnlyAccountCannotPasswordLogin(t *testing.T) {
	uc, _ := newLoginFixture(t)

	_, err := uc.AuthenticatePassword(context.Background(), "fed@example.com", "anything-at-all")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestUnverifiedWithCorrectPassword(t *testing.T) {
	uc, _ := newLoginFixture(t)
	ctx := context.Background()

	// Correct password first: the caller earned the verification hint.
	_, err := uc.AuthenticatePassword(ctx, "new@example.com", "correct-horse1")
	assert.ErrorIs(t, err, xerrors.ErrEmailNotVerified)

	// Wrong password on the same unverified account stays generic.
	_, err = uc.AuthenticatePassword(ctx, "new@example.com", "bad-guess-111")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestGoogleLoginProvisionsAccount(t *testing.T) {
	store := newFakeUserStore()
	google := &fakeGoogle{user: &oauth2svc.GoogleUser{Email: "g@example.com", Sub: "sub-1"}}
	uc := NewLoginUsecase(store, google, &fakeIDGen{})

	user, err := uc.AuthenticateGoogle(context.Background(), "a-valid-id-token")
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", user.Email)
	assert.True(t, user.IsVerified)
	assert.Equal(t, domain.RoleStudent, user.Role)
	require.NotNil(t, user.Provider)
	assert.Equal(t, "google", *user.Provider)
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	store := newFakeUserStore()
	google := &fakeGoogle{err: errors.New("token expired")}
	uc := NewLoginUsecase(store, google, &fakeIDGen{})

	_, err := uc.AuthenticateGoogle(context.Background(), "stale-token")
	assert.ErrorIs(t, err, xerrors.ErrInvalidIDToken)

	_, err = uc.AuthenticateGoogle(context.Background(), "")
	assert.ErrorIs(t, err, xerrors.ErrInvalidIDToken)
}

func TestGoogleLoginLinksExistingAccount(t *testing.T) {
	uc, store := newLoginFixture(t)
	google := &fakeGoogle{user: &oauth2svc.GoogleUser{Email: "new@example.com", Sub: "sub-2"}}
	uc.google = google

	// Google sign-in on an existing unverified password account verifies it:
	// the provider proved inbox ownership.
	user, err := uc.AuthenticateGoogle(context.Background(), "a-valid-id-token")
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.True(t, user.IsVerified)
	assert.True(t, store.accounts["new@example.com"].verified)
}
