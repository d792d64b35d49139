package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisterFixture(t *testing.T) (*RegisterUsecase, *fakeUserStore, *fakeMailer) {
	t.Helper()
	store := newFakeUserStore()
	mail := &fakeMailer{}
	uc := NewRegisterUsecase(store, &fakeLimiter{}, mail, &fakeIDGen{}, 10*time.Minute, time.Second)
	return uc, store, mail
}

func TestIssueThenVerifySucceedsOnce(t *testing.T) {
	uc, store, mail := newRegisterFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.IssueSignupOTP(ctx, "ada@example.com", "hunter2hunter2"))
	require.Equal(t, 1, mail.count())

	code := store.accounts["ada@example.com"].otpCode
	require.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	assert.Contains(t, mail.last().HTMLBody, code)

	require.NoError(t, uc.VerifySignupOTP(ctx, "ada@example.com", code))
	assert.True(t, store.accounts["ada@example.com"].verified)

	// The code is consumed; a second verify reports the terminal state.
	err := uc.VerifySignupOTP(ctx, "ada@example.com", code)
	assert.ErrorIs(t, err, xerrors.ErrAlreadyVerified)
}

func TestVerifyWrongAndExpiredAreIndistinguishable(t *testing.T) {
	uc, store, _ := newRegisterFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.IssueSignupOTP(ctx, "ada@example.com", "hunter2hunter2"))

	wrongErr := uc.VerifySignupOTP(ctx, "ada@example.com", "000000")
	assert.ErrorIs(t, wrongErr, xerrors.ErrInvalidOrExpiredOTP)

	store.accounts["ada@example.com"].otpExpires = time.Now().Add(-time.Minute)
	code := store.accounts["ada@example.com"].otpCode
	expiredErr := uc.VerifySignupOTP(ctx, "ada@example.com", code)
	assert.ErrorIs(t, expiredErr, xerrors.ErrInvalidOrExpiredOTP)

	assert.Equal(t, wrongErr, expiredErr)
	assert.False(t, store.accounts["ada@example.com"].verified)
}

func TestVerifyUnknownEmail(t *testing.T) {
	uc, _, _ := newRegisterFixture(t)
	err := uc.VerifySignupOTP(context.Background(), "ghost@example.com", "123456")
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)
}

func TestVerifyMalformedCode(t *testing.T) {
	uc, _, _ := newRegisterFixture(t)
	err := uc.VerifySignupOTP(context.Background(), "ada@example.com", "12345")
	assert.ErrorIs(t, err, xerrors.ErrInvalidOrExpiredOTP)
}

func TestReissueRotatesCode(t *testing.T) {
	uc, store, mail := newRegisterFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.IssueSignupOTP(ctx, "ada@example.com", "hunter2hunter2"))
	first := store.accounts["ada@example.com"].otpCode

	require.NoError(t, uc.IssueSignupOTP(ctx, "ada@example.com", "differentpass1"))
	second := store.accounts["ada@example.com"].otpCode
	require.Equal(t, 2, mail.count())

	// The earlier code is dead once a new one is issued.
	if first != second {
		err := uc.VerifySignupOTP(ctx, "ada@example.com", first)
		assert.ErrorIs(t, err, xerrors.ErrInvalidOrExpiredOTP)
	}
	require.NoError(t, uc.VerifySignupOTP(ctx, "ada@example.com", second))
}

func TestIssueForVerifiedAccountConflicts(t *testing.T) {
	uc, store, mail := newRegisterFixture(t)
	ctx := context.Background()

	require.NoError(t, uc.IssueSignupOTP(ctx, "ada@example.com", "hunter2hunter2"))
	require.NoError(t, uc.VerifySignupOTP(ctx, "ada@example.com", store.accounts["ada@example.com"].otpCode))

	err := uc.IssueSignupOTP(ctx, "ada@example.com", "anotherpass99")
	assert.ErrorIs(t, err, xerrors.ErrUserAlreadyExists)
	assert.Equal(t, 1, mail.count())
}

func TestIssueSurfacesMailFailure(t *testing.T) {
	store := newFakeUserStore()
	mail := &fakeMailer{fail: true}
	uc := NewRegisterUsecase(store, &fakeLimiter{}, mail, &fakeIDGen{}, 10*time.Minute, time.Second)

	err := uc.IssueSignupOTP(context.Background(), "ada@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, xerrors.ErrNotificationFailed)
}

func TestIssueHonorsRateLimit(t *testing.T) {
	store := newFakeUserStore()
	mail := &fakeMailer{}
	uc := NewRegisterUsecase(store, &fakeLimiter{deny: xerrors.ErrTooManyOTPRequests}, mail, &fakeIDGen{}, 10*time.Minute, time.Second)

	err := uc.IssueSignupOTP(context.Background(), "ada@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, xerrors.ErrTooManyOTPRequests)
	assert.Zero(t, mail.count())
	assert.Empty(t, store.accounts)
}

func TestIssueValidation(t *testing.T) {
	uc, _, mail := newRegisterFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.IssueSignupOTP(ctx, "", "hunter2hunter2"), xerrors.ErrEmailRequired)
	assert.ErrorIs(t, uc.IssueSignupOTP(ctx, "not-an-email", "hunter2hunter2"), xerrors.ErrInvalidEmailFormat)
	assert.ErrorIs(t, uc.IssueSignupOTP(ctx, "ada@example.com", "short"), xerrors.ErrPasswordTooShort)
	assert.Zero(t, mail.count())
}
