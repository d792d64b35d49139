package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	oauth2svc "github.com/tanmay-mevada/DStrA-sub001/internal/service/oauth2"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// LoginStore is the slice of the user repository the login flow needs.
type LoginStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateFederated(ctx context.Context, id, email, provider, providerID string) (*domain.User, error)
}

type LoginUsecase struct {
	users  LoginStore
	google oauth2svc.GoogleVerifier
	ids    IDGen
}

func NewLoginUsecase(users LoginStore, google oauth2svc.GoogleVerifier, ids IDGen) *LoginUsecase {
	return &LoginUsecase{users: users, google: google, ids: ids}
}

// AuthenticatePassword checks an email/password pair. Unknown email, wrong
// password and password-less (federated-only) accounts all collapse into
// ErrInvalidCredentials so the response never confirms which part was wrong.
// Only a correct password against an unverified account is told apart, so the
// caller can point the user back to verification.
func (uc *LoginUsecase) AuthenticatePassword(ctx context.Context, email, password string) (*domain.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, xerrors.ErrPasswordRequired
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrUserNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		// Account created through Google sign-in; there is no hash to match.
		log.Printf("[LOGIN] password attempt on federated-only account email=%s", email)
		return nil, xerrors.ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, xerrors.ErrInvalidCredentials
	}

	// The password was right; verification state may be disclosed now.
	if !user.IsVerified {
		return nil, xerrors.ErrEmailNotVerified
	}

	return user, nil
}

// AuthenticateGoogle validates a Google ID token and returns the matching
// account, provisioning one on first sign-in. Federated accounts are
// implicitly verified: ownership of the inbox was proven by the provider.
func (uc *LoginUsecase) AuthenticateGoogle(ctx context.Context, idToken string) (*domain.User, error) {
	if idToken == "" {
		return nil, xerrors.ErrInvalidIDToken
	}

	gu, err := uc.google.Verify(ctx, idToken)
	if err != nil {
		log.Printf("[LOGIN] google id token rejected: %v", err)
		return nil, xerrors.ErrInvalidIDToken
	}
	if gu.Email == "" {
		return nil, xerrors.ErrInvalidIDToken
	}

	return uc.users.CreateFederated(ctx, uc.ids.Generate(), gu.Email, "google", gu.Sub)
}
