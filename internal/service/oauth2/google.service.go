package oauth2svc

import (
	"context"

	"google.golang.org/api/idtoken"
)

type GoogleUser struct {
	Email     string
	FirstName string
	LastName  string
	Sub       string // Google unique user ID
}

// GoogleVerifier checks ID tokens minted for our client id. Kept as an
// interface so login tests can substitute a fake assertion.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleUser, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)
	sub, _ := payload.Claims["sub"].(string)

	return &GoogleUser{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Sub:       sub,
	}, nil
}
