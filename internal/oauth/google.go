// Package oauth verifies Google ID tokens for sign-in.
package oauth

import (
	"context"

	"goodquestions/internal/models"

	"google.golang.org/api/idtoken"
)

// Identity is the verified subset of a Google ID token payload the
// application consumes.
type Identity struct {
	GoogleID    string
	Email       string
	DisplayName string
}

// Verifier validates a Google ID token and extracts the caller identity.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a Verifier that validates tokens against
// Google's public keys for the given OAuth client ID.
func NewGoogleVerifier(clientID string) Verifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, &models.AppError{Code: models.CodeInvalidToken, Message: "Invalid Google ID token", Err: err}
	}

	identity := &Identity{GoogleID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity, nil
}
