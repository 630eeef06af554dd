package auth

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ProviderVerifier delegates verification to the hosted identity
// provider: the token is resolved to a live user record. Any rejection
// (expired, revoked, unknown) is reported as ErrInvalidToken.
type ProviderVerifier struct {
	client *resty.Client
	apiKey string
}

func NewProviderVerifier(baseURL, apiKey string) *ProviderVerifier {
	return &ProviderVerifier{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

type providerUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (v *ProviderVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	var u providerUser
	resp, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("apikey", v.apiKey).
		SetResult(&u).
		Get("/auth/v1/user")
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	if resp.StatusCode() != http.StatusOK || u.ID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: u.ID, Email: u.Email}, nil
}
