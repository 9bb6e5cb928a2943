package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

// VerifyToken checks the ID token and returns the authenticated uid plus the
// profile claims the marketplace cares about.
func (f *AuthClient) VerifyToken(ctx context.Context, token string) (string, map[string]interface{}, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", nil, err
	}

	return result.UID, result.Claims, nil
}

// GenerateToken mints a custom token for the uid; development use only.
func (f *AuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	token, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	return token, nil
}
