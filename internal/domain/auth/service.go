package auth

import "context"

// AuthService defines authentication operations.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	LoginWithGoogle(ctx context.Context, googleID, email string) (TokenResponse, error)
}
