package auth

import (
	"context"
	"strings"
)

// Credentials is a username/password pair presented to the token
// endpoint.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements is the password policy a provider enforces.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider validates credentials. The basic provider checks against
// the configured policy; the interface keeps the service independent of
// any one mechanism.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	GetRequirements() CredentialRequirements
	IdentifyUser(ctx context.Context, email string) (string, error)
	Name() string
}

// AuthService decides who may obtain a token and which paths skip
// authentication entirely.
type AuthService struct {
	provider        AuthProvider
	publicEndpoints []string
}

func NewAuthService(provider AuthProvider, publicEndpoints []string) *AuthService {
	return &AuthService{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// ValidateCredentials delegates to the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IsPublicEndpoint reports whether path matches a configured public
// prefix, such as /health or /questions.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// GetProvider returns the active provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
