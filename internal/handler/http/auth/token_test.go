package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authservice "ponder/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTestSecret = "test-secret-key-with-at-least-32-characters"

// mockAuthProvider is a configurable AuthProvider for handler tests.
type mockAuthProvider struct {
	validateFunc     func(ctx context.Context, creds authservice.Credentials) error
	requirementsFunc func() authservice.CredentialRequirements
	identifyUserFunc func(ctx context.Context, email string) (string, error)
	name             string
}

func (m *mockAuthProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, creds)
	}
	return nil
}

func (m *mockAuthProvider) GetRequirements() authservice.CredentialRequirements {
	if m.requirementsFunc != nil {
		return m.requirementsFunc()
	}
	return authservice.CredentialRequirements{}
}

func (m *mockAuthProvider) IdentifyUser(ctx context.Context, email string) (string, error) {
	if m.identifyUserFunc != nil {
		return m.identifyUserFunc(ctx, email)
	}
	return "admin", nil
}

func (m *mockAuthProvider) Name() string {
	return m.name
}

// singleUserProvider builds a mock that accepts exactly one email/password
// pair and maps that email to the given role.
func singleUserProvider(email, password, role string) *mockAuthProvider {
	return &mockAuthProvider{
		validateFunc: func(ctx context.Context, creds authservice.Credentials) error {
			if creds.Username == email && creds.Password == password {
				return nil
			}
			return fmt.Errorf("invalid credentials")
		},
		identifyUserFunc: func(ctx context.Context, e string) (string, error) {
			if e == email {
				return role, nil
			}
			return "", fmt.Errorf("user not found")
		},
		name: "mock",
	}
}

func issueToken(t *testing.T, provider *mockAuthProvider, body string) *httptest.ResponseRecorder {
	t.Helper()

	authSvc := authservice.NewAuthService(provider, []string{"/health"})
	handler := TokenHandler(authSvc)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func parseClaims(t *testing.T, rr *httptest.ResponseRecorder) jwt.MapClaims {
	t.Helper()

	var resp tokenResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("token is empty")
	}

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(tokenTestSecret), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims type assertion failed")
	}
	return claims
}

func TestTokenHandler_AdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", tokenTestSecret)

	provider := singleUserProvider(curatorEmail, curatorPass, "admin")

	rr := issueToken(t, provider, fmt.Sprintf(`{"email":%q,"password":%q}`, curatorEmail, curatorPass))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	claims := parseClaims(t, rr)
	if claims["sub"] != curatorEmail {
		t.Errorf("sub claim = %v, want %s", claims["sub"], curatorEmail)
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}
}

func TestTokenHandler_ViewerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", tokenTestSecret)

	provider := singleUserProvider(readerEmail, readerPass, "viewer")

	rr := issueToken(t, provider, fmt.Sprintf(`{"email":%q,"password":%q}`, readerEmail, readerPass))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	claims := parseClaims(t, rr)
	if claims["sub"] != readerEmail {
		t.Errorf("sub claim = %v, want %s", claims["sub"], readerEmail)
	}
	if claims["role"] != "viewer" {
		t.Errorf("role claim = %v, want viewer", claims["role"])
	}
}

func TestTokenHandler_RejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", tokenTestSecret)

	provider := singleUserProvider(curatorEmail, curatorPass, "admin")

	tests := []struct {
		name string
		body string
	}{
		{"wrong email", fmt.Sprintf(`{"email":"stranger@ponder.example.org","password":%q}`, curatorPass)},
		{"wrong password", fmt.Sprintf(`{"email":%q,"password":"wrongpassword"}`, curatorEmail)},
		{"empty credentials", `{"email":"","password":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := issueToken(t, provider, tt.body)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestTokenHandler_InvalidJSON(t *testing.T) {
	t.Setenv("JWT_SECRET", tokenTestSecret)

	provider := &mockAuthProvider{name: "mock"}

	rr := issueToken(t, provider, `{"email":"curator","password":}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestTokenHandler_ProviderError(t *testing.T) {
	t.Setenv("JWT_SECRET", tokenTestSecret)

	provider := &mockAuthProvider{
		validateFunc: func(ctx context.Context, creds authservice.Credentials) error {
			return fmt.Errorf("validation error")
		},
		name: "mock",
	}

	rr := issueToken(t, provider, fmt.Sprintf(`{"email":%q,"password":%q}`, curatorEmail, curatorPass))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

// Valid credentials whose role cannot be resolved must not get a token.
func TestTokenHandler_IdentifyUserError(t *testing.T) {
	t.Setenv("JWT_SECRET", tokenTestSecret)

	provider := &mockAuthProvider{
		identifyUserFunc: func(ctx context.Context, email string) (string, error) {
			return "", fmt.Errorf("role identification failed")
		},
		name: "mock",
	}

	rr := issueToken(t, provider, fmt.Sprintf(`{"email":%q,"password":%q}`, curatorEmail, curatorPass))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
