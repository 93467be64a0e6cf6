package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// newJSONContext builds an echo.Context with the validator wired, the way the
// router configures the real instance.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
}

type stubAuthService struct {
	registerResult *ports.AuthResult
	registerErr    error
	loginResult    *ports.AuthResult
	loginErr       error

	lastRegister ports.RegisterInput
	lastEmail    string
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	s.lastRegister = input
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.AuthResult, error) {
	s.lastEmail = email
	return s.loginResult, s.loginErr
}

const registerBody = `{
	"email": "alice@example.com",
	"password": "s3cret-pass",
	"first_name": "Alice",
	"last_name": "Nguyen",
	"role": "professional",
	"profession_type": "dental_hygienist",
	"license_number": "RDH-12345"
}`

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registerResult: &ports.AuthResult{
		Token: "signed-token",
		User:  &domain.User{ID: "user-1", Role: domain.RoleProfessional},
	}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/register", registerBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp tokenResponse
	decodeJSON(t, rec, &resp)
	if resp.AccessToken != "signed-token" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	if resp.UserRole != "professional" || resp.UserID != "user-1" {
		t.Fatalf("unexpected user fields: %+v", resp)
	}
	if svc.lastRegister.LicenseNumber != "RDH-12345" {
		t.Fatalf("professional fields not forwarded: %+v", svc.lastRegister)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrEmailTaken})

	c, rec := newJSONContext(http.MethodPost, "/auth/register", registerBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	// Role outside the closed enum fails validation before the service runs.
	body := strings.Replace(registerBody, `"professional"`, `"admin"`, 1)
	c, rec := newJSONContext(http.MethodPost, "/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Register_MissingEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodPost, "/auth/register", `{"password":"x","first_name":"A","last_name":"B","role":"client"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.AuthResult{
		Token: "signed-token",
		User:  &domain.User{ID: "user-1", Role: domain.RoleClient},
	}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"s3cret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastEmail != "alice@example.com" {
		t.Fatalf("email not forwarded: %q", svc.lastEmail)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer header")
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrTooManyAttempts})

	c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"s3cret-pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodGet, "/auth/me", "")
	c.Set("user", &domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         domain.RoleProfessional,
	})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$10$") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_NoUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodGet, "/auth/me", "")
	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
