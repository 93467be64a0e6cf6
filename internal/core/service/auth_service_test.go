package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

type stubLimiter struct {
	blocked  bool
	failures map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int)}
}

func (l *stubLimiter) TooManyFailures(_ context.Context, _ string) (bool, error) {
	return l.blocked, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.resets++
	delete(l.failures, email)
	return nil
}

func registerInput(email, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     email,
		Password:  "s3cret-pass",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Role:      role,
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", 0, zerolog.Nop())

	result, err := svc.Register(context.Background(), registerInput("alice@example.com", "professional"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if result.User.Role != domain.RoleProfessional {
		t.Fatalf("unexpected role: %s", result.User.Role)
	}
	if result.User.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != result.User.ID {
		t.Fatalf("token subject %v does not resolve to created user %s", claims["sub"], result.User.ID)
	}
}

func TestAuthService_Register_DefaultTokenTTL(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", 0, zerolog.Nop())

	result, err := svc.Register(context.Background(), registerInput("ttl@example.com", "client"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 29*time.Minute || ttl > 31*time.Minute {
		t.Fatalf("expected ~30m default ttl, got %v", ttl)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", "client")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Second attempt conflicts even with a different role.
	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", "professional")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("eve@example.com", "admin")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_RoleConditionalFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())

	years := 7
	input := registerInput("office@example.com", "client")
	input.DentalOfficeName = "Bright Smiles"
	input.OfficeCity = "San Francisco"
	// Professional fields on a client registration must be dropped.
	input.ProfessionType = "dentist"
	input.LicenseNumber = "LIC-1"
	input.ExperienceYears = &years

	result, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.DentalOfficeName != "Bright Smiles" || result.User.OfficeCity != "San Francisco" {
		t.Fatalf("client fields not persisted: %+v", result.User)
	}
	if result.User.ProfessionType != "" || result.User.LicenseNumber != "" || result.User.ExperienceYears != nil {
		t.Fatalf("professional fields leaked onto client record: %+v", result.User)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := NewAuthService(repo, limiter, "secret", time.Hour, zerolog.Nop())

	reg, err := svc.Register(context.Background(), registerInput("carol@example.com", "professional"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "carol@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.ID != reg.User.ID {
		t.Fatalf("expected user %s, got %s", reg.User.ID, result.User.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != reg.User.ID {
		t.Fatalf("token subject mismatch: %v", claims["sub"])
	}
	if limiter.resets == 0 {
		t.Fatalf("expected limiter reset on success")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc := NewAuthService(repo, limiter, "secret", time.Hour, zerolog.Nop())

	_, _ = svc.Register(context.Background(), registerInput("dave@example.com", "client"))
	if _, err := svc.Login(context.Background(), "dave@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures["dave@example.com"] != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", limiter.failures["dave@example.com"])
	}
}

func TestAuthService_Login_UnknownEmailCollapses(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())

	// Unknown email and wrong password produce the same error, so the
	// response never reveals whether the account exists.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	limiter.blocked = true
	svc := NewAuthService(repo, limiter, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "carol@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
