package ports

import (
	"context"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// RegisterInput carries all registration fields. Role-conditional fields are
// only persisted when they match the requested role.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Phone     string

	// Professional fields.
	ProfessionType  string
	LicenseNumber   string
	ExperienceYears *int

	// Client fields.
	DentalOfficeName string
	OfficeAddress    string
	OfficeCity       string
	OfficeState      string
	OfficeZip        string
	OfficeLatitude   *float64
	OfficeLongitude  *float64
}

// AuthResult is returned on successful registration or login. Registration
// doubles as login: both hand back a fresh session token.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration and credential-based login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
