package domain

import (
	"errors"
	"time"
)

// Role is the closed category determining which operations a user may perform.
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProfessional:
		return true
	}
	return false
}

var ErrInvalidRole = errors.New("invalid role")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models an authenticated actor: a dental office (client) posting shifts
// or a professional applying to them. Role-conditional fields are populated
// only for the matching role and stay zero-valued otherwise.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         Role   `json:"role"`
	Phone        string `json:"phone,omitempty"`

	// Professional fields.
	ProfessionType  JobType `json:"profession_type,omitempty"`
	LicenseNumber   string  `json:"license_number,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`

	// Client fields.
	DentalOfficeName string   `json:"dental_office_name,omitempty"`
	OfficeAddress    string   `json:"office_address,omitempty"`
	OfficeCity       string   `json:"office_city,omitempty"`
	OfficeState      string   `json:"office_state,omitempty"`
	OfficeZip        string   `json:"office_zip,omitempty"`
	OfficeLatitude   *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude  *float64 `json:"office_longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ProfessionalView is the redacted projection of a professional shown to
// clients reviewing applications. It deliberately omits license_number and
// all credential data.
type ProfessionalView struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone,omitempty"`
	ProfessionType  JobType `json:"profession_type,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
}

// Redact returns the client-facing view of a professional.
func (u *User) Redact() ProfessionalView {
	return ProfessionalView{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Phone:           u.Phone,
		ProfessionType:  u.ProfessionType,
		ExperienceYears: u.ExperienceYears,
	}
}
