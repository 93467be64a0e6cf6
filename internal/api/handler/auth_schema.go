package handler

// --- Request / Response types ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=client professional"`
	Phone     string `json:"phone"`

	// Professional fields, ignored unless role is "professional".
	ProfessionType  string `json:"profession_type" validate:"omitempty,oneof=dental_hygienist dentist dental_assistant front_desk"`
	LicenseNumber   string `json:"license_number"`
	ExperienceYears *int   `json:"experience_years" validate:"omitempty,gte=0"`

	// Client fields, ignored unless role is "client".
	DentalOfficeName string   `json:"dental_office_name"`
	OfficeAddress    string   `json:"office_address"`
	OfficeCity       string   `json:"office_city"`
	OfficeState      string   `json:"office_state"`
	OfficeZip        string   `json:"office_zip"`
	OfficeLatitude   *float64 `json:"office_latitude"`
	OfficeLongitude  *float64 `json:"office_longitude"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse is returned by both register and login: registration doubles
// as login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserRole    string `json:"user_role"`
	UserID      string `json:"user_id"`
}
