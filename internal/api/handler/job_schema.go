package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type locationRequest struct {
	Address   string  `json:"address"   validate:"required"`
	City      string  `json:"city"      validate:"required"`
	State     string  `json:"state"     validate:"required"`
	Zip       string  `json:"zip"       validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createJobRequest struct {
	Title       string          `json:"title"       validate:"required"`
	JobType     string          `json:"job_type"    validate:"required,oneof=dental_hygienist dentist dental_assistant front_desk"`
	Description string          `json:"description"`
	HourlyRate  float64         `json:"hourly_rate" validate:"gte=0"`
	Location    locationRequest `json:"location"    validate:"required"`
	JobDate     time.Time       `json:"job_date"    validate:"required"`
	StartTime   string          `json:"start_time"  validate:"required"`
	EndTime     string          `json:"end_time"    validate:"required"`

	// Recurrence metadata; stored, never expanded into occurrences.
	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern string     `json:"recurring_pattern" validate:"omitempty,oneof=daily weekly monthly"`
	RecurringDays    []string   `json:"recurring_days"`
	RecurringEndDate *time.Time `json:"recurring_end_date"`
}
