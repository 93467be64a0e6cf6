package domain

import (
	"errors"
	"time"
)

// JobType enumerates the professions a posting can target.
type JobType string

const (
	JobTypeDentalHygienist JobType = "dental_hygienist"
	JobTypeDentist         JobType = "dentist"
	JobTypeDentalAssistant JobType = "dental_assistant"
	JobTypeFrontDesk       JobType = "front_desk"
)

// Valid reports whether the job type is one of the known variants.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeDentalHygienist, JobTypeDentist, JobTypeDentalAssistant, JobTypeFrontDesk:
		return true
	}
	return false
}

// JobStatus represents the lifecycle state of a posting. Only "active"
// postings are visible in the public listing. No endpoint transitions the
// status yet; the enum exists so the listing filter is forward-compatible.
type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusFilled    JobStatus = "filled"
	JobStatusCancelled JobStatus = "cancelled"
)

// RecurrencePattern describes how a recurring posting repeats. The pattern is
// stored but never expanded into concrete occurrences.
type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

var ErrJobNotFound = errors.New("job not found")
var ErrAlreadyApplied = errors.New("already applied to this job")

// Location is the physical place a shift happens.
type Location struct {
	Address   string  `json:"address" bson:"address"`
	City      string  `json:"city" bson:"city"`
	State     string  `json:"state" bson:"state"`
	Zip       string  `json:"zip" bson:"zip"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// JobPosting is a client-authored shift listing. ApplicationsCount is
// maintained incrementally by the application ledger and always equals the
// number of applications referencing the posting.
type JobPosting struct {
	ID          string    `json:"id" bson:"id"`
	ClientID    string    `json:"client_id" bson:"client_id"`
	Title       string    `json:"title" bson:"title"`
	JobType     JobType   `json:"job_type" bson:"job_type"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	HourlyRate  float64   `json:"hourly_rate" bson:"hourly_rate"`
	Location    Location  `json:"location" bson:"location"`
	JobDate     time.Time `json:"job_date" bson:"job_date"`
	StartTime   string    `json:"start_time" bson:"start_time"`
	EndTime     string    `json:"end_time" bson:"end_time"`

	// Recurrence metadata, stored but never expanded.
	IsRecurring      bool              `json:"is_recurring" bson:"is_recurring"`
	RecurringPattern RecurrencePattern `json:"recurring_pattern,omitempty" bson:"recurring_pattern,omitempty"`
	RecurringDays    []string          `json:"recurring_days,omitempty" bson:"recurring_days,omitempty"`
	RecurringEndDate *time.Time        `json:"recurring_end_date,omitempty" bson:"recurring_end_date,omitempty"`

	Status            JobStatus `json:"status" bson:"status"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	ApplicationsCount int       `json:"applications_count" bson:"applications_count"`
}
