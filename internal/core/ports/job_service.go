package ports

import (
	"context"
	"time"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// CreateJobInput carries all data needed to create a posting. ClientID is the
// authenticated client's identifier, injected by the transport layer.
type CreateJobInput struct {
	ClientID    string
	Title       string
	JobType     string
	Description string
	HourlyRate  float64
	Location    LocationInput
	JobDate     time.Time
	StartTime   string
	EndTime     string

	IsRecurring      bool
	RecurringPattern string
	RecurringDays    []string
	RecurringEndDate *time.Time
}

// LocationInput holds a physical shift location.
type LocationInput struct {
	Address   string
	City      string
	State     string
	Zip       string
	Latitude  float64
	Longitude float64
}

// JobService defines use-case operations for the job catalog.
type JobService interface {
	Create(ctx context.Context, input CreateJobInput) (*domain.JobPosting, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.JobPosting, error)
	ListOwned(ctx context.Context, clientID string) ([]*domain.JobPosting, error)
}
