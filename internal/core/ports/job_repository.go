package ports

import (
	"context"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// JobFilter carries the optional query parameters for the public listing.
// Filters compose with logical AND; the repository always restricts the
// listing to active postings.
type JobFilter struct {
	JobType string // exact match
	City    string // case-insensitive substring
	State   string // case-insensitive substring
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	FindByID(ctx context.Context, id string) (*domain.JobPosting, error)
	// List returns active postings matching filter.
	List(ctx context.Context, filter JobFilter) ([]*domain.JobPosting, error)
	// ListByClient returns every posting owned by the client, any status.
	ListByClient(ctx context.Context, clientID string) ([]*domain.JobPosting, error)
	// IncrementApplications atomically adds 1 to the posting's counter. It
	// must be a single store-side increment, never read-modify-write.
	IncrementApplications(ctx context.Context, jobID string) error
}
