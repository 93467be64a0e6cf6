package ports

import (
	"context"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// ApplicationWithJob is an application joined with its referenced posting.
// Applications whose posting is missing are dropped by the join.
type ApplicationWithJob struct {
	Application domain.JobApplication
	Job         domain.JobPosting
}

// ApplicationRepository defines persistence for the application ledger. The
// store carries a unique index on (job_id, professional_id), so Create
// returns domain.ErrAlreadyApplied on a duplicate pair even when two requests
// race past FindByJobAndProfessional.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.JobApplication) error
	FindByJobAndProfessional(ctx context.Context, jobID, professionalID string) (*domain.JobApplication, error)
	// ListByProfessional returns the professional's applications joined with
	// their postings.
	ListByProfessional(ctx context.Context, professionalID string) ([]ApplicationWithJob, error)
	// ListByClient returns applications against any posting owned by the
	// client, joined with the postings.
	ListByClient(ctx context.Context, clientID string) ([]ApplicationWithJob, error)
}
