package ports

import (
	"context"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
)

// ApplyInput carries the parameters of an application submission.
// ProfessionalID is the authenticated professional's identifier.
type ApplyInput struct {
	JobID          string
	ProfessionalID string
	Message        string
}

// ReceivedApplication is the client-facing view: application + posting +
// the professional's redacted profile.
type ReceivedApplication struct {
	Application  domain.JobApplication
	Job          domain.JobPosting
	Professional domain.ProfessionalView
}

// ApplicationService defines use-case operations for the application ledger.
type ApplicationService interface {
	Apply(ctx context.Context, input ApplyInput) (*domain.JobApplication, error)
	ListForProfessional(ctx context.Context, professionalID string) ([]ApplicationWithJob, error)
	ListForClient(ctx context.Context, clientID string) ([]ReceivedApplication, error)
}
