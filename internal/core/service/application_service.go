package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// ApplicationService implements the application ledger use-cases.
type ApplicationService struct {
	apps  ports.ApplicationRepository
	jobs  ports.JobRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users, log: log}
}

// Apply records a professional's application to a posting.
func (s *ApplicationService) Apply(ctx context.Context, input ports.ApplyInput) (*domain.JobApplication, error) {
	// 1. The posting must exist. Its status is not checked: applying to a
	// filled or cancelled posting succeeds as long as the record is there.
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	// 2. At most one application per (job, professional). The unique index
	// on the ledger backstops this pre-check under concurrent requests.
	if _, err := s.apps.FindByJobAndProfessional(ctx, input.JobID, input.ProfessionalID); err == nil {
		return nil, domain.ErrAlreadyApplied
	} else if !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, fmt.Errorf("apply: %w", err)
	}

	app := &domain.JobApplication{
		ID:             uuid.NewString(),
		JobID:          input.JobID,
		ProfessionalID: input.ProfessionalID,
		ClientID:       job.ClientID,
		Message:        input.Message,
		Status:         domain.ApplicationPending,
		AppliedAt:      time.Now().UTC(),
	}

	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	// 3. Keep the denormalized counter in step with the ledger. This is a
	// single store-side increment, never read-modify-write.
	if err := s.jobs.IncrementApplications(ctx, input.JobID); err != nil {
		s.log.Error().Err(err).Str("job_id", input.JobID).Msg("failed to increment applications count")
		return nil, fmt.Errorf("apply: update counter: %w", err)
	}

	s.log.Info().
		Str("application_id", app.ID).
		Str("job_id", app.JobID).
		Str("professional_id", app.ProfessionalID).
		Msg("application submitted")

	return app, nil
}

// ListForProfessional returns the professional's applications, each joined
// with its posting.
func (s *ApplicationService) ListForProfessional(ctx context.Context, professionalID string) ([]ports.ApplicationWithJob, error) {
	return s.apps.ListByProfessional(ctx, professionalID)
}

// ListForClient returns every application against the client's postings,
// enriched with the posting and the professional's redacted profile.
func (s *ApplicationService) ListForClient(ctx context.Context, clientID string) ([]ports.ReceivedApplication, error) {
	rows, err := s.apps.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Application.ProfessionalID)
	}
	professionals, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list received: resolve professionals: %w", err)
	}

	out := make([]ports.ReceivedApplication, 0, len(rows))
	for _, row := range rows {
		prof, ok := professionals[row.Application.ProfessionalID]
		if !ok {
			// A dangling professional reference drops out of the view, the
			// same way the join drops applications with a missing posting.
			s.log.Debug().Str("professional_id", row.Application.ProfessionalID).Msg("professional missing, skipping application")
			continue
		}
		out = append(out, ports.ReceivedApplication{
			Application:  row.Application,
			Job:          row.Job,
			Professional: prof.Redact(),
		})
	}
	return out, nil
}
