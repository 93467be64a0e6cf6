package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// JobService implements the job catalog use-cases.
type JobService struct {
	repo ports.JobRepository
	log  zerolog.Logger
}

func NewJobService(repo ports.JobRepository, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, log: log}
}

// Create persists a new posting owned by input.ClientID. The posting starts
// active with a zero applications counter.
func (s *JobService) Create(ctx context.Context, input ports.CreateJobInput) (*domain.JobPosting, error) {
	jobType := domain.JobType(input.JobType)
	if !jobType.Valid() {
		return nil, fmt.Errorf("create job: unknown job type %q", input.JobType)
	}
	if input.RecurringPattern != "" {
		switch domain.RecurrencePattern(input.RecurringPattern) {
		case domain.RecurDaily, domain.RecurWeekly, domain.RecurMonthly:
		default:
			return nil, fmt.Errorf("create job: unknown recurrence pattern %q", input.RecurringPattern)
		}
	}

	job := &domain.JobPosting{
		ID:          uuid.NewString(),
		ClientID:    input.ClientID,
		Title:       input.Title,
		JobType:     jobType,
		Description: input.Description,
		HourlyRate:  input.HourlyRate,
		Location: domain.Location{
			Address:   input.Location.Address,
			City:      input.Location.City,
			State:     input.Location.State,
			Zip:       input.Location.Zip,
			Latitude:  input.Location.Latitude,
			Longitude: input.Location.Longitude,
		},
		JobDate:   input.JobDate,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,

		IsRecurring:      input.IsRecurring,
		RecurringPattern: domain.RecurrencePattern(input.RecurringPattern),
		RecurringDays:    input.RecurringDays,
		RecurringEndDate: input.RecurringEndDate,

		Status:            domain.JobStatusActive,
		CreatedAt:         time.Now().UTC(),
		ApplicationsCount: 0,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Msg("failed to create job posting")
		return nil, err
	}

	s.log.Info().Str("job_id", job.ID).Str("client_id", job.ClientID).Str("job_type", string(job.JobType)).Msg("job created")
	return job, nil
}

// List returns active postings matching the filter.
func (s *JobService) List(ctx context.Context, filter ports.JobFilter) ([]*domain.JobPosting, error) {
	return s.repo.List(ctx, filter)
}

// ListOwned returns every posting owned by the client, regardless of status.
func (s *JobService) ListOwned(ctx context.Context, clientID string) ([]*domain.JobPosting, error) {
	return s.repo.ListByClient(ctx, clientID)
}
