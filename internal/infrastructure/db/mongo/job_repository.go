package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

const collectionJobs = "jobs"

// JobRepository implements ports.JobRepository on MongoDB. Postings are
// looked up by the application-assigned "id" field, not the store _id.
type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(collectionJobs)}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var job domain.JobPosting
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// List returns active postings matching filter. City and state match as
// case-insensitive substrings; job type matches exactly.
func (r *JobRepository) List(ctx context.Context, filter ports.JobFilter) ([]*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"status": string(domain.JobStatusActive)}
	if filter.JobType != "" {
		query["job_type"] = filter.JobType
	}
	if filter.City != "" {
		query["location.city"] = primitive.Regex{Pattern: filter.City, Options: "i"}
	}
	if filter.State != "" {
		query["location.state"] = primitive.Regex{Pattern: filter.State, Options: "i"}
	}

	return r.find(ctx, query)
}

func (r *JobRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"client_id": clientID})
}

func (r *JobRepository) find(ctx context.Context, query bson.M) ([]*domain.JobPosting, error) {
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := make([]*domain.JobPosting, 0)
	for cur.Next(ctx) {
		var job domain.JobPosting
		if err := cur.Decode(&job); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, cur.Err()
}

// IncrementApplications performs a single atomic $inc on the counter.
func (r *JobRepository) IncrementApplications(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": jobID},
		bson.M{"$inc": bson.M{"applications_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment applications: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
