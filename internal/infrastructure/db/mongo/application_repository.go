package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

const collectionApplications = "applications"

// ApplicationRepository implements ports.ApplicationRepository on MongoDB.
// The unique (job_id, professional_id) index turns a racing duplicate insert
// into a deterministic conflict.
type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(collectionApplications)}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyApplied
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByJobAndProfessional(ctx context.Context, jobID, professionalID string) (*domain.JobApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.JobApplication
	filter := bson.M{"job_id": jobID, "professional_id": professionalID}
	if err := r.coll.FindOne(ctx, filter).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

// applicationWithJob is the decode target for the $lookup aggregation.
type applicationWithJob struct {
	domain.JobApplication `bson:",inline"`
	Job                   domain.JobPosting `bson:"job"`
}

func (r *ApplicationRepository) ListByProfessional(ctx context.Context, professionalID string) ([]ports.ApplicationWithJob, error) {
	return r.listJoined(ctx, bson.M{"professional_id": professionalID})
}

func (r *ApplicationRepository) ListByClient(ctx context.Context, clientID string) ([]ports.ApplicationWithJob, error) {
	return r.listJoined(ctx, bson.M{"client_id": clientID})
}

// listJoined joins each matching application with its posting. The $unwind
// silently drops applications whose posting is gone.
func (r *ApplicationRepository) listJoined(ctx context.Context, match bson.M) ([]ports.ApplicationWithJob, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionJobs,
			"localField":   "job_id",
			"foreignField": "id",
			"as":           "job",
		}}},
		{{Key: "$unwind", Value: "$job"}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]ports.ApplicationWithJob, 0)
	for cur.Next(ctx) {
		var row applicationWithJob
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		out = append(out, ports.ApplicationWithJob{
			Application: row.JobApplication,
			Job:         row.Job,
		})
	}
	return out, cur.Err()
}
