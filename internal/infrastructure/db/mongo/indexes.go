package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates every index the repositories rely on. Called once at
// startup. The unique index on users.email enforces the email-uniqueness
// invariant; the unique compound index on applications.(job_id,
// professional_id) enforces at-most-one application per pair even when two
// requests race past the service-level duplicate check.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(collectionUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}

	jobIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "job_type", Value: 1}}},
	}
	if _, err := db.Collection(collectionJobs).Indexes().CreateMany(ctx, jobIndexes); err != nil {
		return fmt.Errorf("ensure job indexes: %w", err)
	}

	applicationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "professional_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "professional_id", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}
	if _, err := db.Collection(collectionApplications).Indexes().CreateMany(ctx, applicationIndexes); err != nil {
		return fmt.Errorf("ensure application indexes: %w", err)
	}

	return nil
}
