package domain

import (
	"errors"
	"time"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationStatus represents the review state of an application. The field
// is defaulted to pending and never transitioned by any endpoint yet.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// JobApplication is a professional's expression of interest in a posting.
// ClientID is a denormalized copy of the posting owner's id, fixed at
// creation. At most one application exists per (job, professional) pair.
type JobApplication struct {
	ID             string            `json:"id" bson:"id"`
	JobID          string            `json:"job_id" bson:"job_id"`
	ProfessionalID string            `json:"professional_id" bson:"professional_id"`
	ClientID       string            `json:"client_id" bson:"client_id"`
	Message        string            `json:"message,omitempty" bson:"message,omitempty"`
	Status         ApplicationStatus `json:"status" bson:"status"`
	AppliedAt      time.Time         `json:"applied_at" bson:"applied_at"`
}
