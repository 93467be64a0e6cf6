package handler

import "github.com/dentalshift/marketplace-api/internal/core/domain"

type applyRequest struct {
	Message string `json:"message"`
}

// applicationWithJobResponse is an application joined with its posting, as
// returned to the professional who submitted it.
type applicationWithJobResponse struct {
	Application domain.JobApplication `json:"application"`
	Job         domain.JobPosting     `json:"job"`
}

// receivedApplicationResponse is the client-facing view: the professional's
// profile is redacted to non-sensitive fields only.
type receivedApplicationResponse struct {
	Application  domain.JobApplication   `json:"application"`
	Job          domain.JobPosting       `json:"job"`
	Professional domain.ProfessionalView `json:"professional"`
}
