package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

type stubApplicationService struct {
	applied  *domain.JobApplication
	applyErr error
	mine     []ports.ApplicationWithJob
	received []ports.ReceivedApplication
	err      error

	lastApply ports.ApplyInput
}

func (s *stubApplicationService) Apply(_ context.Context, input ports.ApplyInput) (*domain.JobApplication, error) {
	s.lastApply = input
	return s.applied, s.applyErr
}

func (s *stubApplicationService) ListForProfessional(_ context.Context, _ string) ([]ports.ApplicationWithJob, error) {
	return s.mine, s.err
}

func (s *stubApplicationService) ListForClient(_ context.Context, _ string) ([]ports.ReceivedApplication, error) {
	return s.received, s.err
}

func professionalUser() *domain.User {
	return &domain.User{ID: "prof-1", Role: domain.RoleProfessional}
}

func TestApplicationHandler_Apply(t *testing.T) {
	svc := &stubApplicationService{applied: &domain.JobApplication{
		ID:             "app-1",
		JobID:          "job-1",
		ProfessionalID: "prof-1",
		Status:         domain.ApplicationPending,
	}}
	h := NewApplicationHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/jobs/job-1/apply", `{"message":"Available all day."}`)
	c.SetParamNames("job_id")
	c.SetParamValues("job-1")
	c.Set("user", professionalUser())

	if err := h.Apply(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastApply.JobID != "job-1" || svc.lastApply.ProfessionalID != "prof-1" {
		t.Fatalf("input not assembled from route and context: %+v", svc.lastApply)
	}
	if svc.lastApply.Message != "Available all day." {
		t.Fatalf("message not forwarded: %q", svc.lastApply.Message)
	}
}

func TestApplicationHandler_Apply_JobNotFound(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{applyErr: domain.ErrJobNotFound})

	c, rec := newJSONContext(http.MethodPost, "/jobs/missing/apply", "")
	c.SetParamNames("job_id")
	c.SetParamValues("missing")
	c.Set("user", professionalUser())

	if err := h.Apply(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestApplicationHandler_Apply_Duplicate(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{applyErr: domain.ErrAlreadyApplied})

	c, rec := newJSONContext(http.MethodPost, "/jobs/job-1/apply", "")
	c.SetParamNames("job_id")
	c.SetParamValues("job-1")
	c.Set("user", professionalUser())

	if err := h.Apply(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApplicationHandler_MyApplications(t *testing.T) {
	svc := &stubApplicationService{mine: []ports.ApplicationWithJob{
		{
			Application: domain.JobApplication{ID: "app-1", JobID: "job-1", ProfessionalID: "prof-1"},
			Job:         domain.JobPosting{ID: "job-1", Title: "Hygienist needed Friday"},
		},
	}}
	h := NewApplicationHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/applications/my-applications", "")
	c.Set("user", professionalUser())

	if err := h.MyApplications(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []applicationWithJobResponse
	decodeJSON(t, rec, &resp)
	if len(resp) != 1 || resp[0].Job.Title != "Hygienist needed Friday" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestApplicationHandler_Received_RedactedProfile(t *testing.T) {
	years := 5
	svc := &stubApplicationService{received: []ports.ReceivedApplication{
		{
			Application: domain.JobApplication{ID: "app-1", JobID: "job-1", ProfessionalID: "prof-1", ClientID: "client-1"},
			Job:         domain.JobPosting{ID: "job-1", ClientID: "client-1"},
			Professional: domain.ProfessionalView{
				FirstName:       "Pat",
				LastName:        "Lee",
				Email:           "pat@example.com",
				ProfessionType:  domain.JobTypeDentalHygienist,
				ExperienceYears: &years,
			},
		},
	}}
	h := NewApplicationHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/applications/received", "")
	c.Set("user", clientUser())

	if err := h.Received(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if strings.Contains(body, "license_number") || strings.Contains(body, "password") {
		t.Fatalf("sensitive fields leaked: %s", body)
	}

	var resp []receivedApplicationResponse
	decodeJSON(t, rec, &resp)
	if len(resp) != 1 || resp[0].Professional.Email != "pat@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
