package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalshift/marketplace-api/internal/api/metrics"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// JobHandler handles HTTP requests for the job catalog.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /jobs. Client role only (enforced by RBAC middleware).
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Posting details"
// @Success      200   {object}  domain.JobPosting
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	job, err := h.service.Create(c.Request().Context(), toCreateJobInput(req, user.ID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create job"})
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(job.JobType)).Inc()
	return c.JSON(http.StatusOK, job)
}

// List handles GET /jobs. Any authenticated role; only active postings are
// returned. Filters: exact job_type, case-insensitive substring city/state.
//
// @Summary      List active job postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        job_type  query     string  false  "Exact job type"
// @Param        city      query     string  false  "City substring, case-insensitive"
// @Param        state     query     string  false  "State substring, case-insensitive"
// @Success      200       {array}   domain.JobPosting
// @Failure      401       {object}  errorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.List(c.Request().Context(), ports.JobFilter{
		JobType: c.QueryParam("job_type"),
		City:    c.QueryParam("city"),
		State:   c.QueryParam("state"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list jobs"})
	}
	return c.JSON(http.StatusOK, jobs)
}

// MyPostings handles GET /jobs/my-postings. Client role only; returns the
// client's own postings regardless of status.
//
// @Summary      List the authenticated client's postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.JobPosting
// @Failure      403  {object}  errorResponse
// @Router       /jobs/my-postings [get]
func (h *JobHandler) MyPostings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListOwned(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list postings"})
	}
	return c.JSON(http.StatusOK, jobs)
}

func toCreateJobInput(req createJobRequest, clientID string) ports.CreateJobInput {
	return ports.CreateJobInput{
		ClientID:    clientID,
		Title:       req.Title,
		JobType:     req.JobType,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Location: ports.LocationInput{
			Address:   req.Location.Address,
			City:      req.Location.City,
			State:     req.Location.State,
			Zip:       req.Location.Zip,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		JobDate:   req.JobDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,

		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
		RecurringDays:    req.RecurringDays,
		RecurringEndDate: req.RecurringEndDate,
	}
}
