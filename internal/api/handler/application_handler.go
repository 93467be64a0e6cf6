package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalshift/marketplace-api/internal/api/metrics"
	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for the application ledger.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /jobs/:job_id/apply. Professional role only.
//
// @Summary      Apply to a job posting
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        job_id  path      string        true   "Posting identifier"
// @Param        body    body      applyRequest  false  "Optional message"
// @Success      200     {object}  domain.JobApplication
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /jobs/{job_id}/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	app, err := h.service.Apply(c.Request().Context(), ports.ApplyInput{
		JobID:          c.Param("job_id"),
		ProfessionalID: user.ID,
		Message:        req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			metrics.ApplicationsTotal.WithLabelValues("job_not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrAlreadyApplied):
			metrics.ApplicationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to submit application"})
	}

	metrics.ApplicationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, app)
}

// MyApplications handles GET /applications/my-applications. Professional
// role only; each application is joined with its posting.
//
// @Summary      List the authenticated professional's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   applicationWithJobResponse
// @Failure      403  {object}  errorResponse
// @Router       /applications/my-applications [get]
func (h *ApplicationHandler) MyApplications(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	rows, err := h.service.ListForProfessional(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list applications"})
	}

	out := make([]applicationWithJobResponse, len(rows))
	for i, row := range rows {
		out[i] = applicationWithJobResponse{Application: row.Application, Job: row.Job}
	}
	return c.JSON(http.StatusOK, out)
}

// Received handles GET /applications/received. Client role only; each
// application is joined with its posting and the professional's redacted
// profile.
//
// @Summary      List applications received on the client's postings
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   receivedApplicationResponse
// @Failure      403  {object}  errorResponse
// @Router       /applications/received [get]
func (h *ApplicationHandler) Received(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	rows, err := h.service.ListForClient(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list applications"})
	}

	out := make([]receivedApplicationResponse, len(rows))
	for i, row := range rows {
		out[i] = receivedApplicationResponse{
			Application:  row.Application,
			Job:          row.Job,
			Professional: row.Professional,
		}
	}
	return c.JSON(http.StatusOK, out)
}
