package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/auth"
	"github.com/crewup/crewup-api/internal/service"
	"github.com/crewup/crewup-api/internal/store/model"
)

// SearchJobs (GET /api/v1/jobs) returns active jobs matching the free-text
// query, the trade and job_type filters, and, when an origin is given, lying
// within the requested radius.
func (h *Handler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	params := service.JobSearchParams{Query: r.URL.Query().Get("q")}

	if raw := r.URL.Query().Get("trade"); raw != "" {
		params.Trade = &raw
	}
	if raw := r.URL.Query().Get("job_type"); raw != "" {
		jobType := api.JobType(raw)
		params.JobType = &jobType
	}

	origin, radiusKm, err := parseGeoParams(r)
	if err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}
	params.Origin, params.RadiusKm = origin, radiusKm

	jobs, err := h.jobSrv.SearchJobs(r.Context(), params)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, jobs.ToApiResource())
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	var form api.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	job, err := h.jobSrv.CreateJob(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, job.ToApiResource())
}

func (h *Handler) ListEmployerJobs(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	var status *api.JobStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := api.JobStatus(raw)
		status = &s
	}

	jobs, err := h.jobSrv.ListEmployerJobs(r.Context(), user.ID, status)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, jobs.ToApiResource())
}

// GetJob returns a single job. Worker views are counted, employer and
// anonymous reads are not.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	job, err := h.jobSrv.GetJob(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if user, found := auth.UserFromContext(r.Context()); found && user.IsWorker() {
		h.jobSrv.RecordJobView(r.Context(), id)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, job.ToApiResource())
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var form api.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	job, err := h.jobSrv.UpdateJob(r.Context(), id, user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, job.ToApiResource())
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.jobSrv.DeleteJob(r.Context(), id, user.ID); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PublishJob(w http.ResponseWriter, r *http.Request) {
	h.transitionJob(w, r, h.jobSrv.PublishJob)
}

func (h *Handler) CloseJob(w http.ResponseWriter, r *http.Request) {
	h.transitionJob(w, r, h.jobSrv.CloseJob)
}

func (h *Handler) FillJob(w http.ResponseWriter, r *http.Request) {
	h.transitionJob(w, r, h.jobSrv.FillJob)
}

func (h *Handler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	applications, err := h.applicationSrv.ListJobApplications(r.Context(), id, user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, applications.ToApiResource())
}

// ReconcileApplicationsCount recomputes the job's cached application count
// from the applications table.
func (h *Handler) ReconcileApplicationsCount(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireEmployer(w, r); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.applicationSrv.ReconcileApplicationsCount(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) transitionJob(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, id uuid.UUID, employerID uuid.UUID) (*model.Job, error)) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	job, err := transition(r.Context(), id, user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, job.ToApiResource())
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderBadRequest(w, r, "id is not a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseGeoParams reads the lat/lon/radius_km triple from the query string.
// lat and lon must come together; radius_km is meaningless without them.
func parseGeoParams(r *http.Request) (*api.Coordinate, *float64, error) {
	q := r.URL.Query()
	latStr, lonStr, radiusStr := q.Get("lat"), q.Get("lon"), q.Get("radius_km")

	if latStr == "" && lonStr == "" {
		if radiusStr != "" {
			return nil, nil, errors.New("radius_km requires lat and lon")
		}
		return nil, nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, nil, errors.New("lat and lon must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid lon %q", lonStr)
	}

	var radiusKm *float64
	if radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius < 0 {
			return nil, nil, fmt.Errorf("invalid radius_km %q", radiusStr)
		}
		radiusKm = &radius
	}

	return &api.Coordinate{Latitude: lat, Longitude: lon}, radiusKm, nil
}
