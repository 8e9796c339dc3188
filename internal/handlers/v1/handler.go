// Package v1 carries the HTTP surface of the marketplace API.
package v1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/crewup/crewup-api/api/v1"
	"github.com/crewup/crewup-api/internal/auth"
	"github.com/crewup/crewup-api/internal/handlers/validator"
	"github.com/crewup/crewup-api/internal/lifecycle"
	"github.com/crewup/crewup-api/internal/service"
	"github.com/crewup/crewup-api/pkg/requestid"
)

type Handler struct {
	jobSrv         *service.JobService
	applicationSrv *service.ApplicationService
	profileSrv     *service.ProfileService
	validator      *validator.Validator
}

func NewHandler(jobService *service.JobService, applicationService *service.ApplicationService, profileService *service.ProfileService) *Handler {
	v := validator.NewValidator()
	v.Register(validator.NewJobValidationRules()...)
	v.Register(validator.NewApplicationValidationRules()...)
	v.Register(validator.NewProfileValidationRules()...)
	return &Handler{
		jobSrv:         jobService,
		applicationSrv: applicationService,
		profileSrv:     profileService,
		validator:      v,
	}
}

func (h *Handler) Routes(router chi.Router) {
	router.Get("/health", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.SearchJobs)
			r.Post("/", h.CreateJob)
			r.Get("/mine", h.ListEmployerJobs)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetJob)
				r.Put("/", h.UpdateJob)
				r.Delete("/", h.DeleteJob)
				r.Post("/publish", h.PublishJob)
				r.Post("/close", h.CloseJob)
				r.Post("/fill", h.FillJob)
				r.Get("/applications", h.ListJobApplications)
				r.Post("/applications/reconcile", h.ReconcileApplicationsCount)
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", h.ListWorkerApplications)
			r.Post("/", h.Apply)
			r.Post("/{id}/withdraw", h.Withdraw)
			r.Put("/{id}/status", h.UpdateApplicationStatus)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Route("/worker", func(r chi.Router) {
				r.Get("/", h.GetWorkerProfile)
				r.Post("/", h.CreateWorkerProfile)
				r.Put("/", h.UpdateWorkerProfile)
				r.Post("/photo", h.UploadWorkerPhoto)
				r.Put("/skills", h.ReplaceWorkerSkills)
				r.Post("/certifications", h.AddWorkerCertification)
				r.Delete("/certifications/{id}", h.DeleteWorkerCertification)
				r.Post("/work-history", h.AddWorkerWorkHistory)
				r.Delete("/work-history/{id}", h.DeleteWorkerWorkHistory)
			})
			r.Route("/employer", func(r chi.Router) {
				r.Get("/", h.GetEmployerProfile)
				r.Post("/", h.CreateEmployerProfile)
				r.Put("/", h.UpdateEmployerProfile)
				r.Post("/logo", h.UploadEmployerLogo)
			})
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// renderError maps the service error taxonomy onto HTTP statuses.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound        *service.ErrResourceNotFound
		profileNotFound *service.ErrProfileNotFound
		notJobOwner     *service.ErrNotJobOwner
		notAppOwner     *service.ErrNotApplicationOwner
		jobValidation   *service.ErrJobValidation
		notAccepting    *service.ErrJobNotAcceptingApplications
		duplicateApp    *service.ErrDuplicateApplication
		jobConflict     *service.ErrJobConflict
		dupProfile      *service.ErrDuplicateProfile
		invalidTrans    *lifecycle.ErrInvalidTransition
		unauthTrans     *lifecycle.ErrUnauthorizedTransition
	)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &notFound), errors.As(err, &profileNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.As(err, &notJobOwner), errors.As(err, &notAppOwner), errors.As(err, &unauthTrans):
		status, message = http.StatusForbidden, err.Error()
	case errors.As(err, &duplicateApp), errors.As(err, &jobConflict), errors.As(err, &dupProfile), errors.As(err, &invalidTrans):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &jobValidation), errors.As(err, &notAccepting):
		status, message = http.StatusUnprocessableEntity, err.Error()
	}

	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

func renderForbidden(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusForbidden)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

// requireWorker rejects requests from the employer side of the marketplace.
func requireWorker(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user := auth.MustHaveUser(r.Context())
	if !user.IsWorker() {
		renderForbidden(w, r, "worker account required")
		return auth.User{}, false
	}
	return user, true
}

// requireEmployer rejects requests from the worker side of the marketplace.
func requireEmployer(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user := auth.MustHaveUser(r.Context())
	if !user.IsEmployer() {
		renderForbidden(w, r, "employer account required")
		return auth.User{}, false
	}
	return user, true
}
