package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	api "github.com/crewup/crewup-api/api/v1"
)

func (h *Handler) ListWorkerApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	applications, err := h.applicationSrv.ListWorkerApplications(r.Context(), user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, applications.ToApiResource())
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	var form api.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	application, err := h.applicationSrv.Apply(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, application.ToApiResource())
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	application, err := h.applicationSrv.Withdraw(r.Context(), id, user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, application.ToApiResource())
}

// UpdateApplicationStatus moves an application along the employer review
// pipeline (viewed, shortlisted, accepted, rejected).
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var form api.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	application, err := h.applicationSrv.UpdateStatus(r.Context(), id, user.ID, form.Status)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, application.ToApiResource())
}
