package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/render"

	api "github.com/crewup/crewup-api/api/v1"
)

// maxUploadBytes bounds profile photo and company logo payloads.
const maxUploadBytes = 5 << 20

func (h *Handler) GetWorkerProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	profile, err := h.profileSrv.GetWorkerProfile(r.Context(), user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) CreateWorkerProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	var form api.CreateWorkerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	profile, err := h.profileSrv.CreateWorkerProfile(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) UpdateWorkerProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	var form api.CreateWorkerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	profile, err := h.profileSrv.UpdateWorkerProfile(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) UploadWorkerPhoto(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	data, contentType, ok := readUpload(w, r)
	if !ok {
		return
	}

	profile, err := h.profileSrv.UploadWorkerPhoto(r.Context(), user.ID, data, contentType)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

// ReplaceWorkerSkills swaps the worker's whole skill set and returns the
// refreshed profile.
func (h *Handler) ReplaceWorkerSkills(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	var form api.ReplaceWorkerSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	profile, err := h.profileSrv.ReplaceWorkerSkills(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) AddWorkerCertification(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	var form api.CreateCertificationRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	certification, err := h.profileSrv.AddWorkerCertification(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, certification.ToApiResource())
}

func (h *Handler) DeleteWorkerCertification(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.profileSrv.DeleteWorkerCertification(r.Context(), user.ID, id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddWorkerWorkHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}

	var form api.CreateWorkHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	entry, err := h.profileSrv.AddWorkerWorkHistory(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, entry.ToApiResource())
}

func (h *Handler) DeleteWorkerWorkHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireWorker(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.profileSrv.DeleteWorkerWorkHistory(r.Context(), user.ID, id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetEmployerProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	profile, err := h.profileSrv.GetEmployerProfile(r.Context(), user.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) CreateEmployerProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	var form api.CreateEmployerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	profile, err := h.profileSrv.CreateEmployerProfile(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) UpdateEmployerProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	var form api.CreateEmployerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderBadRequest(w, r, "failed to decode request body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	profile, err := h.profileSrv.UpdateEmployerProfile(r.Context(), user.ID, &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

func (h *Handler) UploadEmployerLogo(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEmployer(w, r)
	if !ok {
		return
	}

	data, contentType, ok := readUpload(w, r)
	if !ok {
		return
	}

	profile, err := h.profileSrv.UploadEmployerLogo(r.Context(), user.ID, data, contentType)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, profile.ToApiResource())
}

// readUpload reads the raw image body. The Content-Type header names the
// image format.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	contentType := r.Header.Get("Content-Type")
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		renderBadRequest(w, r, "Content-Type must be image/png, image/jpeg or image/webp")
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		renderBadRequest(w, r, "failed to read request body")
		return nil, "", false
	}
	if len(data) == 0 {
		renderBadRequest(w, r, "empty upload")
		return nil, "", false
	}
	if len(data) > maxUploadBytes {
		renderBadRequest(w, r, "upload exceeds the 5MiB limit")
		return nil, "", false
	}

	return data, contentType, true
}
