package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobflow/internal/resume"
)

type ResumeHandler struct {
	Resume *resume.Service
}

func (h ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.Resume.Get(r.Context())
	switch {
	case errors.Is(err, resume.ErrMissing):
		WriteError(w, r, http.StatusNotFound, "resume_missing", "No resume found")
	case errors.Is(err, resume.ErrCorrupt):
		WriteError(w, r, http.StatusInternalServerError, "resume_corrupt", "Stored resume.json is corrupted")
	case err != nil:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "Failed to read resume")
	default:
		WriteJSON(w, http.StatusOK, res)
	}
}

func (h ResumeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var res resume.Resume
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		WriteErrorDetails(w, r, http.StatusBadRequest, "invalid_json", "Invalid JSON body", err.Error(), "")
		return
	}

	if err := h.Resume.Put(r.Context(), &res); err != nil {
		if errors.Is(err, resume.ErrInvalid) {
			WriteError(w, r, http.StatusBadRequest, "invalid_resume", "Invalid JSON Resume: missing basics.name")
			return
		}
		WriteErrorDetails(w, r, http.StatusInternalServerError, "store_error", "Failed to write resume", err.Error(), "")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Resume uploaded",
	})
}
