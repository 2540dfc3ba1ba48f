package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"jobflow/internal/ats"
)

type ATSHandler struct {
	Jobs JobSource
}

func (h ATSHandler) Match(w http.ResponseWriter, r *http.Request) {
	rawURL, ok := urlParam(w, r)
	if !ok {
		return
	}

	m := ats.MatchURL(rawURL)
	if m == nil {
		WriteError(w, r, http.StatusNotFound, "unrecognized_url", "URL does not match a supported ATS")
		return
	}
	WriteJSON(w, http.StatusOK, m)
}

func (h ATSHandler) Job(w http.ResponseWriter, r *http.Request) {
	rawURL, ok := urlParam(w, r)
	if !ok {
		return
	}

	job, err := h.Jobs.Resolve(r.Context(), rawURL)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h ATSHandler) List(w http.ResponseWriter, r *http.Request) {
	rawURL, ok := urlParam(w, r)
	if !ok {
		return
	}

	jobs, err := h.Jobs.ResolveAll(r.Context(), rawURL)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []ats.JobData{}
	}
	WriteJSON(w, http.StatusOK, jobs)
}

func urlParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if rawURL == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_url", "Missing 'url' query parameter")
		return "", false
	}
	return rawURL, true
}

func writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *ats.FetchError
	var de *ats.DecodeError
	switch {
	case errors.Is(err, ats.ErrUnrecognizedURL):
		WriteError(w, r, http.StatusNotFound, "unrecognized_url", "URL does not match a supported ATS")
	case errors.Is(err, ats.ErrJobNotFound):
		WriteError(w, r, http.StatusNotFound, "job_not_found", "Job not found on the platform")
	case errors.As(err, &fe), errors.As(err, &de):
		WriteErrorDetails(w, r, http.StatusBadGateway, "upstream_error",
			"Platform API request failed", err.Error(), "")
	default:
		WriteErrorDetails(w, r, http.StatusInternalServerError, "internal_error",
			"Failed to resolve job", err.Error(), "")
	}
}
