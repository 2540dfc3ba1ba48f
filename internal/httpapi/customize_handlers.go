package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"jobflow/internal/ai"
	"jobflow/internal/resume"
)

type CustomizeHandler struct {
	Logger        *zap.Logger
	Resume        *resume.Service
	Customizer    ai.Customizer
	JobText       TextExtractor
	MaxInputChars int
}

type CustomizeRequest struct {
	Input string `json:"input"`
}

type CustomizeResponse struct {
	Job        ai.ParsedJob   `json:"job"`
	Original   *resume.Resume `json:"original"`
	Customized resume.Resume  `json:"customized"`
	Changes    []ai.Change    `json:"changes"`
	Reasoning  string         `json:"reasoning"`
}

func (h CustomizeHandler) Customize(w http.ResponseWriter, r *http.Request) {
	var req CustomizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorDetails(w, r, http.StatusBadRequest, "invalid_json", "Invalid JSON body", err.Error(), "")
		return
	}

	input := strings.TrimSpace(req.Input)
	if input == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "Missing or invalid 'input' field")
		return
	}
	if h.MaxInputChars > 0 && len(input) > h.MaxInputChars {
		WriteError(w, r, http.StatusRequestEntityTooLarge, "input_too_large", "Input too large")
		return
	}

	jobText := h.JobText.GetJobText(r.Context(), input)

	original, err := h.Resume.Get(r.Context())
	switch {
	case errors.Is(err, resume.ErrMissing):
		WriteError(w, r, http.StatusInternalServerError, "resume_missing",
			"Master resume not found. Upload resume.json first.")
		return
	case errors.Is(err, resume.ErrCorrupt):
		WriteError(w, r, http.StatusInternalServerError, "resume_corrupt", "Stored resume.json is corrupted")
		return
	case err != nil:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "Failed to read resume")
		return
	}

	result, err := h.Customizer.Customize(r.Context(), jobText, *original)
	if err != nil {
		var perr *ai.ParseError
		if errors.As(err, &perr) {
			WriteErrorDetails(w, r, http.StatusInternalServerError, "llm_parse_error",
				"Failed to parse model response", perr.Err.Error(), perr.Raw)
			return
		}
		h.Logger.Warn("model request failed", zap.Error(err),
			zap.String("request_id", RequestIDFrom(r.Context())))
		WriteErrorDetails(w, r, http.StatusInternalServerError, "llm_error",
			"Model request failed", err.Error(), "")
		return
	}

	WriteJSON(w, http.StatusOK, CustomizeResponse{
		Job:        result.Job,
		Original:   original,
		Customized: result.Customized,
		Changes:    result.Changes,
		Reasoning:  result.Reasoning,
	})
}
