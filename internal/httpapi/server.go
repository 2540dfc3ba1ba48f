// Package httpapi exposes the service over HTTP: resume upload and
// retrieval, the single-call customize pipeline, and direct ATS lookup
// endpoints.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"jobflow/internal/ai"
	"jobflow/internal/ats"
	"jobflow/internal/resume"
)

// JobSource is the slice of the ats resolver the handlers need.
type JobSource interface {
	Resolve(ctx context.Context, rawURL string) (*ats.JobData, error)
	ResolveAll(ctx context.Context, rawURL string) ([]ats.JobData, error)
}

// TextExtractor turns customize input (URL or pasted text) into plain
// posting text.
type TextExtractor interface {
	GetJobText(ctx context.Context, input string) string
}

type Deps struct {
	Logger     *zap.Logger
	Resume     *resume.Service
	Customizer ai.Customizer
	JobText    TextExtractor
	Jobs       JobSource

	// Bearer token required on every route except /health.
	Token string

	// Customize inputs longer than this are rejected with 413.
	MaxInputChars int
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(AccessLog(d.Logger))
	r.Use(Recover(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(d.Token))

		ch := CustomizeHandler{
			Logger:        d.Logger,
			Resume:        d.Resume,
			Customizer:    d.Customizer,
			JobText:       d.JobText,
			MaxInputChars: d.MaxInputChars,
		}
		r.Post("/customize", ch.Customize)

		rh := ResumeHandler{Resume: d.Resume}
		r.Get("/resume", rh.Get)
		r.Put("/resume", rh.Put)

		ah := ATSHandler{Jobs: d.Jobs}
		r.Get("/ats/match", ah.Match)
		r.Get("/ats/job", ah.Job)
		r.Get("/ats/jobs", ah.List)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "jobflow",
	})
}
