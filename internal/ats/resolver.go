package ats

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Resolver turns ATS URLs into normalized job records. It holds no
// per-request state; all resolution is call-local and read-only
// against the upstream platforms.
type Resolver struct {
	hc     *http.Client
	logger *zap.Logger
	bases  map[Platform]string
}

func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		hc:     &http.Client{Timeout: 20 * time.Second},
		logger: logger,
		bases:  make(map[Platform]string),
	}
}

// SetHTTPClient replaces the underlying client.
func (r *Resolver) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		r.hc = hc
	}
}

// SetBaseURL reroutes one platform's API, e.g. at a test server or a
// proxy. An empty base restores the documented endpoint.
func (r *Resolver) SetBaseURL(platform Platform, base string) {
	if base == "" {
		delete(r.bases, platform)
		return
	}
	r.bases[platform] = strings.TrimSuffix(base, "/")
}

func (r *Resolver) base(p Platform) string { return r.bases[p] }

// Resolve fetches and normalizes the job a URL points at. URLs without
// a job id resolve to the first posting the platform returns. Errors
// are typed: ErrUnrecognizedURL, ErrJobNotFound, *FetchError,
// *DecodeError.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*JobData, error) {
	m := MatchURL(rawURL)
	if m == nil {
		return nil, ErrUnrecognizedURL
	}
	return r.resolveJob(ctx, m.Platform, m.Client, m.JobID)
}

func (r *Resolver) resolveJob(ctx context.Context, platform Platform, client, jobID string) (*JobData, error) {
	switch platform {
	case PlatformWorkable:
		resp, err := fetchWorkableJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if jobID != "" {
			// Workable shortcodes are case-insensitive.
			for _, j := range resp.Jobs {
				if strings.EqualFold(j.Shortcode, jobID) {
					out := normalizeWorkableJob(j, client)
					return &out, nil
				}
			}
			return nil, ErrJobNotFound
		}
		if len(resp.Jobs) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeWorkableJob(resp.Jobs[0], client)
		return &out, nil

	case PlatformGreenhouse:
		if jobID != "" {
			job, err := fetchGreenhouseJob(ctx, r.hc, r.base(platform), client, jobID)
			if err != nil {
				return nil, err
			}
			out := normalizeGreenhouseJob(*job, client)
			return &out, nil
		}
		resp, err := fetchGreenhouseJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if len(resp.Jobs) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeGreenhouseJob(resp.Jobs[0], client)
		return &out, nil

	case PlatformLever:
		if jobID != "" {
			job, err := fetchLeverJob(ctx, r.hc, r.base(platform), client, jobID)
			if err != nil {
				return nil, err
			}
			out := normalizeLeverJob(*job, client)
			return &out, nil
		}
		jobs, err := fetchLeverJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if len(jobs) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeLeverJob(jobs[0], client)
		return &out, nil

	case PlatformAshby:
		resp, err := fetchAshbyJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if jobID != "" {
			for _, j := range resp.Jobs {
				if j.ID == jobID {
					out := normalizeAshbyJob(j, client)
					return &out, nil
				}
			}
			return nil, ErrJobNotFound
		}
		if len(resp.Jobs) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeAshbyJob(resp.Jobs[0], client)
		return &out, nil

	case PlatformRecruitee:
		resp, err := fetchRecruiteeJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if jobID != "" {
			for _, j := range resp.Offers {
				if j.Slug == jobID || strconv.FormatInt(j.ID, 10) == jobID {
					out := normalizeRecruiteeJob(j, client)
					return &out, nil
				}
			}
			return nil, ErrJobNotFound
		}
		if len(resp.Offers) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeRecruiteeJob(resp.Offers[0], client)
		return &out, nil

	case PlatformGem:
		jobs, err := fetchGemJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if jobID != "" {
			for _, j := range jobs {
				if j.ID == jobID {
					out := normalizeGemJob(j, client)
					return &out, nil
				}
			}
			return nil, ErrJobNotFound
		}
		if len(jobs) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeGemJob(jobs[0], client)
		return &out, nil

	case PlatformSmartRecruiters:
		if jobID != "" {
			job, err := fetchSmartRecruitersJob(ctx, r.hc, r.base(platform), client, jobID)
			if err != nil {
				return nil, err
			}
			out := normalizeSmartRecruitersJob(*job, client)
			return &out, nil
		}
		resp, err := fetchSmartRecruitersJobs(ctx, r.hc, r.base(platform), client)
		if err != nil {
			return nil, err
		}
		if len(resp.Content) == 0 {
			return nil, ErrJobNotFound
		}
		out := normalizeSmartRecruitersJob(resp.Content[0], client)
		return &out, nil
	}

	return nil, ErrUnrecognizedURL
}

// ResolveAll fetches and normalizes every posting on the board a URL
// belongs to. The list endpoint is always used, even when the URL
// carried a job id. All-or-nothing: any upstream failure fails the
// whole call.
func (r *Resolver) ResolveAll(ctx context.Context, rawURL string) ([]JobData, error) {
	m := MatchURL(rawURL)
	if m == nil {
		return nil, ErrUnrecognizedURL
	}
	client := m.Client

	switch m.Platform {
	case PlatformWorkable:
		resp, err := fetchWorkableJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(resp.Jobs))
		for _, j := range resp.Jobs {
			out = append(out, normalizeWorkableJob(j, client))
		}
		return out, nil

	case PlatformGreenhouse:
		resp, err := fetchGreenhouseJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(resp.Jobs))
		for _, j := range resp.Jobs {
			out = append(out, normalizeGreenhouseJob(j, client))
		}
		return out, nil

	case PlatformLever:
		jobs, err := fetchLeverJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, normalizeLeverJob(j, client))
		}
		return out, nil

	case PlatformAshby:
		resp, err := fetchAshbyJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(resp.Jobs))
		for _, j := range resp.Jobs {
			out = append(out, normalizeAshbyJob(j, client))
		}
		return out, nil

	case PlatformRecruitee:
		resp, err := fetchRecruiteeJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(resp.Offers))
		for _, j := range resp.Offers {
			out = append(out, normalizeRecruiteeJob(j, client))
		}
		return out, nil

	case PlatformGem:
		jobs, err := fetchGemJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, normalizeGemJob(j, client))
		}
		return out, nil

	case PlatformSmartRecruiters:
		resp, err := fetchSmartRecruitersJobs(ctx, r.hc, r.base(m.Platform), client)
		if err != nil {
			return nil, err
		}
		out := make([]JobData, 0, len(resp.Content))
		for _, j := range resp.Content {
			out = append(out, normalizeSmartRecruitersJob(j, client))
		}
		return out, nil
	}

	return nil, ErrUnrecognizedURL
}

// FetchJobFromURL is the best-effort public entry point: any failure,
// upstream or otherwise, collapses to nil. The underlying error is
// logged, not returned.
func (r *Resolver) FetchJobFromURL(ctx context.Context, rawURL string) *JobData {
	job, err := r.Resolve(ctx, rawURL)
	if err != nil {
		r.logResolveError(rawURL, err)
		return nil
	}
	return job
}

// FetchAllJobsFromURL is the best-effort aggregate entry point; nil on
// any failure, never partial results.
func (r *Resolver) FetchAllJobsFromURL(ctx context.Context, rawURL string) []JobData {
	jobs, err := r.ResolveAll(ctx, rawURL)
	if err != nil {
		r.logResolveError(rawURL, err)
		return nil
	}
	return jobs
}

func (r *Resolver) logResolveError(rawURL string, err error) {
	switch {
	case errors.Is(err, ErrUnrecognizedURL):
		r.logger.Debug("url not recognized as ats", zap.String("url", rawURL))
	case errors.Is(err, ErrJobNotFound):
		r.logger.Debug("job not found on platform", zap.String("url", rawURL))
	default:
		r.logger.Warn("ats resolve failed", zap.String("url", rawURL), zap.Error(err))
	}
}
