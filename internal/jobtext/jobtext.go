// Package jobtext turns whatever a caller pastes into the customize
// endpoint into plain job-posting text: an ATS URL is resolved through
// the platform APIs, any other URL is scraped, and everything else is
// taken as the posting text itself.
package jobtext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobflow/internal/ats"
)

// minPageText is the smallest scrape result worth trusting; anything
// shorter falls back to the raw input.
const minPageText = 100

const maxPageBytes = 2 << 20

// JobResolver is the slice of the ats resolver the extractor needs.
type JobResolver interface {
	FetchJobFromURL(ctx context.Context, rawURL string) *ats.JobData
}

type Extractor struct {
	resolver JobResolver
	hc       *http.Client
	limiter  *hostLimiter
	logger   *zap.Logger
}

type Options struct {
	PerHostRPS float64
	Burst      int
	Timeout    time.Duration
}

func NewExtractor(resolver JobResolver, logger *zap.Logger, opts Options) *Extractor {
	if opts.PerHostRPS <= 0 {
		opts.PerHostRPS = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Extractor{
		resolver: resolver,
		hc:       &http.Client{Timeout: opts.Timeout},
		limiter:  newHostLimiter(opts.PerHostRPS, opts.Burst),
		logger:   logger,
	}
}

// SetHTTPClient overrides the page-fetch client.
func (e *Extractor) SetHTTPClient(hc *http.Client) { e.hc = hc }

// GetJobText resolves input into posting text. It never fails: when a
// URL cannot be resolved or scraped the trimmed input itself is
// returned, so the caller always has something to hand to the model.
func (e *Extractor) GetJobText(ctx context.Context, input string) string {
	trimmed := strings.TrimSpace(input)

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}

	if ats.IsKnownATSURL(trimmed) {
		if job := e.resolver.FetchJobFromURL(ctx, trimmed); job != nil {
			return renderJob(job)
		}
		// Platform URL that did not resolve; the page itself may
		// still render the posting.
	}

	text, err := e.fetchPage(ctx, trimmed)
	if err != nil {
		e.logger.Debug("page fetch failed, using raw input",
			zap.String("url", trimmed), zap.Error(err))
		return trimmed
	}
	return text
}

func (e *Extractor) fetchPage(ctx context.Context, rawURL string) (string, error) {
	if err := e.limiter.WaitURL(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "jobflow/1.0 (+local)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}

	text := htmlToText(string(body))
	if len(text) < minPageText {
		return "", fmt.Errorf("extracted only %d chars", len(text))
	}
	return text, nil
}

// renderJob flattens a normalized posting into the plain-text form the
// model prompt expects.
func renderJob(job *ats.JobData) string {
	var b strings.Builder

	b.WriteString(job.Title)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Company: %s\n", job.Client)

	if job.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", job.Location)
	}
	if job.Department != "" {
		fmt.Fprintf(&b, "Department: %s\n", job.Department)
	}
	if job.EmploymentType != "" {
		fmt.Fprintf(&b, "Employment type: %s\n", job.EmploymentType)
	}
	if job.Remote != nil {
		fmt.Fprintf(&b, "Remote: %t\n", *job.Remote)
	}
	if s := job.Salary; s != nil {
		var parts []string
		if s.Min != nil {
			parts = append(parts, fmt.Sprintf("from %.0f", *s.Min))
		}
		if s.Max != nil {
			parts = append(parts, fmt.Sprintf("to %.0f", *s.Max))
		}
		if s.Currency != "" {
			parts = append(parts, s.Currency)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, "Salary: %s\n", strings.Join(parts, " "))
		}
	}
	if job.PostedAt != "" {
		fmt.Fprintf(&b, "Posted: %s\n", job.PostedAt)
	}
	if job.ApplyURL != "" {
		fmt.Fprintf(&b, "Apply: %s\n", job.ApplyURL)
	}

	if job.Description != "" {
		b.WriteString("\n")
		b.WriteString(htmlToText(job.Description))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
