package ats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testResolver(t *testing.T, platform Platform, handler http.Handler) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	r := NewResolver(zap.NewNop())
	r.SetBaseURL(platform, srv.URL)
	return r
}

func TestFetchJobFromURLGreenhouseList(t *testing.T) {
	var gotPath string
	r := testResolver(t, PlatformGreenhouse, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs": [{"id": 42, "title": "Engineer", "location": {"name": "Remote - US"}}]}`))
	}))

	job := r.FetchJobFromURL(context.Background(), "https://boards.greenhouse.io/acme")
	if job == nil {
		t.Fatalf("expected a job")
	}
	if gotPath != "/v1/boards/acme/jobs" {
		t.Fatalf("unexpected list path %q", gotPath)
	}
	if job.Source != PlatformGreenhouse || job.Client != "acme" || job.JobID != "42" {
		t.Fatalf("identity fields wrong: %+v", job)
	}
	if job.Title != "Engineer" {
		t.Fatalf("title: got %q", job.Title)
	}
	if job.Remote == nil || !*job.Remote {
		t.Fatalf("remote location should set remote=true")
	}
}

func TestFetchJobFromURLUsesDirectEndpointWhenJobIDPresent(t *testing.T) {
	var gotPath string
	r := testResolver(t, PlatformLever, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		_, _ = w.Write([]byte(`{"id": "abc-123-def", "text": "Backend Engineer"}`))
	}))

	job := r.FetchJobFromURL(context.Background(), "https://jobs.lever.co/acme/abc-123-def")
	if job == nil {
		t.Fatalf("expected a job")
	}
	if gotPath != "/v0/postings/acme/abc-123-def" {
		t.Fatalf("expected the single-posting endpoint, got %q", gotPath)
	}
	if job.JobID != "abc-123-def" || job.Title != "Backend Engineer" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestFetchJobFromURLWorkableShortcodeCaseInsensitive(t *testing.T) {
	r := testResolver(t, PlatformWorkable, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": [{"shortcode": "AB12CD", "title": "Data Engineer"}]}`))
	}))

	job := r.FetchJobFromURL(context.Background(), "https://apply.workable.com/acme/j/ab12cd")
	if job == nil {
		t.Fatalf("expected shortcode match to be case-insensitive")
	}
	if job.JobID != "AB12CD" {
		t.Fatalf("jobID should come from the payload, got %q", job.JobID)
	}
}

func TestFetchJobFromURLUpstreamErrorYieldsNil(t *testing.T) {
	r := testResolver(t, PlatformGreenhouse, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	if job := r.FetchJobFromURL(context.Background(), "https://boards.greenhouse.io/acme"); job != nil {
		t.Fatalf("upstream 404 must collapse to nil, got %+v", job)
	}

	_, err := r.Resolve(context.Background(), "https://boards.greenhouse.io/acme")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusNotFound || fe.Platform != PlatformGreenhouse {
		t.Fatalf("expected typed fetch error, got %v", err)
	}
}

func TestFetchJobFromURLMalformedBody(t *testing.T) {
	r := testResolver(t, PlatformGem, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`<!doctype html>`))
	}))

	if job := r.FetchJobFromURL(context.Background(), "https://jobs.gem.com/acme"); job != nil {
		t.Fatalf("malformed body must collapse to nil")
	}
	_, err := r.Resolve(context.Background(), "https://jobs.gem.com/acme")
	var de *DecodeError
	if !errors.As(err, &de) || de.Platform != PlatformGem {
		t.Fatalf("expected typed decode error, got %v", err)
	}
}

func TestFetchJobFromURLJobMissingFromList(t *testing.T) {
	r := testResolver(t, PlatformAshby, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": [{"id": "other", "title": "Engineer"}]}`))
	}))

	if job := r.FetchJobFromURL(context.Background(), "https://jobs.ashbyhq.com/acme/0f3a1c2d"); job != nil {
		t.Fatalf("absent job id must yield nil")
	}
	_, err := r.Resolve(context.Background(), "https://jobs.ashbyhq.com/acme/0f3a1c2d")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestResolveUnrecognizedURLWithoutNetwork(t *testing.T) {
	r := NewResolver(zap.NewNop())
	r.SetHTTPClient(&http.Client{Transport: failingTransport{}})

	if job := r.FetchJobFromURL(context.Background(), "https://example.com/careers"); job != nil {
		t.Fatalf("unknown host must yield nil")
	}
	if jobs := r.FetchAllJobsFromURL(context.Background(), "https://example.com/careers"); jobs != nil {
		t.Fatalf("unknown host must yield nil for aggregate fetch")
	}
	_, err := r.Resolve(context.Background(), "https://example.com/careers")
	if !errors.Is(err, ErrUnrecognizedURL) {
		t.Fatalf("expected ErrUnrecognizedURL, got %v", err)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network call not allowed in this test")
}

func TestFetchAllJobsFromURLAlwaysUsesListEndpoint(t *testing.T) {
	var gotPath string
	r := testResolver(t, PlatformGreenhouse, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		_, _ = w.Write([]byte(`{"jobs": [
			{"id": 1, "title": "One"},
			{"id": 2, "title": "Two", "location": {"name": "Remote"}}
		]}`))
	}))

	jobs := r.FetchAllJobsFromURL(context.Background(), "https://boards.greenhouse.io/acme/jobs/42")
	if gotPath != "/v1/boards/acme/jobs" {
		t.Fatalf("aggregate fetch must hit the list endpoint, got %q", gotPath)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].JobID != "1" || jobs[1].JobID != "2" {
		t.Fatalf("upstream order must be preserved: %+v", jobs)
	}
}

func TestFetchAllJobsFromURLAllOrNothing(t *testing.T) {
	r := testResolver(t, PlatformRecruitee, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	if jobs := r.FetchAllJobsFromURL(context.Background(), "https://acme.recruitee.com"); jobs != nil {
		t.Fatalf("upstream failure must not yield partial results")
	}
}
