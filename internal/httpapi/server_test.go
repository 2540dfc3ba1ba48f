package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"jobflow/internal/ai"
	"jobflow/internal/ats"
	"jobflow/internal/resume"
	"jobflow/internal/store"
)

const testToken = "test-token"

type memDocs struct {
	m map[string][]byte
}

func (d *memDocs) GetDocument(ctx context.Context, name string) ([]byte, error) {
	b, ok := d.m[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return b, nil
}

func (d *memDocs) PutDocument(ctx context.Context, name string, content []byte) error {
	if d.m == nil {
		d.m = make(map[string][]byte)
	}
	d.m[name] = content
	return nil
}

type stubJobs struct {
	job  *ats.JobData
	jobs []ats.JobData
	err  error
}

func (s *stubJobs) Resolve(ctx context.Context, rawURL string) (*ats.JobData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.job, nil
}

func (s *stubJobs) ResolveAll(ctx context.Context, rawURL string) ([]ats.JobData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.jobs, nil
}

type stubExtractor struct{}

func (stubExtractor) GetJobText(ctx context.Context, input string) string { return input }

type stubCustomizer struct {
	result *ai.Result
	err    error
}

func (s *stubCustomizer) Customize(ctx context.Context, jobText string, res resume.Resume) (*ai.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type testEnv struct {
	srv  *httptest.Server
	docs *memDocs
	jobs *stubJobs
	llm  *stubCustomizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		docs: &memDocs{},
		jobs: &stubJobs{},
		llm:  &stubCustomizer{},
	}
	router := NewRouter(Deps{
		Logger:        zap.NewNop(),
		Resume:        resume.NewService(env.docs),
		Customizer:    env.llm,
		JobText:       stubExtractor{},
		Jobs:          env.jobs,
		Token:         testToken,
		MaxInputChars: 1000,
	})
	env.srv = httptest.NewServer(router)
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body string, authed bool) (*http.Response, []byte) {
	t.Helper()
	var rdr *bytes.Reader
	if body == "" {
		rdr = bytes.NewReader(nil)
	} else {
		rdr = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	if err != nil {
		t.Fatal(err)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func (e *testEnv) putResume(t *testing.T) {
	t.Helper()
	resp, body := e.do(t, http.MethodPut, "/resume", `{"basics":{"name":"Ada Lovelace"}}`, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put resume: status %d body %s", resp.StatusCode, body)
	}
}

func TestHealthNoAuth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/health", "", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "ok" || got["service"] != "jobflow" {
		t.Errorf("body = %s", body)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/resume", "/ats/match?url=x", "/customize"} {
		resp, _ := env.do(t, http.MethodGet, path, "", false)
		if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("%s without token: status = %d", path, resp.StatusCode)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, env.srv.URL+"/resume", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d", resp.StatusCode)
	}
}

func TestResumeRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/resume", "", true)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get before put: status = %d", resp.StatusCode)
	}

	env.putResume(t)

	resp, body := env.do(t, http.MethodGet, "/resume", "", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get after put: status = %d", resp.StatusCode)
	}
	var res resume.Resume
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatal(err)
	}
	if res.Basics.Name != "Ada Lovelace" {
		t.Errorf("name = %q", res.Basics.Name)
	}
}

func TestResumePutRejectsMissingName(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodPut, "/resume", `{"basics":{"label":"Engineer"}}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d body %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "basics.name") {
		t.Errorf("body = %s", body)
	}
}

func TestCustomizeValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/customize", "{not json", true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid json: status = %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPost, "/customize", `{"input":"   "}`, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty input: status = %d", resp.StatusCode)
	}

	big := strings.Repeat("x", 2000)
	resp, _ = env.do(t, http.MethodPost, "/customize", `{"input":"`+big+`"}`, true)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized input: status = %d", resp.StatusCode)
	}
}

func TestCustomizeMissingResume(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodPost, "/customize", `{"input":"Go developer wanted"}`, true)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "resume_missing") {
		t.Errorf("body = %s", body)
	}
}

func TestCustomizeHappyPath(t *testing.T) {
	env := newTestEnv(t)
	env.putResume(t)

	var customized resume.Resume
	customized.Basics.Name = "Ada Lovelace"
	customized.Basics.Summary = "Go-focused engineer"
	env.llm.result = &ai.Result{
		Job: ai.ParsedJob{Title: "Go Developer", Company: "Acme"},
		Customized: customized,
		Changes: []ai.Change{{
			Section: "basics.summary", Field: "summary",
			Before: "", After: "Go-focused engineer", Rationale: "match posting",
		}},
		Reasoning: "Focused the summary.",
	}

	resp, body := env.do(t, http.MethodPost, "/customize", `{"input":"Go developer wanted"}`, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body %s", resp.StatusCode, body)
	}

	var got CustomizeResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Job.Title != "Go Developer" {
		t.Errorf("job title = %q", got.Job.Title)
	}
	if got.Original == nil || got.Original.Basics.Name != "Ada Lovelace" {
		t.Errorf("original = %+v", got.Original)
	}
	if got.Customized.Basics.Summary != "Go-focused engineer" {
		t.Errorf("customized = %+v", got.Customized)
	}
	if len(got.Changes) != 1 || got.Reasoning == "" {
		t.Errorf("changes = %+v reasoning = %q", got.Changes, got.Reasoning)
	}
}

func TestCustomizeParseError(t *testing.T) {
	env := newTestEnv(t)
	env.putResume(t)
	env.llm.err = &ai.ParseError{Raw: "not json at all", Err: errors.New("invalid character 'n'")}

	resp, body := env.do(t, http.MethodPost, "/customize", `{"input":"Go developer wanted"}`, true)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "llm_parse_error") || !strings.Contains(string(body), "not json at all") {
		t.Errorf("body = %s", body)
	}
}

func TestCustomizeModelError(t *testing.T) {
	env := newTestEnv(t)
	env.putResume(t)
	env.llm.err = errors.New("quota exceeded")

	resp, body := env.do(t, http.MethodPost, "/customize", `{"input":"Go developer wanted"}`, true)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "llm_error") {
		t.Errorf("body = %s", body)
	}
}

func TestATSMatch(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/ats/match", "", true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing url: status = %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodGet, "/ats/match?url=https://example.com/careers", "", true)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown host: status = %d", resp.StatusCode)
	}

	resp, body := env.do(t, http.MethodGet,
		"/ats/match?url=https://boards.greenhouse.io/acme/jobs/42", "", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var m ats.Match
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatal(err)
	}
	if m.Platform != ats.PlatformGreenhouse || m.Client != "acme" || m.JobID != "42" {
		t.Errorf("match = %+v", m)
	}
}

func TestATSJobErrors(t *testing.T) {
	env := newTestEnv(t)

	env.jobs.err = ats.ErrJobNotFound
	resp, _ := env.do(t, http.MethodGet, "/ats/job?url=https://boards.greenhouse.io/acme/jobs/42", "", true)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("not found: status = %d", resp.StatusCode)
	}

	env.jobs.err = &ats.FetchError{Platform: ats.PlatformGreenhouse, Status: 503}
	resp, body := env.do(t, http.MethodGet, "/ats/job?url=https://boards.greenhouse.io/acme/jobs/42", "", true)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("upstream error: status = %d body %s", resp.StatusCode, body)
	}
}

func TestATSJobsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	env.jobs.jobs = nil

	resp, body := env.do(t, http.MethodGet, "/ats/jobs?url=https://boards.greenhouse.io/acme", "", true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %q, want empty array", body)
	}
}
