package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const gemAPIBase = "https://api.gem.com"

type gemLocation struct {
	Name string `json:"name"`
}

type gemDepartment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type gemJob struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	AbsoluteURL      string          `json:"absolute_url"`
	Content          string          `json:"content"`
	ContentPlain     string          `json:"content_plain"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
	FirstPublishedAt string          `json:"first_published_at"`
	EmploymentType   string          `json:"employment_type"`
	Location         *gemLocation    `json:"location"`
	LocationType     string          `json:"location_type"`
	Departments      []gemDepartment `json:"departments"`

	raw json.RawMessage
}

func (j *gemJob) UnmarshalJSON(b []byte) error {
	type alias gemJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = gemJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

// fetchGemJobs returns the board's postings; the response is a bare
// array, not an envelope.
func fetchGemJobs(ctx context.Context, hc *http.Client, base, client string) ([]gemJob, error) {
	if base == "" {
		base = gemAPIBase
	}
	u := fmt.Sprintf("%s/job_board/v0/%s/job_posts/", base, url.PathEscape(client))
	var out []gemJob
	if err := getJSON(ctx, hc, PlatformGem, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Gem exposes neither a remote flag nor compensation; those fields
// stay unset.
func normalizeGemJob(job gemJob, client string) JobData {
	location := ""
	if job.Location != nil {
		location = job.Location.Name
	}
	department := ""
	if len(job.Departments) > 0 {
		department = job.Departments[0].Name
	}

	return JobData{
		Source:         PlatformGem,
		Client:         client,
		JobID:          job.ID,
		Title:          job.Title,
		Description:    firstNonEmpty(job.ContentPlain, job.Content),
		Location:       location,
		Department:     department,
		EmploymentType: job.EmploymentType,
		ApplyURL:       job.AbsoluteURL,
		PostedAt:       firstNonEmpty(job.FirstPublishedAt, job.CreatedAt, job.UpdatedAt),
		Raw:            job.raw,
	}
}
