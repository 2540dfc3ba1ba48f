package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const leverAPIBase = "https://api.lever.co"

type leverCategories struct {
	Location     string   `json:"location"`
	Department   string   `json:"department"`
	Commitment   string   `json:"commitment"`
	Team         string   `json:"team"`
	AllLocations []string `json:"allLocations"`
}

type leverSalaryRange struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
	Interval string   `json:"interval"`
}

type leverJob struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	Description      string            `json:"description"`
	DescriptionPlain string            `json:"descriptionPlain"`
	Additional       string            `json:"additional"`
	AdditionalPlain  string            `json:"additionalPlain"`
	Opening          string            `json:"opening"`
	OpeningPlain     string            `json:"openingPlain"`
	Categories       *leverCategories  `json:"categories"`
	WorkplaceType    string            `json:"workplaceType"`
	SalaryRange      *leverSalaryRange `json:"salaryRange"`
	ApplyURL         string            `json:"applyUrl"`
	HostedURL        string            `json:"hostedUrl"`
	CreatedAt        int64             `json:"createdAt"` // ms epoch
	Country          string            `json:"country"`

	raw json.RawMessage
}

func (j *leverJob) UnmarshalJSON(b []byte) error {
	type alias leverJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = leverJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

func fetchLeverJobs(ctx context.Context, hc *http.Client, base, client string) ([]leverJob, error) {
	if base == "" {
		base = leverAPIBase
	}
	u := fmt.Sprintf("%s/v0/postings/%s", base, url.PathEscape(client))
	var out []leverJob
	if err := getJSON(ctx, hc, PlatformLever, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fetchLeverJob(ctx context.Context, hc *http.Client, base, client, jobID string) (*leverJob, error) {
	if base == "" {
		base = leverAPIBase
	}
	u := fmt.Sprintf("%s/v0/postings/%s/%s", base, url.PathEscape(client), url.PathEscape(jobID))
	var out leverJob
	if err := getJSON(ctx, hc, PlatformLever, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeLeverJob(job leverJob, client string) JobData {
	location := ""
	department := ""
	commitment := ""
	if job.Categories != nil {
		location = job.Categories.Location
		department = job.Categories.Department
		commitment = job.Categories.Commitment
	}

	var remote *bool
	if job.WorkplaceType == "remote" {
		remote = boolPtr(true)
	} else if location != "" {
		remote = boolPtr(strings.Contains(strings.ToLower(location), "remote"))
	}

	var salary *Salary
	if job.SalaryRange != nil {
		salary = &Salary{
			Min:      job.SalaryRange.Min,
			Max:      job.SalaryRange.Max,
			Currency: job.SalaryRange.Currency,
		}
	}

	// Lever is the only platform that ships an epoch timestamp; it is
	// converted here, every other normalizer passes dates through.
	postedAt := ""
	if job.CreatedAt > 0 {
		postedAt = time.UnixMilli(job.CreatedAt).UTC().Format("2006-01-02T15:04:05.000Z")
	}

	return JobData{
		Source:         PlatformLever,
		Client:         client,
		JobID:          job.ID,
		Title:          job.Text,
		Description:    firstNonEmpty(job.DescriptionPlain, job.Description),
		Location:       location,
		Department:     department,
		EmploymentType: commitment,
		Remote:         remote,
		Salary:         salary,
		ApplyURL:       firstNonEmpty(job.ApplyURL, job.HostedURL),
		PostedAt:       postedAt,
		Raw:            job.raw,
	}
}
