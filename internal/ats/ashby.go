package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const ashbyAPIBase = "https://api.ashbyhq.com"

type ashbyCompensationSummary struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
}

type ashbyCompensation struct {
	CompensationTierSummary             *ashbyCompensationSummary `json:"compensationTierSummary"`
	ScrapeableCompensationSalarySummary *ashbyCompensationSummary `json:"scrapeableCompensationSalarySummary"`
}

type ashbyJob struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	DescriptionHTML  string             `json:"descriptionHtml"`
	DescriptionPlain string             `json:"descriptionPlain"`
	Location         string             `json:"location"`
	Department       string             `json:"department"`
	Team             string             `json:"team"`
	EmploymentType   string             `json:"employmentType"`
	IsRemote         *bool              `json:"isRemote"`
	IsListed         bool               `json:"isListed"`
	Compensation     *ashbyCompensation `json:"compensation"`
	ApplyURL         string             `json:"applyUrl"`
	JobURL           string             `json:"jobUrl"`
	PublishedAt      string             `json:"publishedAt"`

	raw json.RawMessage
}

func (j *ashbyJob) UnmarshalJSON(b []byte) error {
	type alias ashbyJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = ashbyJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

type ashbyResponse struct {
	APIVersion string     `json:"apiVersion"`
	Jobs       []ashbyJob `json:"jobs"`
}

func fetchAshbyJobs(ctx context.Context, hc *http.Client, base, client string) (*ashbyResponse, error) {
	if base == "" {
		base = ashbyAPIBase
	}
	u := fmt.Sprintf("%s/posting-api/job-board/%s?includeCompensation=true", base, url.PathEscape(client))
	var out ashbyResponse
	if err := getJSON(ctx, hc, PlatformAshby, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeAshbyJob(job ashbyJob, client string) JobData {
	var summary *ashbyCompensationSummary
	if job.Compensation != nil {
		summary = job.Compensation.CompensationTierSummary
		if summary == nil {
			summary = job.Compensation.ScrapeableCompensationSalarySummary
		}
	}

	var salary *Salary
	if summary != nil {
		salary = &Salary{Min: summary.Min, Max: summary.Max, Currency: summary.Currency}
	}

	return JobData{
		Source:         PlatformAshby,
		Client:         client,
		JobID:          job.ID,
		Title:          job.Title,
		Description:    firstNonEmpty(job.DescriptionHTML, job.DescriptionPlain),
		Location:       job.Location,
		Department:     job.Department,
		EmploymentType: job.EmploymentType,
		Remote:         job.IsRemote,
		Salary:         salary,
		ApplyURL:       firstNonEmpty(job.ApplyURL, job.JobURL),
		PostedAt:       job.PublishedAt,
		Raw:            job.raw,
	}
}
