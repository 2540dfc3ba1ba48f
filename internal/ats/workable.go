package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const workableAPIBase = "https://apply.workable.com"

type workableLocation struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Hidden      bool   `json:"hidden"`
}

type workableSalary struct {
	SalaryFrom     *float64 `json:"salary_from"`
	SalaryTo       *float64 `json:"salary_to"`
	SalaryCurrency string   `json:"salary_currency"`
}

type workableJob struct {
	Shortcode       string             `json:"shortcode"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	FullDescription string             `json:"full_description"`
	Code            string             `json:"code"`
	Country         string             `json:"country"`
	City            string             `json:"city"`
	State           string             `json:"state"`
	Department      string             `json:"department"`
	EmploymentType  string             `json:"employment_type"`
	Telecommuting   *bool              `json:"telecommuting"`
	Remote          *bool              `json:"remote"`
	Locations       []workableLocation `json:"locations"`
	Salary          *workableSalary    `json:"salary"`
	ApplicationURL  string             `json:"application_url"`
	URL             string             `json:"url"`
	PublishedOn     string             `json:"published_on"`
	CreatedAt       string             `json:"created_at"`

	raw json.RawMessage
}

func (j *workableJob) UnmarshalJSON(b []byte) error {
	type alias workableJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = workableJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

type workableResponse struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Jobs        []workableJob `json:"jobs"`
}

// fetchWorkableJobs hits the public widget API. Workable has no
// single-job endpoint; callers filter the list by shortcode.
func fetchWorkableJobs(ctx context.Context, hc *http.Client, base, client string) (*workableResponse, error) {
	if base == "" {
		base = workableAPIBase
	}
	u := fmt.Sprintf("%s/api/v1/widget/accounts/%s", base, url.PathEscape(client))
	var out workableResponse
	if err := getJSON(ctx, hc, PlatformWorkable, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeWorkableJob(job workableJob, client string) JobData {
	var primary *workableLocation
	for i := range job.Locations {
		if !job.Locations[i].Hidden {
			primary = &job.Locations[i]
			break
		}
	}
	if primary == nil && len(job.Locations) > 0 {
		primary = &job.Locations[0]
	}

	location := ""
	if primary != nil {
		location = joinNonEmpty(primary.City, primary.Region, primary.Country)
	}
	location = firstNonEmpty(location, job.City, job.Country)

	// telecommuting wins when set true; otherwise whatever the remote
	// field says, including "no signal at all".
	remote := job.Remote
	if job.Telecommuting != nil && *job.Telecommuting {
		remote = boolPtr(true)
	}

	var salary *Salary
	if job.Salary != nil {
		salary = &Salary{
			Min:      job.Salary.SalaryFrom,
			Max:      job.Salary.SalaryTo,
			Currency: job.Salary.SalaryCurrency,
		}
	}

	return JobData{
		Source:         PlatformWorkable,
		Client:         client,
		JobID:          job.Shortcode,
		Title:          job.Title,
		Description:    firstNonEmpty(job.Description, job.FullDescription),
		Location:       location,
		Department:     job.Department,
		EmploymentType: job.EmploymentType,
		Remote:         remote,
		Salary:         salary,
		ApplyURL:       firstNonEmpty(job.ApplicationURL, job.URL),
		PostedAt:       firstNonEmpty(job.PublishedOn, job.CreatedAt),
		Raw:            job.raw,
	}
}
