package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// flexNumber accepts salary bounds that arrive as numbers or numeric
// strings. Unparsable strings read as absent rather than failing the
// whole decode.
type flexNumber struct {
	value *float64
}

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return nil
		}
		f.value = &v
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

type recruiteeSalary struct {
	Min      flexNumber `json:"min"`
	Max      flexNumber `json:"max"`
	Period   string     `json:"period"`
	Currency string     `json:"currency"`
}

type recruiteeJob struct {
	ID                 int64            `json:"id"`
	Slug               string           `json:"slug"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Location           string           `json:"location"`
	City               string           `json:"city"`
	Country            string           `json:"country"`
	Department         string           `json:"department"`
	Requirements       string           `json:"requirements"`
	EmploymentTypeCode string           `json:"employment_type_code"`
	Remote             *bool            `json:"remote"`
	Hybrid             *bool            `json:"hybrid"`
	OnSite             *bool            `json:"on_site"`
	Salary             *recruiteeSalary `json:"salary"`
	CareersURL         string           `json:"careers_url"`
	CareersApplyURL    string           `json:"careers_apply_url"`
	PublishedAt        string           `json:"published_at"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`

	raw json.RawMessage
}

func (j *recruiteeJob) UnmarshalJSON(b []byte) error {
	type alias recruiteeJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = recruiteeJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

type recruiteeResponse struct {
	Offers []recruiteeJob `json:"offers"`
}

// fetchRecruiteeJobs talks to the tenant-hosted offers endpoint; the
// client slug is part of the hostname, so a base override replaces the
// whole host.
func fetchRecruiteeJobs(ctx context.Context, hc *http.Client, base, client string) (*recruiteeResponse, error) {
	if base == "" {
		base = fmt.Sprintf("https://%s.recruitee.com", client)
	}
	var out recruiteeResponse
	if err := getJSON(ctx, hc, PlatformRecruitee, base+"/api/offers", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeRecruiteeJob(job recruiteeJob, client string) JobData {
	var salary *Salary
	if job.Salary != nil {
		salary = &Salary{
			Min:      job.Salary.Min.value,
			Max:      job.Salary.Max.value,
			Currency: job.Salary.Currency,
		}
	}

	return JobData{
		Source:         PlatformRecruitee,
		Client:         client,
		JobID:          firstNonEmpty(job.Slug, strconv.FormatInt(job.ID, 10)),
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		Department:     job.Department,
		EmploymentType: job.EmploymentTypeCode,
		Remote:         job.Remote,
		Salary:         salary,
		ApplyURL:       firstNonEmpty(job.CareersURL, job.CareersApplyURL),
		PostedAt:       job.PublishedAt,
		Raw:            job.raw,
	}
}
