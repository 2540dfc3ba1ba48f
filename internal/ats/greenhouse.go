package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const greenhouseAPIBase = "https://api.greenhouse.io"

type greenhouseLocation struct {
	Name string `json:"name"`
}

type greenhouseDepartment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type greenhouseMetadata struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type greenhouseOffice struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type greenhouseJob struct {
	ID             int64                  `json:"id"`
	Title          string                 `json:"title"`
	Content        string                 `json:"content"`
	Location       *greenhouseLocation    `json:"location"`
	Departments    []greenhouseDepartment `json:"departments"`
	EmploymentType string                 `json:"employment_type"`
	AbsoluteURL    string                 `json:"absolute_url"`
	UpdatedAt      string                 `json:"updated_at"`
	InternalJobID  int64                  `json:"internal_job_id"`
	CompanyName    string                 `json:"company_name"`
	Metadata       []greenhouseMetadata   `json:"metadata"`
	Offices        []greenhouseOffice     `json:"offices"`
	RequisitionID  string                 `json:"requisition_id"`
	FirstPublished string                 `json:"first_published"`

	raw json.RawMessage
}

func (j *greenhouseJob) UnmarshalJSON(b []byte) error {
	type alias greenhouseJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = greenhouseJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func fetchGreenhouseJobs(ctx context.Context, hc *http.Client, base, client string) (*greenhouseResponse, error) {
	if base == "" {
		base = greenhouseAPIBase
	}
	u := fmt.Sprintf("%s/v1/boards/%s/jobs?content=true", base, url.PathEscape(client))
	var out greenhouseResponse
	if err := getJSON(ctx, hc, PlatformGreenhouse, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func fetchGreenhouseJob(ctx context.Context, hc *http.Client, base, client, jobID string) (*greenhouseJob, error) {
	if base == "" {
		base = greenhouseAPIBase
	}
	u := fmt.Sprintf("%s/v1/boards/%s/jobs/%s", base, url.PathEscape(client), url.PathEscape(jobID))
	var out greenhouseJob
	if err := getJSON(ctx, hc, PlatformGreenhouse, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeGreenhouseJob(job greenhouseJob, client string) JobData {
	// Boards stash the employment type in a metadata entry; the flat
	// field is a fallback.
	employmentType := job.EmploymentType
	for _, meta := range job.Metadata {
		if meta.Name != "Employment Type" {
			continue
		}
		switch v := meta.Value.(type) {
		case string:
			employmentType = v
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					employmentType = s
				}
			}
		}
		break
	}

	locationName := ""
	if job.Location != nil {
		locationName = job.Location.Name
	}

	// Greenhouse is the one platform where the remote flag is always
	// present: a missing location reads as not remote rather than
	// unknown.
	remote := strings.Contains(strings.ToLower(locationName), "remote")

	department := ""
	if len(job.Departments) > 0 {
		department = job.Departments[0].Name
	}

	return JobData{
		Source:         PlatformGreenhouse,
		Client:         client,
		JobID:          strconv.FormatInt(job.ID, 10),
		Title:          job.Title,
		Description:    job.Content,
		Location:       locationName,
		Department:     department,
		EmploymentType: employmentType,
		Remote:         boolPtr(remote),
		ApplyURL:       job.AbsoluteURL,
		PostedAt:       job.UpdatedAt,
		Raw:            job.raw,
	}
}
