package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const smartRecruitersAPIBase = "https://api.smartrecruiters.com"

type smartRecruitersLocation struct {
	City         string `json:"city"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	Remote       *bool  `json:"remote"`
	Hybrid       *bool  `json:"hybrid"`
	FullLocation string `json:"fullLocation"`
}

type smartRecruitersLabel struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
}

type smartRecruitersSection struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type smartRecruitersJobAd struct {
	Sections *struct {
		CompanyDescription    *smartRecruitersSection `json:"companyDescription"`
		JobDescription        *smartRecruitersSection `json:"jobDescription"`
		Qualifications        *smartRecruitersSection `json:"qualifications"`
		AdditionalInformation *smartRecruitersSection `json:"additionalInformation"`
	} `json:"sections"`
}

type smartRecruitersJob struct {
	ID               string                   `json:"id"`
	UUID             string                   `json:"uuid"`
	Name             string                   `json:"name"`
	RefNumber        string                   `json:"refNumber"`
	Ref              string                   `json:"ref"`
	JobAd            *smartRecruitersJobAd    `json:"jobAd"`
	Location         *smartRecruitersLocation `json:"location"`
	Department       *smartRecruitersLabel    `json:"department"`
	TypeOfEmployment *smartRecruitersLabel    `json:"typeOfEmployment"`
	ExperienceLevel  *smartRecruitersLabel    `json:"experienceLevel"`
	ApplyURL         string                   `json:"applyUrl"`
	PostingURL       string                   `json:"postingUrl"`
	ReleasedDate     string                   `json:"releasedDate"`

	raw json.RawMessage
}

func (j *smartRecruitersJob) UnmarshalJSON(b []byte) error {
	type alias smartRecruitersJob
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*j = smartRecruitersJob(a)
	j.raw = append(json.RawMessage(nil), b...)
	return nil
}

type smartRecruitersResponse struct {
	Content    []smartRecruitersJob `json:"content"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
	TotalFound int                  `json:"totalFound"`
}

func fetchSmartRecruitersJobs(ctx context.Context, hc *http.Client, base, client string) (*smartRecruitersResponse, error) {
	if base == "" {
		base = smartRecruitersAPIBase
	}
	u := fmt.Sprintf("%s/v1/companies/%s/postings", base, url.PathEscape(client))
	var out smartRecruitersResponse
	if err := getJSON(ctx, hc, PlatformSmartRecruiters, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func fetchSmartRecruitersJob(ctx context.Context, hc *http.Client, base, client, jobID string) (*smartRecruitersJob, error) {
	if base == "" {
		base = smartRecruitersAPIBase
	}
	u := fmt.Sprintf("%s/v1/companies/%s/postings/%s", base, url.PathEscape(client), url.PathEscape(jobID))
	var out smartRecruitersJob
	if err := getJSON(ctx, hc, PlatformSmartRecruiters, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeSmartRecruitersJob(job smartRecruitersJob, client string) JobData {
	location := ""
	var remote *bool
	if job.Location != nil {
		location = joinNonEmpty(job.Location.City, job.Location.Region, job.Location.Country)
		location = firstNonEmpty(location, job.Location.FullLocation)
		remote = job.Location.Remote
	}

	description := ""
	if job.JobAd != nil && job.JobAd.Sections != nil && job.JobAd.Sections.JobDescription != nil {
		description = job.JobAd.Sections.JobDescription.Text
	}

	department := ""
	if job.Department != nil {
		department = job.Department.Label
	}
	employmentType := ""
	if job.TypeOfEmployment != nil {
		employmentType = job.TypeOfEmployment.Label
	}

	return JobData{
		Source:         PlatformSmartRecruiters,
		Client:         client,
		JobID:          firstNonEmpty(job.ID, job.UUID),
		Title:          firstNonEmpty(job.Name, job.RefNumber, job.ID, job.UUID, "Unknown role"),
		Description:    description,
		Location:       location,
		Department:     department,
		EmploymentType: employmentType,
		Remote:         remote,
		ApplyURL:       firstNonEmpty(job.Ref, job.ApplyURL),
		PostedAt:       job.ReleasedDate,
		Raw:            job.raw,
	}
}
