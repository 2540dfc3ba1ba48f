// Package ats resolves job-board URLs against the public APIs of seven
// hosted Applicant Tracking Systems and normalizes their payloads into
// one common JobData shape.
//
// Supported platforms (no authentication required): Workable,
// Greenhouse, Lever, Ashby, Recruitee, Gem, SmartRecruiters.
package ats

import "encoding/json"

// Platform identifies one of the supported ATS providers.
type Platform string

const (
	PlatformWorkable        Platform = "workable"
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformAshby           Platform = "ashby"
	PlatformRecruitee       Platform = "recruitee"
	PlatformGem             Platform = "gem"
	PlatformSmartRecruiters Platform = "smartrecruiters"
)

// Platforms returns the supported platforms in matcher table order.
func Platforms() []Platform {
	return []Platform{
		PlatformWorkable,
		PlatformGreenhouse,
		PlatformLever,
		PlatformAshby,
		PlatformRecruitee,
		PlatformGem,
		PlatformSmartRecruiters,
	}
}

// Match is the result of recognizing an ATS URL: which platform it
// belongs to, the tenant slug embedded in the URL, and the job id when
// the URL points at a single posting. It is request-scoped and never
// persisted.
type Match struct {
	Platform Platform `json:"platform"`
	Client   string   `json:"client"`
	JobID    string   `json:"jobId,omitempty"`
}

// Salary carries whatever compensation range a platform exposes. All
// fields are independently optional.
type Salary struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// JobData is the common posting record every platform normalizes into.
// Optional fields are omitted from JSON when absent, never emitted as
// null. Remote is a tri-state: nil means the platform gave no signal.
// Raw holds the upstream payload for the job exactly as received;
// normalization never touches it.
type JobData struct {
	Source         Platform        `json:"source"`
	Client         string          `json:"client"`
	JobID          string          `json:"jobId,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Location       string          `json:"location,omitempty"`
	Department     string          `json:"department,omitempty"`
	EmploymentType string          `json:"employmentType,omitempty"`
	Remote         *bool           `json:"remote,omitempty"`
	Salary         *Salary         `json:"salary,omitempty"`
	ApplyURL       string          `json:"applyUrl,omitempty"`
	PostedAt       string          `json:"postedAt,omitempty"`
	Raw            json.RawMessage `json:"raw,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

// firstNonEmpty returns the first string that is not empty.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// joinNonEmpty joins the non-empty parts with ", ".
func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
