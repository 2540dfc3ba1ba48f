// Package ai defines the resume customization contract the HTTP layer
// depends on, independent of any model provider.
package ai

import (
	"context"
	"fmt"

	"jobflow/internal/resume"
)

// ParsedJob is the structured reading of a job posting the model
// extracts alongside the rewritten resume.
type ParsedJob struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	Salary           string   `json:"salary,omitempty"`
	EmploymentType   string   `json:"employmentType,omitempty"`
	Remote           string   `json:"remote,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	NiceToHave       []string `json:"niceToHave,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
	TechStack        []string `json:"techStack,omitempty"`
	AboutCompany     string   `json:"aboutCompany,omitempty"`
	RawText          string   `json:"rawText,omitempty"`
}

// Change documents one edit the model made to the resume.
type Change struct {
	Section   string `json:"section"`
	Field     string `json:"field"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Rationale string `json:"rationale"`
}

// Result is the model's full answer to one customization request.
type Result struct {
	Job        ParsedJob     `json:"job"`
	Customized resume.Resume `json:"customized"`
	Changes    []Change      `json:"changes"`
	Reasoning  string        `json:"reasoning"`
}

// Customizer tailors a resume to a job posting in one model call.
type Customizer interface {
	Customize(ctx context.Context, jobText string, res resume.Resume) (*Result, error)
}

// ParseError reports a model reply that was not the JSON object the
// prompt demands. Raw carries the reply for the caller to surface.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
