package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"jobflow/internal/ai"
	"jobflow/internal/resume"
)

const systemPrompt = `You are an expert resume consultant who helps job seekers tailor their resumes to specific positions. You have deep knowledge of ATS systems, hiring practices, and effective resume writing.

Your task is to:
1. Parse and extract structured information from a job posting
2. Analyze how the candidate's existing resume aligns with the role
3. Suggest specific, targeted modifications to better match the position

## Critical Rules

- **Never fabricate experience**: Only reframe, reorder, or emphasize existing content
- **Preserve the candidate's voice**: Keep their writing style while improving clarity
- **Be specific**: Generic buzzwords hurt more than they help
- **Prioritize ATS compatibility**: Use keywords from the job posting naturally
- **Keep it honest**: If there's a gap, don't paper over it - the resume should be accurate

## Output Format

Respond with a JSON object matching this exact structure:

` + "```json" + `
{
  "job": {
    "title": "string",
    "company": "string",
    "location": "string or null",
    "salary": "string or null",
    "employmentType": "string or null",
    "remote": "string or null",
    "requirements": ["array of required qualifications"],
    "responsibilities": ["array of job responsibilities"],
    "niceToHave": ["array of preferred/bonus qualifications"],
    "benefits": ["array of benefits if listed"],
    "techStack": ["specific technologies mentioned"],
    "aboutCompany": "brief company description if present",
    "rawText": "original job text preserved"
  },
  "customized": {
    // Complete JSON Resume object with your modifications
  },
  "changes": [
    {
      "section": "which resume section (e.g., 'work', 'skills', 'basics.summary')",
      "field": "specific field changed",
      "before": "original text",
      "after": "modified text",
      "rationale": "why this change helps"
    }
  ],
  "reasoning": "2-3 paragraph explanation of your overall strategy and key recommendations"
}
` + "```" + `

Only output valid JSON. No markdown code fences, no commentary outside the JSON.`

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

// Customizer drives one Gemini call per customization request.
type Customizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

const defaultMaxLogLength = 200

func NewCustomizer(generator contentGenerator, logger *zap.Logger) *Customizer {
	return &Customizer{
		generator: generator,
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

func (c *Customizer) Customize(ctx context.Context, jobText string, res resume.Resume) (*ai.Result, error) {
	resumeJSON, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume payload: %w", err)
	}

	prompt := buildPrompt(jobText, string(resumeJSON))

	c.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", truncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncateForLog(raw, c.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(jobText, resumeJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job Posting:\n{{JOB_TEXT}}\n\nResume:\n{{RESUME_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_TEXT}}", jobText)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_JSON}}", resumeJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Result, error) {
	cleaned := extractJSON(raw)

	var result ai.Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ai.ParseError{Raw: raw, Err: err}
	}
	return &result, nil
}

// extractJSON strips the markdown code fence the model sometimes wraps
// its answer in despite instructions.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

func truncateForLog(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
