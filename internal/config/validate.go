package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills unset fields with workable defaults and
// reports anything that would make the service misbehave.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	if strings.TrimSpace(out.App.Host) == "" {
		out.App.Host = "127.0.0.1"
	}
	if out.App.Port == 0 {
		out.App.Port = 8090
	}
	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be in 1..65535, got %d", out.App.Port)
	}

	if strings.TrimSpace(out.LLM.Model) == "" {
		out.LLM.Model = "gemini-2.0-flash"
	}
	if out.LLM.MaxOutputTokens < 0 {
		res.addErr("llm.max_output_tokens must be >= 0")
	}

	if out.Customize.MaxInputChars == 0 {
		out.Customize.MaxInputChars = 100_000
	}
	if out.Customize.MaxInputChars < 0 {
		res.addErr("customize.max_input_chars must be >= 0")
	} else if out.Customize.MaxInputChars < 1000 {
		res.addWarn("customize.max_input_chars is very low (%d); most postings will be rejected.", out.Customize.MaxInputChars)
	}

	if out.JobText.PerHostRPS == 0 {
		out.JobText.PerHostRPS = 1
	}
	if out.JobText.PerHostRPS < 0 {
		res.addErr("jobtext.per_host_rps must be > 0")
	}
	if out.JobText.Burst == 0 {
		out.JobText.Burst = 2
	}
	if out.JobText.Burst < 0 {
		res.addErr("jobtext.burst must be > 0")
	}
	if out.JobText.TimeoutSeconds == 0 {
		out.JobText.TimeoutSeconds = 20
	}
	if out.JobText.TimeoutSeconds < 0 {
		res.addErr("jobtext.timeout_seconds must be > 0")
	} else if out.JobText.TimeoutSeconds > 120 {
		res.addWarn("jobtext.timeout_seconds is very high (%d); slow career pages will hold requests open.", out.JobText.TimeoutSeconds)
	}

	return out, res
}
