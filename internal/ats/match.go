package ats

import "regexp"

// platformPatterns pairs a platform with its URL patterns. Order
// matters twice: platforms are tried in table order and patterns in
// list order, so a URL that could satisfy two entries always resolves
// the same way. In practice every platform owns its own hostnames.
type platformPatterns struct {
	platform Platform
	patterns []*regexp.Regexp
}

// First capture group is the client slug, optional second group the
// job id. A pattern only counts as a match when the client group is
// non-empty.
var atsPatterns = []platformPatterns{
	{PlatformWorkable, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^https?://apply\.workable\.com/([^/]+)(?:/j/([A-Z0-9]+))?`),
		regexp.MustCompile(`(?i)^https?://([^.]+)\.workable\.com/(?:j/([A-Z0-9]+))?`),
	}},
	{PlatformGreenhouse, []*regexp.Regexp{
		// job-boards. must precede the tenant-host pattern: it is a
		// shared host with the client in the path, and the tenant
		// pattern would otherwise capture "job-boards" as the client.
		regexp.MustCompile(`(?i)^https?://boards\.greenhouse\.io/([^/]+)(?:/jobs/(\d+))?`),
		regexp.MustCompile(`(?i)^https?://job-boards\.greenhouse\.io/([^/]+)(?:/jobs/(\d+))?`),
		regexp.MustCompile(`(?i)^https?://([^.]+)\.greenhouse\.io/(?:jobs/(\d+))?`),
	}},
	{PlatformLever, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^https?://jobs\.lever\.co/([^/]+)(?:/([a-f0-9-]+))?`),
	}},
	{PlatformAshby, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^https?://jobs\.ashbyhq\.com/([^/]+)(?:/([a-f0-9-]+))?`),
	}},
	{PlatformRecruitee, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^https?://([^.]+)\.recruitee\.com(?:/o/([^/]+))?`),
	}},
	{PlatformGem, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^https?://jobs\.gem\.com/([^/]+)(?:/([^/]+))?`),
	}},
	{PlatformSmartRecruiters, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^https?://jobs\.smartrecruiters\.com/([^/]+)(?:/([^/]+))?`),
		regexp.MustCompile(`(?i)^https?://careers\.smartrecruiters\.com/([^/]+)(?:/([^/]+))?`),
	}},
}

// MatchURL maps a raw URL to the platform, client slug and optional
// job id it encodes. It returns nil when no pattern matches or when
// every matching pattern captured an empty client. Pure function, no
// I/O.
func MatchURL(url string) *Match {
	for _, entry := range atsPatterns {
		for _, pattern := range entry.patterns {
			m := pattern.FindStringSubmatch(url)
			if m == nil || m[1] == "" {
				continue
			}
			match := &Match{Platform: entry.platform, Client: m[1]}
			if len(m) > 2 {
				match.JobID = m[2]
			}
			return match
		}
	}
	return nil
}

// IsKnownATSURL reports whether the URL belongs to a supported
// platform. Equivalent to MatchURL(url) != nil.
func IsKnownATSURL(url string) bool {
	return MatchURL(url) != nil
}

// ATSPlatform returns the platform a URL belongs to, if any.
func ATSPlatform(url string) (Platform, bool) {
	m := MatchURL(url)
	if m == nil {
		return "", false
	}
	return m.Platform, true
}
