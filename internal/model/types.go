/*
PURPOSE:
  Shared data types for the SecureSuite Member API.
  Mirrors the JSON shapes the WorkBench vendor endpoints return.

REQUIREMENTS:
  User-specified:
  - Represent a published benchmark with its formats and profiles.
  - Represent a cached API token with its expiry.

  Implementation-discovered:
  - The list endpoint wraps benchmarks in an envelope whose count field
    is literally named "Total number of results".

ARCHITECTURE INTEGRATION:
  - Used by: internal/workbench, internal/output, internal/cli

ERROR HANDLING:
  - N/A (plain data).

IMPLEMENTATION RULES:
  - JSON tags must match the vendor schema exactly; do not rename fields.

USAGE:
  var list model.BenchmarkList
  json.Unmarshal(data, &list)

SELF-HEALING INSTRUCTIONS:
  - If the vendor adds fields, extend the structs; unknown fields are ignored.

RELATED FILES:
  - internal/workbench/client.go

MAINTENANCE:
  - Update when the WorkBench API schema changes.
*/

package model

import (
	"strings"
	"time"
)

// Benchmark describes one published benchmark as returned by the
// /benchmarks listing endpoint.
type Benchmark struct {
	WorkbenchID      int64     `json:"workbenchId"`
	Title            string    `json:"benchmarkTitle"`
	Version          string    `json:"benchmarkVersion"`
	Status           string    `json:"benchmarkStatus"`
	AssessmentStatus string    `json:"assessmentStatus"`
	AvailableFormats []string  `json:"availableFormats"`
	Profiles         []Profile `json:"profiles"`
	PlatformID       string    `json:"platformId"`
	Assets           []Asset   `json:"assets"`
	BenchmarksURL    string    `json:"benchmarksUrl"`
}

// Profile is one configuration profile within a benchmark.
type Profile struct {
	Title string `json:"profileTitle"`
}

// Asset names a platform covered by a benchmark.
type Asset struct {
	Name string `json:"assetName"`
	CPE  string `json:"assetCpe"`
}

// BenchmarkList is the envelope the listing endpoint returns. Raw holds the
// undecoded response body so the saved list file keeps vendor fields this
// struct does not model.
type BenchmarkList struct {
	Benchmarks []Benchmark `json:"Benchmarks"`
	Total      int         `json:"Total number of results"`

	Raw []byte `json:"-"`
}

// HasFormat reports whether the benchmark advertises the given download
// format. Matching is case-insensitive on ASCII letters since the vendor
// is inconsistent about casing in older entries.
func (b Benchmark) HasFormat(format string) bool {
	for _, f := range b.AvailableFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// Automated reports whether the benchmark's assessment status is not Manual.
func (b Benchmark) Automated() bool {
	return b.AssessmentStatus != "Manual"
}

// TokenInfo is a SecureSuite API token together with its absolute expiry.
// Tokens are valid for twenty minutes from issue.
type TokenInfo struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Fresh reports whether the token is still usable at the given instant.
// A thirty second slack is applied so a token is never presented right at
// the edge of its lifetime.
func (t TokenInfo) Fresh(now time.Time) bool {
	if t.Token == "" || t.ExpiresAt.IsZero() {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-30 * time.Second))
}
