package readiness

import (
	"context"
	"errors"
	"fmt"

	slogctx "github.com/veqryn/slog-context"
)

// errEmptyResponse stands in for a call that succeeded without the data asked for.
var errEmptyResponse = errors.New("empty response")

// Severity classifies a single finding.
type Severity string

const (
	SeverityOK       Severity = "OK"
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists every severity from least to most serious.
var Severities = []Severity{SeverityOK, SeverityInfo, SeverityWarning, SeverityCritical}

// Rank orders severities so the worst finding of a result can be picked.
func (s Severity) Rank() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// Finding is one classified line of output.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// Result is what a check returns. Data carries structured detail for
// machine readable output.
type Result struct {
	CheckID  string            `json:"id" yaml:"id"`
	Title    string            `json:"title" yaml:"title"`
	Findings []Finding         `json:"findings" yaml:"findings"`
	Data     map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// Worst returns the most serious severity among the findings.
func (r Result) Worst() Severity {
	worst := SeverityOK
	for _, f := range r.Findings {
		if f.Severity.Rank() > worst.Rank() {
			worst = f.Severity
		}
	}
	return worst
}

// Has reports whether any finding carries the given severity.
func (r Result) Has(s Severity) bool {
	for _, f := range r.Findings {
		if f.Severity == s {
			return true
		}
	}
	return false
}

func (r *Result) add(s Severity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: s, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) set(key, value string) {
	if r.Data == nil {
		r.Data = map[string]string{}
	}
	r.Data[key] = value
}

// cannotDetermine swallows err and records the CRITICAL fallback line.
func (r *Result) cannotDetermine(ctx context.Context, what string, err error) {
	slogctx.Debug(ctx, "check call failed", "what", what, "error", err)
	r.add(SeverityCritical, "Cannot determine %s (check permissions or that the service is enabled)", what)
}

// Summary counts findings per severity across a run.
type Summary struct {
	OK       int `json:"ok" yaml:"ok"`
	Info     int `json:"info" yaml:"info"`
	Warning  int `json:"warning" yaml:"warning"`
	Critical int `json:"critical" yaml:"critical"`
}

// Summarize tallies the findings of all results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		for _, f := range r.Findings {
			switch f.Severity {
			case SeverityOK:
				s.OK++
			case SeverityInfo:
				s.Info++
			case SeverityWarning:
				s.Warning++
			case SeverityCritical:
				s.Critical++
			}
		}
	}
	return s
}

// Ready reports whether nothing blocks installation.
func (s Summary) Ready() bool {
	return s.Critical == 0
}
