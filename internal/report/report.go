// Package report renders assessment results.
//
// Text output streams one line per finding as checks complete, followed by a
// summary and next-steps block. JSON and YAML output encode the whole Report
// once the run is over, for operators who keep a record of the assessment.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/readiness"
)

// Report is the machine readable form of one assessment run.
type Report struct {
	GeneratedAt  time.Time          `json:"generated_at" yaml:"generated_at"`
	AccountID    string             `json:"account_id" yaml:"account_id"`
	CallerARN    string             `json:"caller_arn" yaml:"caller_arn"`
	Region       string             `json:"region" yaml:"region"`
	RegionSource string             `json:"region_source" yaml:"region_source"`
	ManagedShell bool               `json:"managed_shell" yaml:"managed_shell"`
	Results      []readiness.Result `json:"results" yaml:"results"`
	Summary      readiness.Summary  `json:"summary" yaml:"summary"`
	Ready        bool               `json:"ready" yaml:"ready"`
}

// New assembles a Report from a finished run.
func New(actx *readiness.Context, results []readiness.Result) *Report {
	summary := readiness.Summarize(results)
	return &Report{
		GeneratedAt:  actx.StartedAt,
		AccountID:    actx.AccountID,
		CallerARN:    actx.CallerARN,
		Region:       actx.Region,
		RegionSource: string(actx.RegionSource),
		ManagedShell: actx.ManagedShell,
		Results:      results,
		Summary:      summary,
		Ready:        summary.Ready(),
	}
}

// Encode writes the report in the given format (json or yaml)
func Encode(w io.Writer, rep *Report, format string) error {
	var data []byte
	var err error

	switch strings.ToLower(format) {
	case "json":
		data, err = json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report JSON: %w", err)
		}
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = yaml.Marshal(rep)
		if err != nil {
			return fmt.Errorf("failed to marshal report YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
