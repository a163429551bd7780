package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	for i, s := range Severities {
		assert.Equal(t, i, s.Rank(), s)
	}
	assert.Equal(t, -1, Severity("BOGUS").Rank())
}

func TestResultWorst(t *testing.T) {
	var r Result
	assert.Equal(t, SeverityOK, r.Worst())

	r.add(SeverityInfo, "note")
	r.add(SeverityCritical, "broken %d", 1)
	r.add(SeverityWarning, "hmm")

	assert.Equal(t, SeverityCritical, r.Worst())
	assert.True(t, r.Has(SeverityWarning))
	assert.False(t, r.Has(SeverityOK))
	assert.Equal(t, "broken 1", r.Findings[1].Message)
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Findings: []Finding{{Severity: SeverityOK}, {Severity: SeverityWarning}}},
		{Findings: []Finding{{Severity: SeverityInfo}, {Severity: SeverityInfo}}},
		{},
	}

	s := Summarize(results)
	assert.Equal(t, Summary{OK: 1, Info: 2, Warning: 1}, s)
	assert.True(t, s.Ready())

	results = append(results, Result{Findings: []Finding{{Severity: SeverityCritical}}})
	s = Summarize(results)
	assert.Equal(t, 1, s.Critical)
	assert.False(t, s.Ready())
}
