package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/readiness"
)

// Text streams a human readable assessment to w.
type Text struct {
	w       io.Writer
	n       int
	title   lipgloss.Style
	dim     lipgloss.Style
	heading lipgloss.Style
	box     lipgloss.Style
	tags    map[readiness.Severity]*color.Color
}

// NewText builds a text renderer. noColor strips every style.
func NewText(w io.Writer, noColor bool) *Text {
	r := lipgloss.NewRenderer(w)

	t := &Text{
		w:       w,
		title:   r.NewStyle().Bold(true),
		dim:     r.NewStyle(),
		heading: r.NewStyle().Bold(true),
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		tags: map[readiness.Severity]*color.Color{
			readiness.SeverityOK:       color.New(color.FgGreen),
			readiness.SeverityInfo:     color.New(color.FgCyan),
			readiness.SeverityWarning:  color.New(color.FgYellow),
			readiness.SeverityCritical: color.New(color.FgRed, color.Bold),
		},
	}

	if noColor {
		for _, c := range t.tags {
			c.DisableColor()
		}
		t.title = r.NewStyle()
		t.heading = r.NewStyle()
		t.box = r.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	} else {
		t.title = t.title.Foreground(lipgloss.Color("212"))
		t.dim = t.dim.Foreground(lipgloss.Color("241"))
	}

	return t
}

// Header prints the banner with the assessment context.
func (t *Text) Header(actx *readiness.Context) {
	fmt.Fprintln(t.w)
	fmt.Fprintln(t.w, t.title.Render("  AWS Control Tower Readiness Assessment"))
	fmt.Fprintln(t.w, t.dim.Render("  "+actx.StartedAt.Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintln(t.w)
	fmt.Fprintf(t.w, "  Account:  %s\n", orUnknown(actx.AccountID))
	fmt.Fprintf(t.w, "  Caller:   %s\n", orUnknown(actx.CallerARN))
	fmt.Fprintf(t.w, "  Region:   %s (%s)\n", orUnknown(actx.Region), actx.RegionSource)
	if actx.ManagedShell {
		fmt.Fprintln(t.w, "  Shell:    AWS CloudShell")
	}
	fmt.Fprintln(t.w)
}

// Result prints one check with its findings. It is safe to use as a
// readiness.Runner OnResult callback.
func (t *Text) Result(res readiness.Result) {
	t.n++
	fmt.Fprintf(t.w, "  %s\n", t.heading.Render(fmt.Sprintf("%d. %s", t.n, res.Title)))
	for _, f := range res.Findings {
		fmt.Fprintf(t.w, "    %s %s %s\n", glyph(f.Severity), t.tag(f.Severity), f.Message)
	}
	fmt.Fprintln(t.w)
}

// Summary prints the counts and the fixed next steps.
func (t *Text) Summary(results []readiness.Result) {
	s := readiness.Summarize(results)

	var b strings.Builder
	b.WriteString("Summary\n\n")
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d   %s %d\n",
		t.tag(readiness.SeverityOK), s.OK,
		t.tag(readiness.SeverityInfo), s.Info,
		t.tag(readiness.SeverityWarning), s.Warning,
		t.tag(readiness.SeverityCritical), s.Critical,
	)
	if s.Ready() {
		b.WriteString("\nNo blocking issues found.\n")
	} else {
		fmt.Fprintf(&b, "\n%d blocking issue(s) must be resolved before enabling Control Tower.\n", s.Critical)
	}
	b.WriteString("\nNext steps\n\n")
	for i, step := range nextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	fmt.Fprintln(t.w, t.box.Render(strings.TrimRight(b.String(), "\n")))
	fmt.Fprintln(t.w)
}

var nextSteps = []string{
	"Resolve every CRITICAL finding.",
	"Review WARNING findings with the account owners.",
	"Confirm the home region; it cannot be changed after setup.",
	"Prepare two unused email addresses for the log archive and audit accounts.",
	"Open the Control Tower console in the home region and set up the landing zone.",
	"After setup, repeat the AWS Config recorder check in every member account.",
}

func (t *Text) tag(s readiness.Severity) string {
	c, ok := t.tags[s]
	if !ok {
		return "[" + string(s) + "]"
	}
	return c.Sprint("[" + string(s) + "]")
}

func glyph(s readiness.Severity) string {
	switch s {
	case readiness.SeverityOK:
		return "✓"
	case readiness.SeverityInfo:
		return "ℹ"
	case readiness.SeverityWarning:
		return "⚠"
	case readiness.SeverityCritical:
		return "✗"
	default:
		return "?"
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
