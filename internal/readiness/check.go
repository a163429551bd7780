// Package readiness assesses whether an AWS account is ready for AWS Control Tower.
//
// The assessment is an ordered list of independent checks. Each check receives
// the same immutable Context, issues read-only API calls and returns a Result
// tagged OK, INFO, WARNING or CRITICAL. A failed call never aborts the run: the
// check reports CRITICAL "cannot determine" and the next check runs.
package readiness

import (
	"context"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/samber/oops"
	slogctx "github.com/veqryn/slog-context"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/awsapi"
)

// ErrDomainReadiness tags errors raised by this package.
const ErrDomainReadiness = "readiness"

// Check is one unit of the assessment.
type Check interface {
	ID() string
	Title() string
	Run(ctx context.Context, actx *Context) Result
}

// Thresholds are the limits over which a count is reported as WARNING.
type Thresholds struct {
	MaxAccounts int
	MaxVPCs     int
}

// DefaultThresholds matches the limits Control Tower guidance recommends.
var DefaultThresholds = Thresholds{MaxAccounts: 100, MaxVPCs: 3}

// Context is the assessment context threaded into every check.
type Context struct {
	AccountID    string
	CallerARN    string
	Region       string
	RegionSource awsapi.RegionSource
	ManagedShell bool
	Thresholds   Thresholds
	Services     *awsapi.Services
	StartedAt    time.Time
}

// NewContext resolves the caller identity once for the report header, bounded
// by timeout when it is positive. A failure leaves the identity empty; the
// caller-identity check reports it.
func NewContext(ctx context.Context, svc *awsapi.Services, region string, source awsapi.RegionSource, managedShell bool, th Thresholds, timeout time.Duration) *Context {
	actx := &Context{
		Region:       region,
		RegionSource: source,
		ManagedShell: managedShell,
		Thresholds:   th,
		Services:     svc,
		StartedAt:    time.Now().UTC(),
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := svc.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		slogctx.Debug(ctx, "caller identity unavailable", "error", err)
		return actx
	}
	actx.AccountID = deref(out.Account)
	actx.CallerARN = deref(out.Arn)

	return actx
}

type checkFunc struct {
	id    string
	title string
	run   func(ctx context.Context, actx *Context, r *Result)
}

func (c checkFunc) ID() string    { return c.id }
func (c checkFunc) Title() string { return c.title }

func (c checkFunc) Run(ctx context.Context, actx *Context) Result {
	r := Result{CheckID: c.id, Title: c.title}
	c.run(ctx, actx, &r)
	return r
}

// Default returns the full assessment in execution order.
func Default() []Check {
	return []Check{
		checkFunc{"organizations", "AWS Organizations", checkOrganizations},
		checkFunc{"config-recorder", "AWS Config recorder", checkConfigRecorder},
		checkFunc{"cloudtrail", "CloudTrail trails", checkCloudTrail},
		checkFunc{"region", "Home region", checkRegion},
		checkFunc{"accounts", "Account count", checkAccounts},
		checkFunc{"scp", "Service Control Policies", checkSCPs},
		checkFunc{"caller-identity", "Caller identity", checkCallerIdentity},
		checkFunc{"stacksets", "CloudFormation StackSets", checkStackSets},
		checkFunc{"vpcs", "VPC count", checkVPCs},
		checkFunc{"sso-instance", "IAM Identity Center instance", checkSSOInstance},
		checkFunc{"management-email", "Management account email", checkManagementEmail},
		checkFunc{"sso-region", "IAM Identity Center region alignment", checkSSORegion},
		checkFunc{"config-aggregator", "AWS Config aggregators", checkConfigAggregators},
		checkFunc{"guardrails", "Guardrails", noteGuardrails},
		checkFunc{"member-accounts", "Member account follow-up", noteMemberAccounts},
	}
}

// Select narrows checks by ID, preserving order. only and skip are exclusive.
func Select(checks []Check, only, skip []string) ([]Check, error) {
	known := make(map[string]bool, len(checks))
	for _, c := range checks {
		known[c.ID()] = true
	}
	for _, id := range append(append([]string{}, only...), skip...) {
		if !known[id] {
			return nil, oops.In(ErrDomainReadiness).
				With("check", id).
				Errorf("unknown check %q (run 'ct-assess checks' for the list)", id)
		}
	}
	if len(only) > 0 && len(skip) > 0 {
		return nil, oops.In(ErrDomainReadiness).Errorf("only and skip cannot be combined")
	}

	want := func(id string) bool {
		if len(only) > 0 {
			return slices.Contains(only, id)
		}
		return !slices.Contains(skip, id)
	}

	var out []Check
	for _, c := range checks {
		if want(c.ID()) {
			out = append(out, c)
		}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
