package readiness

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	slogctx "github.com/veqryn/slog-context"
)

// defaultSCPName is the AWS managed allow-all policy attached to every root.
const defaultSCPName = "FullAWSAccess"

func describeOrganization(ctx context.Context, actx *Context) (*orgtypes.Organization, error) {
	out, err := actx.Services.Organizations.DescribeOrganization(ctx, &organizations.DescribeOrganizationInput{})
	if err != nil {
		return nil, err
	}
	if out.Organization == nil {
		return nil, errEmptyResponse
	}
	return out.Organization, nil
}

func checkOrganizations(ctx context.Context, actx *Context, r *Result) {
	org, err := describeOrganization(ctx, actx)
	if err != nil {
		slogctx.Debug(ctx, "describe organization failed", "error", err)
		r.add(SeverityCritical, "AWS Organizations is not enabled or not accessible from this account")
		return
	}

	r.set("organization_id", deref(org.Id))
	r.set("management_account_id", deref(org.MasterAccountId))
	r.add(SeverityOK, "AWS Organizations is enabled (%s, management account %s)", deref(org.Id), deref(org.MasterAccountId))

	if org.FeatureSet != orgtypes.OrganizationFeatureSetAll {
		r.add(SeverityWarning, "Organization feature set is %s; Control Tower requires all features enabled", org.FeatureSet)
	}
	if actx.AccountID != "" && deref(org.MasterAccountId) != "" && actx.AccountID != deref(org.MasterAccountId) {
		r.add(SeverityCritical, "Running from account %s, but Control Tower must be enabled from the management account %s", actx.AccountID, deref(org.MasterAccountId))
	}
}

// countAccounts walks every page. A failure on any page fails the count.
func countAccounts(ctx context.Context, actx *Context) (int, error) {
	p := organizations.NewListAccountsPaginator(actx.Services.Organizations, &organizations.ListAccountsInput{})
	n := 0
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		n += len(page.Accounts)
	}
	return n, nil
}

func classifyAccountCount(n, limit int, r *Result) {
	r.set("account_count", strconv.Itoa(n))
	r.add(SeverityOK, "Found %d accounts in the organization", n)
	if n > limit {
		r.add(SeverityWarning, "More than %d accounts: enrolling existing accounts into Control Tower will take considerable time", limit)
	}
}

func checkAccounts(ctx context.Context, actx *Context, r *Result) {
	n, err := countAccounts(ctx, actx)
	if err != nil {
		r.cannotDetermine(ctx, "the number of accounts", err)
		return
	}
	classifyAccountCount(n, actx.Thresholds.MaxAccounts, r)
}

func listSCPNames(ctx context.Context, actx *Context) ([]string, error) {
	p := organizations.NewListPoliciesPaginator(actx.Services.Organizations, &organizations.ListPoliciesInput{
		Filter: orgtypes.PolicyTypeServiceControlPolicy,
	})
	var names []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, pol := range page.Policies {
			names = append(names, deref(pol.Name))
		}
	}
	return names, nil
}

func classifySCPs(names []string, r *Result) {
	r.set("scp_count", strconv.Itoa(len(names)))
	if len(names) <= 1 {
		r.add(SeverityOK, "Only the default Service Control Policy is present")
		return
	}

	var custom []string
	for _, n := range names {
		if n != defaultSCPName {
			custom = append(custom, n)
		}
	}
	sort.Strings(custom)
	r.set("custom_scps", strings.Join(custom, ","))
	r.add(SeverityWarning, "Found %d Service Control Policies; review for conflicts with Control Tower guardrails: %s", len(names), strings.Join(custom, ", "))
}

func checkSCPs(ctx context.Context, actx *Context, r *Result) {
	names, err := listSCPNames(ctx, actx)
	if err != nil {
		r.cannotDetermine(ctx, "Service Control Policies", err)
		return
	}
	classifySCPs(names, r)
}

func checkManagementEmail(ctx context.Context, actx *Context, r *Result) {
	org, err := describeOrganization(ctx, actx)
	if err != nil || deref(org.MasterAccountEmail) == "" {
		if err == nil {
			err = errEmptyResponse
		}
		r.cannotDetermine(ctx, "the management account email", err)
		return
	}

	email := deref(org.MasterAccountEmail)
	r.set("management_email", email)
	r.add(SeverityOK, "Management account email: %s", email)
	r.add(SeverityWarning, "Make sure you can receive mail at %s; Control Tower sends notifications there", email)
}
