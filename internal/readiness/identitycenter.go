package readiness

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	ssotypes "github.com/aws/aws-sdk-go-v2/service/ssoadmin/types"
	slogctx "github.com/veqryn/slog-context"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/awsapi"
)

// RegionLookup names how the Identity Center instance region was obtained.
type RegionLookup string

const (
	LookupIdentifier       RegionLookup = "identifier"
	LookupRegionalEndpoint RegionLookup = "regional-endpoint"
	LookupRequery          RegionLookup = "requery"
	LookupAssumed          RegionLookup = "assumed"
)

type ssoLocation struct {
	found       bool
	instanceARN string
	region      string
	lookup      RegionLookup
}

func listSSOInstances(ctx context.Context, api awsapi.SSOAdminAPI) ([]ssotypes.InstanceMetadata, error) {
	p := ssoadmin.NewListInstancesPaginator(api, &ssoadmin.ListInstancesInput{})
	var out []ssotypes.InstanceMetadata
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Instances...)
	}
	return out, nil
}

func checkSSOInstance(ctx context.Context, actx *Context, r *Result) {
	instances, err := listSSOInstances(ctx, actx.Services.SSOAdmin)
	if err != nil {
		r.cannotDetermine(ctx, "IAM Identity Center status", err)
		return
	}

	if len(instances) == 0 {
		r.add(SeverityOK, "No IAM Identity Center instance in %s; Control Tower will create one", regionLabel(actx.Region))
		return
	}

	arn := deref(instances[0].InstanceArn)
	r.set("instance_arn", arn)
	r.add(SeverityWarning, "IAM Identity Center instance already exists (%s); Control Tower will reuse it", arn)
}

// locateSSOInstance finds the instance and its region, trying in turn the
// identifier, the current regional endpoint and every other supported region.
// When no lookup succeeds the region is assumed to be the current one.
func locateSSOInstance(ctx context.Context, actx *Context) ssoLocation {
	instances, localErr := listSSOInstances(ctx, actx.Services.SSOAdmin)
	if localErr == nil && len(instances) > 0 {
		return locationOf(instances[0], actx.Region, LookupRegionalEndpoint)
	}
	if localErr != nil {
		slogctx.Debug(ctx, "identity center lookup in current region failed", "region", actx.Region, "error", localErr)
	}

	probed := 0
	if actx.Services.SSOAdminIn != nil {
		for _, region := range SupportedRegions() {
			if region == actx.Region {
				continue
			}
			found, err := listSSOInstances(ctx, actx.Services.SSOAdminIn(region))
			if err != nil {
				slogctx.Debug(ctx, "identity center re-query failed", "region", region, "error", err)
				continue
			}
			probed++
			if len(found) > 0 {
				return locationOf(found[0], region, LookupRequery)
			}
		}
	}

	if localErr == nil {
		return ssoLocation{}
	}
	slogctx.Debug(ctx, "identity center region assumed", "probed_regions", probed)
	return ssoLocation{region: actx.Region, lookup: LookupAssumed}
}

// locationOf prefers a region embedded in the identifiers over the endpoint region.
func locationOf(inst ssotypes.InstanceMetadata, endpointRegion string, fallback RegionLookup) ssoLocation {
	loc := ssoLocation{
		found:       true,
		instanceARN: deref(inst.InstanceArn),
		region:      endpointRegion,
		lookup:      fallback,
	}
	if region, ok := regionFromIdentifier(deref(inst.InstanceArn), deref(inst.IdentityStoreId)); ok {
		loc.region = region
		loc.lookup = LookupIdentifier
	}
	return loc
}

func classifySSORegion(loc ssoLocation, current string, r *Result) {
	if loc.lookup != "" {
		r.set("region_source", string(loc.lookup))
	}

	switch {
	case loc.lookup == LookupAssumed:
		r.set("sso_region", loc.region)
		r.add(SeverityOK, "Assuming the IAM Identity Center region matches %s", current)
		r.add(SeverityInfo, "The instance region could not be looked up (lookup path: assumed); confirm it in the IAM Identity Center console")
	case !loc.found:
		r.add(SeverityOK, "No IAM Identity Center instance exists yet")
		r.add(SeverityInfo, "Control Tower will create the IAM Identity Center instance in %s", current)
	case loc.region == current:
		r.set("sso_region", loc.region)
		r.set("instance_arn", loc.instanceARN)
		r.add(SeverityOK, "IAM Identity Center is in %s, matching the current region (lookup path: %s)", loc.region, loc.lookup)
	default:
		r.set("sso_region", loc.region)
		r.set("instance_arn", loc.instanceARN)
		r.add(SeverityCritical, "IAM Identity Center is in %s but the current region is %s; Control Tower installation will fail (lookup path: %s)", loc.region, current, loc.lookup)
	}
}

func checkSSORegion(ctx context.Context, actx *Context, r *Result) {
	if actx.Region == "" {
		r.add(SeverityCritical, "No AWS region configured; cannot compare it with the IAM Identity Center region")
		return
	}
	classifySSORegion(locateSSOInstance(ctx, actx), actx.Region, r)
}
