package readiness

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// supportedRegions are the regions Control Tower can use as a home region.
var supportedRegions = map[string]struct{}{
	"us-east-1":      {},
	"us-east-2":      {},
	"us-west-1":      {},
	"us-west-2":      {},
	"ca-central-1":   {},
	"eu-west-1":      {},
	"eu-west-2":      {},
	"eu-west-3":      {},
	"eu-central-1":   {},
	"eu-north-1":     {},
	"ap-southeast-1": {},
	"ap-southeast-2": {},
	"ap-northeast-1": {},
	"ap-northeast-2": {},
}

// IsSupportedRegion reports whether region can host a Control Tower landing zone.
func IsSupportedRegion(region string) bool {
	_, ok := supportedRegions[region]
	return ok
}

// SupportedRegions returns the supported set in sorted order.
func SupportedRegions() []string {
	out := make([]string, 0, len(supportedRegions))
	for r := range supportedRegions {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

var regionPattern = regexp.MustCompile(`(?:^|[^a-z0-9-])([a-z]{2}(?:-gov)?-[a-z]+-[0-9]+)(?:$|[^a-z0-9-])`)

// regionFromIdentifier extracts a region code embedded in an ARN or id.
func regionFromIdentifier(ids ...string) (string, bool) {
	for _, id := range ids {
		if m := regionPattern.FindStringSubmatch(id); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// regionLabel renders region for messages.
func regionLabel(region string) string {
	if region == "" {
		return "(unset)"
	}
	return region
}

func classifyRegion(region string, r *Result) {
	switch {
	case region == "":
		r.add(SeverityCritical, "No AWS region configured (set one with 'aws configure', AWS_REGION or --region)")
	case !IsSupportedRegion(region):
		r.add(SeverityCritical, "Region %s is not supported by Control Tower (supported: %s)", region, strings.Join(SupportedRegions(), ", "))
	default:
		r.add(SeverityOK, "Region %s is supported by Control Tower", region)
	}
}

func checkRegion(_ context.Context, actx *Context, r *Result) {
	r.set("region", actx.Region)
	r.set("region_source", string(actx.RegionSource))
	classifyRegion(actx.Region, r)
}
