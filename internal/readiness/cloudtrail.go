package readiness

import (
	"context"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
)

// controlTowerTrailPrefix names the organization trail a previous landing zone left behind.
const controlTowerTrailPrefix = "aws-controltower"

func classifyTrails(names []string, r *Result) {
	if len(names) == 0 {
		r.add(SeverityOK, "No CloudTrail trails found")
		return
	}

	var ct, other []string
	for _, n := range names {
		if strings.HasPrefix(n, controlTowerTrailPrefix) {
			ct = append(ct, n)
		} else {
			other = append(other, n)
		}
	}
	sort.Strings(ct)
	sort.Strings(other)

	if len(ct) > 0 {
		r.add(SeverityInfo, "Control Tower trail found (%s); a previous installation may exist", strings.Join(ct, ", "))
	}
	if len(other) > 0 {
		r.add(SeverityWarning, "Existing CloudTrail trails found (%s); review them to avoid duplicate logging costs", strings.Join(other, ", "))
	}
}

func checkCloudTrail(ctx context.Context, actx *Context, r *Result) {
	// Shadow trails are included so an organization trail homed in another
	// region is still seen.
	out, err := actx.Services.CloudTrail.DescribeTrails(ctx, &cloudtrail.DescribeTrailsInput{
		IncludeShadowTrails: aws.Bool(true),
	})
	if err != nil {
		r.cannotDetermine(ctx, "CloudTrail configuration", err)
		return
	}

	seen := make(map[string]bool, len(out.TrailList))
	names := make([]string, 0, len(out.TrailList))
	for _, t := range out.TrailList {
		key := deref(t.TrailARN)
		if key == "" {
			key = deref(t.Name)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, deref(t.Name))
	}
	classifyTrails(names, r)
}
