package readiness

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

func countVPCs(ctx context.Context, actx *Context) (int, error) {
	p := ec2.NewDescribeVpcsPaginator(actx.Services.EC2, &ec2.DescribeVpcsInput{})
	n := 0
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		n += len(page.Vpcs)
	}
	return n, nil
}

func classifyVPCCount(n, limit int, region string, r *Result) {
	region = regionLabel(region)
	r.set("vpc_count", strconv.Itoa(n))
	r.add(SeverityOK, "Found %d VPCs in %s", n, region)
	if n > limit {
		r.add(SeverityWarning, "More than %d VPCs in %s; check the VPC quota before Control Tower provisions account networks", limit, region)
	}
}

func checkVPCs(ctx context.Context, actx *Context, r *Result) {
	n, err := countVPCs(ctx, actx)
	if err != nil {
		r.cannotDetermine(ctx, "the number of VPCs", err)
		return
	}
	classifyVPCCount(n, actx.Thresholds.MaxVPCs, actx.Region, r)
}
