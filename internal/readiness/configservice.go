package readiness

import (
	"context"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/configservice"
)

func checkConfigRecorder(ctx context.Context, actx *Context, r *Result) {
	out, err := actx.Services.Config.DescribeConfigurationRecorders(ctx, &configservice.DescribeConfigurationRecordersInput{})
	if err != nil {
		r.cannotDetermine(ctx, "AWS Config recorder status", err)
		return
	}

	var names []string
	for _, rec := range out.ConfigurationRecorders {
		names = append(names, deref(rec.Name))
	}
	r.set("recorder_count", strconv.Itoa(len(names)))

	if len(names) == 0 {
		r.add(SeverityOK, "No AWS Config recorder in %s", regionLabel(actx.Region))
		return
	}
	r.add(SeverityWarning, "AWS Config recorder already exists (%s); it may conflict with the recorder Control Tower creates", strings.Join(names, ", "))
}

func listAggregatorNames(ctx context.Context, actx *Context) ([]string, error) {
	var names []string
	in := &configservice.DescribeConfigurationAggregatorsInput{}
	for {
		out, err := actx.Services.Config.DescribeConfigurationAggregators(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, a := range out.ConfigurationAggregators {
			names = append(names, deref(a.ConfigurationAggregatorName))
		}
		if deref(out.NextToken) == "" {
			return names, nil
		}
		in = &configservice.DescribeConfigurationAggregatorsInput{NextToken: out.NextToken}
	}
}

func checkConfigAggregators(ctx context.Context, actx *Context, r *Result) {
	names, err := listAggregatorNames(ctx, actx)
	if err != nil {
		r.cannotDetermine(ctx, "AWS Config aggregators", err)
		return
	}
	r.set("aggregator_count", strconv.Itoa(len(names)))

	if len(names) == 0 {
		r.add(SeverityOK, "No AWS Config aggregators found")
		return
	}
	r.add(SeverityWarning, "AWS Config aggregators already exist (%s); Control Tower creates its own in the audit account", strings.Join(names, ", "))
}
