package readiness

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

const (
	controlTowerStackSetPrefix = "AWSControlTower"
	quickSetupStackSetPrefix   = "AWS-QuickSetup"
)

// StackSetPartition splits stack-set names by who owns them. Every name lands
// in exactly one slice.
type StackSetPartition struct {
	ControlTower []string
	QuickSetup   []string
	Other        []string
}

// PartitionStackSets classifies names by prefix. Order within each slice is sorted.
func PartitionStackSets(names []string) StackSetPartition {
	var p StackSetPartition
	for _, n := range names {
		switch {
		case strings.HasPrefix(n, controlTowerStackSetPrefix):
			p.ControlTower = append(p.ControlTower, n)
		case strings.HasPrefix(n, quickSetupStackSetPrefix):
			p.QuickSetup = append(p.QuickSetup, n)
		default:
			p.Other = append(p.Other, n)
		}
	}
	sort.Strings(p.ControlTower)
	sort.Strings(p.QuickSetup)
	sort.Strings(p.Other)
	return p
}

func listStackSetNames(ctx context.Context, actx *Context) ([]string, error) {
	p := cloudformation.NewListStackSetsPaginator(actx.Services.CloudFormation, &cloudformation.ListStackSetsInput{
		Status: cftypes.StackSetStatusActive,
	})
	var names []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range page.Summaries {
			names = append(names, deref(s.StackSetName))
		}
	}
	return names, nil
}

func classifyStackSets(names []string, r *Result) {
	r.set("stackset_count", strconv.Itoa(len(names)))
	if len(names) == 0 {
		r.add(SeverityOK, "No active StackSets found")
		return
	}

	p := PartitionStackSets(names)
	if len(p.ControlTower) > 0 {
		r.add(SeverityInfo, "Control Tower StackSets found (%s); Control Tower may already be installed", strings.Join(p.ControlTower, ", "))
	}
	if len(p.QuickSetup) > 0 {
		r.add(SeverityInfo, "Systems Manager Quick Setup StackSets found (%s)", strings.Join(p.QuickSetup, ", "))
	}
	if len(p.Other) > 0 {
		r.add(SeverityWarning, "Other StackSets found (%s); review them for conflicts with Control Tower resources", strings.Join(p.Other, ", "))
	}
}

func checkStackSets(ctx context.Context, actx *Context, r *Result) {
	names, err := listStackSetNames(ctx, actx)
	if err != nil {
		r.cannotDetermine(ctx, "existing StackSets", err)
		return
	}
	classifyStackSets(names, r)
}
