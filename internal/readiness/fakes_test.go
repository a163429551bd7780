package readiness

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cttypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	cfgtypes "github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	ssotypes "github.com/aws/aws-sdk-go-v2/service/ssoadmin/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/awsapi"
)

var errAccessDenied = errors.New("AccessDeniedException: not authorized")

const (
	testAccountID = "111111111111"
	testRoleARN   = "arn:aws:sts::111111111111:assumed-role/Admin/session"
)

// pageIndex decodes the fake pagination token.
func pageIndex(token *string) int {
	if token == nil {
		return 0
	}
	i, _ := strconv.Atoi(*token)
	return i
}

func nextToken(idx, pages int) *string {
	if idx+1 < pages {
		return aws.String(strconv.Itoa(idx + 1))
	}
	return nil
}

type fakeSTS struct {
	arn string
	err error
	// block holds the call until ctx is done.
	block bool
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{
		Account: aws.String(testAccountID),
		Arn:     aws.String(f.arn),
	}, nil
}

type fakeOrganizations struct {
	org          *orgtypes.Organization
	orgErr       error
	accountPages [][]orgtypes.Account
	// accountErrPage fails ListAccounts on that page index when >= 0.
	accountErrPage int
	policies       []orgtypes.PolicySummary
	policyErr      error
}

func (f *fakeOrganizations) DescribeOrganization(_ context.Context, _ *organizations.DescribeOrganizationInput, _ ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error) {
	if f.orgErr != nil {
		return nil, f.orgErr
	}
	return &organizations.DescribeOrganizationOutput{Organization: f.org}, nil
}

func (f *fakeOrganizations) ListAccounts(_ context.Context, in *organizations.ListAccountsInput, _ ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	idx := pageIndex(in.NextToken)
	if f.accountErrPage >= 0 && idx == f.accountErrPage {
		return nil, errAccessDenied
	}
	out := &organizations.ListAccountsOutput{NextToken: nextToken(idx, len(f.accountPages))}
	if idx < len(f.accountPages) {
		out.Accounts = f.accountPages[idx]
	}
	return out, nil
}

func (f *fakeOrganizations) ListPolicies(_ context.Context, _ *organizations.ListPoliciesInput, _ ...func(*organizations.Options)) (*organizations.ListPoliciesOutput, error) {
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	return &organizations.ListPoliciesOutput{Policies: f.policies}, nil
}

type fakeConfig struct {
	recorders   []cfgtypes.ConfigurationRecorder
	recorderErr error
	// aggregatorPages are served one per DescribeConfigurationAggregators call.
	aggregatorPages [][]cfgtypes.ConfigurationAggregator
	aggregatorErr   error
}

func (f *fakeConfig) DescribeConfigurationRecorders(_ context.Context, _ *configservice.DescribeConfigurationRecordersInput, _ ...func(*configservice.Options)) (*configservice.DescribeConfigurationRecordersOutput, error) {
	if f.recorderErr != nil {
		return nil, f.recorderErr
	}
	return &configservice.DescribeConfigurationRecordersOutput{ConfigurationRecorders: f.recorders}, nil
}

func (f *fakeConfig) DescribeConfigurationAggregators(_ context.Context, in *configservice.DescribeConfigurationAggregatorsInput, _ ...func(*configservice.Options)) (*configservice.DescribeConfigurationAggregatorsOutput, error) {
	if f.aggregatorErr != nil {
		return nil, f.aggregatorErr
	}
	idx := pageIndex(in.NextToken)
	out := &configservice.DescribeConfigurationAggregatorsOutput{NextToken: nextToken(idx, len(f.aggregatorPages))}
	if idx < len(f.aggregatorPages) {
		out.ConfigurationAggregators = f.aggregatorPages[idx]
	}
	return out, nil
}

type fakeCloudTrail struct {
	trails []cttypes.Trail
	err    error
	last   *cloudtrail.DescribeTrailsInput
}

func (f *fakeCloudTrail) DescribeTrails(_ context.Context, in *cloudtrail.DescribeTrailsInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.DescribeTrailsOutput, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return &cloudtrail.DescribeTrailsOutput{TrailList: f.trails}, nil
}

type fakeCloudFormation struct {
	summaries []cftypes.StackSetSummary
	err       error
}

func (f *fakeCloudFormation) ListStackSets(_ context.Context, _ *cloudformation.ListStackSetsInput, _ ...func(*cloudformation.Options)) (*cloudformation.ListStackSetsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &cloudformation.ListStackSetsOutput{Summaries: f.summaries}, nil
}

type fakeEC2 struct {
	vpcs []ec2types.Vpc
	err  error
}

func (f *fakeEC2) DescribeVpcs(_ context.Context, _ *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ec2.DescribeVpcsOutput{Vpcs: f.vpcs}, nil
}

type fakeSSOAdmin struct {
	instances []ssotypes.InstanceMetadata
	err       error
}

func (f *fakeSSOAdmin) ListInstances(_ context.Context, _ *ssoadmin.ListInstancesInput, _ ...func(*ssoadmin.Options)) (*ssoadmin.ListInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ssoadmin.ListInstancesOutput{Instances: f.instances}, nil
}

// fakes keeps typed handles on the fakes behind a Services value.
type fakes struct {
	sts      *fakeSTS
	orgs     *fakeOrganizations
	config   *fakeConfig
	trail    *fakeCloudTrail
	cfn      *fakeCloudFormation
	ec2      *fakeEC2
	sso      *fakeSSOAdmin
	ssoByReg map[string]*fakeSSOAdmin
}

// newHealthyFakes models an account that is ready for Control Tower: an
// organization with 12 accounts, only the default SCP, an assumed admin role,
// 2 VPCs and nothing else pre-existing.
func newHealthyFakes() *fakes {
	accounts := make([]orgtypes.Account, 12)
	for i := range accounts {
		accounts[i] = orgtypes.Account{Id: aws.String(strconv.Itoa(100000000000 + i))}
	}

	return &fakes{
		sts: &fakeSTS{arn: testRoleARN},
		orgs: &fakeOrganizations{
			org: &orgtypes.Organization{
				Id:                 aws.String("o-example"),
				MasterAccountId:    aws.String(testAccountID),
				MasterAccountEmail: aws.String("aws-root@example.com"),
				FeatureSet:         orgtypes.OrganizationFeatureSetAll,
			},
			accountPages:   [][]orgtypes.Account{accounts[:10], accounts[10:]},
			accountErrPage: -1,
			policies: []orgtypes.PolicySummary{
				{Id: aws.String("p-FullAWSAccess"), Name: aws.String(defaultSCPName)},
			},
		},
		config: &fakeConfig{},
		trail:  &fakeCloudTrail{},
		cfn:    &fakeCloudFormation{},
		ec2: &fakeEC2{vpcs: []ec2types.Vpc{
			{VpcId: aws.String("vpc-1")},
			{VpcId: aws.String("vpc-2")},
		}},
		sso:      &fakeSSOAdmin{},
		ssoByReg: map[string]*fakeSSOAdmin{},
	}
}

func (f *fakes) services() *awsapi.Services {
	return &awsapi.Services{
		STS:            f.sts,
		Organizations:  f.orgs,
		Config:         f.config,
		CloudTrail:     f.trail,
		CloudFormation: f.cfn,
		EC2:            f.ec2,
		SSOAdmin:       f.sso,
		SSOAdminIn: func(region string) awsapi.SSOAdminAPI {
			if s, ok := f.ssoByReg[region]; ok {
				return s
			}
			return &fakeSSOAdmin{}
		},
	}
}

func (f *fakes) context(region string) *Context {
	return &Context{
		AccountID:    testAccountID,
		CallerARN:    testRoleARN,
		Region:       region,
		RegionSource: awsapi.RegionFromProfile,
		Thresholds:   DefaultThresholds,
		Services:     f.services(),
	}
}

// run executes a single check function against the fakes.
func run(fn func(context.Context, *Context, *Result), actx *Context) Result {
	var r Result
	fn(context.Background(), actx, &r)
	return r
}

func severities(r Result) []Severity {
	out := make([]Severity, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Severity)
	}
	return out
}
