// Package awsapi builds the read-only AWS service clients the assessment talks to.
//
// Every client is exposed through a narrow interface holding only the calls the
// checks make, so tests can substitute fakes. Nothing in this package mutates
// cloud resources.
package awsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/configservice"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/samber/oops"
)

// ErrDomainAWS tags errors raised while preparing AWS access.
const ErrDomainAWS = "awsapi"

// globalRegion signs requests to the global STS and Organizations endpoints
// when no region is configured.
const globalRegion = "us-east-1"

// STSAPI is the subset of STS used by the assessment.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// OrganizationsAPI is the subset of Organizations used by the assessment.
type OrganizationsAPI interface {
	DescribeOrganization(ctx context.Context, in *organizations.DescribeOrganizationInput, optFns ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error)
	organizations.ListAccountsAPIClient
	organizations.ListPoliciesAPIClient
}

// ConfigAPI is the subset of AWS Config used by the assessment.
type ConfigAPI interface {
	DescribeConfigurationRecorders(ctx context.Context, in *configservice.DescribeConfigurationRecordersInput, optFns ...func(*configservice.Options)) (*configservice.DescribeConfigurationRecordersOutput, error)
	DescribeConfigurationAggregators(ctx context.Context, in *configservice.DescribeConfigurationAggregatorsInput, optFns ...func(*configservice.Options)) (*configservice.DescribeConfigurationAggregatorsOutput, error)
}

// CloudTrailAPI is the subset of CloudTrail used by the assessment.
type CloudTrailAPI interface {
	DescribeTrails(ctx context.Context, in *cloudtrail.DescribeTrailsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.DescribeTrailsOutput, error)
}

// CloudFormationAPI is the subset of CloudFormation used by the assessment.
type CloudFormationAPI interface {
	cloudformation.ListStackSetsAPIClient
}

// EC2API is the subset of EC2 used by the assessment.
type EC2API interface {
	ec2.DescribeVpcsAPIClient
}

// SSOAdminAPI is the subset of IAM Identity Center admin used by the assessment.
type SSOAdminAPI interface {
	ssoadmin.ListInstancesAPIClient
}

// Services bundles one client per collaborator. SSOAdminIn returns an Identity
// Center client pinned to another region; it is used to locate an instance
// that the current region does not report.
type Services struct {
	STS            STSAPI
	Organizations  OrganizationsAPI
	Config         ConfigAPI
	CloudTrail     CloudTrailAPI
	CloudFormation CloudFormationAPI
	EC2            EC2API
	SSOAdmin       SSOAdminAPI
	SSOAdminIn     func(region string) SSOAdminAPI
}

// Options selects the credentials profile and region override.
type Options struct {
	Profile string
	Region  string
}

// LoadConfig resolves credentials through the SDK default chain.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, oops.In(ErrDomainAWS).
			With("profile", opts.Profile).
			Wrapf(err, "loading AWS configuration")
	}

	return cfg, nil
}

// New builds the service clients. Regional clients use cfg.Region as is, an
// empty region makes their calls fail and the owning checks report it.
func New(cfg aws.Config) *Services {
	global := func(region string) string {
		if region == "" {
			return globalRegion
		}
		return region
	}

	return &Services{
		STS: sts.NewFromConfig(cfg, func(o *sts.Options) {
			o.Region = global(o.Region)
		}),
		Organizations: organizations.NewFromConfig(cfg, func(o *organizations.Options) {
			o.Region = global(o.Region)
		}),
		Config:         configservice.NewFromConfig(cfg),
		CloudTrail:     cloudtrail.NewFromConfig(cfg),
		CloudFormation: cloudformation.NewFromConfig(cfg),
		EC2:            ec2.NewFromConfig(cfg),
		SSOAdmin:       ssoadmin.NewFromConfig(cfg),
		SSOAdminIn: func(region string) SSOAdminAPI {
			return ssoadmin.NewFromConfig(cfg, func(o *ssoadmin.Options) {
				o.Region = region
			})
		},
	}
}
