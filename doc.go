// Package assessment documents the ct-assess Control Tower readiness tool.
//
// ct-assess inspects an AWS account before AWS Control Tower is enabled and
// reports what would block or complicate the landing zone setup. It never
// changes anything in the account.
//
// # Installation
//
//	go install github.com/demoq-demo/control-tower--migration-assessment/cmd/ct-assess@latest
//
// # Quick Start
//
//	ct-assess                      # run every check, text output
//	ct-assess --output json        # machine readable report
//	ct-assess checks               # list check IDs
//	ct-assess --only region,sso-region
//
// # Checks
//
// Organizations, AWS Config recorder, CloudTrail, home region support,
// account count, Service Control Policies, caller identity, StackSets, VPC
// count, IAM Identity Center instance, management account email, Identity
// Center region alignment and Config aggregators, followed by notes on
// guardrails and member account follow-up.
//
// # Layout
//
//   - cmd/ct-assess: entry point
//   - internal/cli: cobra commands
//   - internal/config: viper backed configuration
//   - internal/awsapi: read-only AWS clients and region resolution
//   - internal/readiness: the checks and their runner
//   - internal/report: text, JSON and YAML rendering
package assessment
