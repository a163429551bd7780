package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/awsapi"
	"github.com/demoq-demo/control-tower--migration-assessment/internal/config"
	"github.com/demoq-demo/control-tower--migration-assessment/internal/readiness"
	"github.com/demoq-demo/control-tower--migration-assessment/internal/report"
)

// ErrDomainCLI tags errors raised by command handlers.
const ErrDomainCLI = "cli"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the readiness assessment (default command)",
	Long: `Run every readiness check in order and print the findings.

This is what ct-assess does when invoked without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: runAssessment,
}

// environment is the resolved AWS access for one run.
type environment struct {
	services *awsapi.Services
	region   string
	source   awsapi.RegionSource
}

// connect is replaced in tests.
var connect = func(ctx context.Context, cfg *config.Config) (*environment, error) {
	awsCfg, err := awsapi.LoadConfig(ctx, awsapi.Options{Profile: cfg.Profile, Region: cfg.Region})
	if err != nil {
		return nil, err
	}

	region, source := awsapi.ResolveRegion(cfg.Region, awsCfg.Region, os.Getenv)
	awsCfg.Region = region

	return &environment{
		services: awsapi.New(awsCfg),
		region:   region,
		source:   source,
	}, nil
}

func runAssessment(cmd *cobra.Command, args []string) error {
	// Load configuration (Viper resolves behind the scenes)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	initLogger(cfg.Verbose)
	if cfg.NoColor {
		color.NoColor = true
	}

	checks, err := readiness.Select(readiness.Default(), cfg.Only, cfg.Skip)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := connect(ctx, cfg)
	if err != nil {
		color.Red("✗ Failed to prepare AWS access: %v", err)
		return err
	}

	actx := readiness.NewContext(ctx, env.services, env.region, env.source,
		awsapi.IsManagedShell(os.Getenv),
		readiness.Thresholds{
			MaxAccounts: cfg.Thresholds.MaxAccounts,
			MaxVPCs:     cfg.Thresholds.MaxVPCs,
		},
		cfg.CheckTimeout,
	)

	out := cmd.OutOrStdout()
	runner := &readiness.Runner{Checks: checks, Timeout: cfg.CheckTimeout}

	var text *report.Text
	if cfg.Output == config.OutputText {
		text = report.NewText(out, cfg.NoColor)
		text.Header(actx)
		runner.OnResult = text.Result
	}

	results := runner.Run(ctx, actx)

	if text != nil {
		text.Summary(results)
	} else if err := report.Encode(out, report.New(actx, results), cfg.Output); err != nil {
		return err
	}

	if cfg.Strict {
		if s := readiness.Summarize(results); s.Critical > 0 {
			return oops.In(ErrDomainCLI).
				With("critical", s.Critical).
				Errorf("assessment reported %d critical finding(s)", s.Critical)
		}
	}

	return nil
}
