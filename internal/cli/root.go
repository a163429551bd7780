// Package cli wires configuration, AWS access, the readiness checks and the
// report renderers into the ct-assess command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ct-assess",
	Short: "Assess an AWS account's readiness for AWS Control Tower",
	Long: `Assess whether the current AWS account is ready to enable AWS Control Tower.

Every check is read-only. Run it from the management account of the
organization, in the region you intend to use as the Control Tower home
region. Findings are reported as OK, INFO, WARNING or CRITICAL.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runAssessment,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Define flags
	flags := rootCmd.PersistentFlags()
	flags.String("profile", "", "AWS shared config profile")
	flags.String("region", "", "AWS region to assess (defaults to the profile or environment region)")
	flags.StringP("output", "o", "text", "Output format (text|json|yaml)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Log API errors and timings to stderr")
	flags.Bool("strict", false, "Exit with status 1 when a CRITICAL finding is reported")
	flags.Duration("check-timeout", 30*time.Second, "Time limit for a single check")
	flags.Int("max-accounts", 100, "Account count above which a warning is reported")
	flags.Int("max-vpcs", 3, "VPC count above which a warning is reported")
	flags.StringSlice("only", nil, "Run only these checks (comma separated IDs)")
	flags.StringSlice("skip", nil, "Skip these checks (comma separated IDs)")

	bindFlags()

	rootCmd.AddCommand(runCmd, checksCmd, configCmd, versionCmd)
}

var boundFlags = []string{
	"profile", "region", "output", "no-color", "verbose", "strict",
	"check-timeout", "max-accounts", "max-vpcs", "only", "skip",
}

// bindFlags binds the persistent flags to viper keys of the same name.
func bindFlags() {
	for _, name := range boundFlags {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// Execute runs the command tree. SIGINT and SIGTERM cancel the running
// assessment; results gathered so far are still printed.
func Execute(version string) error {
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
