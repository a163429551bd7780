package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/readiness"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the readiness checks in execution order",
	Long:  `List every check ID accepted by --only and --skip, in the order the checks run.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, c := range readiness.Default() {
			fmt.Fprintf(out, "%2d. %-18s %s\n", i+1, c.ID(), c.Title())
		}
	},
}
