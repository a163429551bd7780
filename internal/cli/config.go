package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/demoq-demo/control-tower--migration-assessment/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Show the configuration resolved from flags, CT_ASSESS_* environment variables, the config file and defaults.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Display()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), s)
		return nil
	},
}
