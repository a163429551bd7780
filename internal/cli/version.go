package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ct-assess version %s\n", cmd.Root().Version)
		fmt.Fprintln(out, "\nComponents:")
		fmt.Fprintf(out, "  AWS SDK for Go v2: %s\n", aws.SDKVersion)
	},
}
