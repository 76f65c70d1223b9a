package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lakecheck",
	Short: "Deployment-state validation for the data platform pipeline",
	Long: `Lakecheck validates the deployment state of a Databricks + S3 data
pipeline before and after Terraform provisioning.

It answers two questions for a target environment:
  • Is the environment correctly configured and already provisioned?
  • Which resources still need creating, so re-provisioning stays idempotent?

Lakecheck only observes remote state; it never mutates it.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}
