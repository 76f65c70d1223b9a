package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lakecheck-io/lakecheck/internal/config"
	"github.com/lakecheck-io/lakecheck/internal/datafile"
	"github.com/lakecheck-io/lakecheck/internal/engine"
	"github.com/lakecheck-io/lakecheck/internal/logging"
	"github.com/spf13/cobra"
)

// Environments is the fixed set of supported target environments.
var Environments = []string{"dev", "test", "prod"}

var (
	checkVarFile  string
	checkDataFile string
	checkRoot     string
	checkSkipData bool
	checkLogLevel string
)

var checkCmd = &cobra.Command{
	Use:   "check <environment>",
	Short: "Validate the deployment state of an environment",
	Long: `Runs the fixed validation sequence against an environment:

  1. Prerequisites   (tooling, primary config file)
  2. Configuration   (required key completeness)
  3. BackendState    (S3 state bucket and state object)
  4. PlatformState   (workspace, catalog/schema/table/volume, warehouse)
  5. DataFile        (seed data structure; optional)

Each check streams one line as it completes; the exit status is 0 only when
every executed check passed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkVarFile, "var-file", config.DefaultVarFile, "Configuration file reference (path, bare name, or default)")
	checkCmd.Flags().StringVar(&checkDataFile, "data-file", datafile.DefaultPath, "Tabular data file to validate")
	checkCmd.Flags().StringVar(&checkRoot, "root", ".", "Invocation root directory")
	checkCmd.Flags().BoolVar(&checkSkipData, "skip-data-check", false, "Skip the data file check")
	checkCmd.Flags().StringVar(&checkLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
}

// validateEnvironment rejects anything outside the fixed enumeration.
func validateEnvironment(env string) error {
	for _, e := range Environments {
		if env == e {
			return nil
		}
	}
	return fmt.Errorf("unsupported environment %q (expected one of: %s)", env, strings.Join(Environments, ", "))
}

func runCheck(cmd *cobra.Command, args []string) error {
	env := args[0]
	if err := validateEnvironment(env); err != nil {
		return err
	}

	root, err := filepath.Abs(checkRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", checkRoot, err)
	}

	// An explicitly named config file that does not exist is a fatal
	// argument error, not a check outcome.
	if checkVarFile != config.DefaultVarFile {
		if _, err := config.Locate(root, checkVarFile); err != nil {
			return err
		}
	}

	logging.Init(checkLogLevel)

	fmt.Printf("Validating environment %s...\n\n", env)

	runner := engine.New(root, env)
	runner.VarFile = checkVarFile
	runner.DataFile = checkDataFile
	runner.RunDataCheck = !checkSkipData

	rep := runner.Run(cmd.Context())

	fmt.Printf("\n%s\n", rep.Summary())
	if !rep.OK() {
		return fmt.Errorf("%d check(s) failed", rep.Failed())
	}
	return nil
}
