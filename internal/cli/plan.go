package cli

import (
	"fmt"
	"path/filepath"

	"github.com/lakecheck-io/lakecheck/internal/config"
	"github.com/lakecheck-io/lakecheck/internal/inspect"
	"github.com/lakecheck-io/lakecheck/internal/logging"
	"github.com/lakecheck-io/lakecheck/internal/reconcile"
	"github.com/spf13/cobra"
)

var (
	planVarFile      string
	planRoot         string
	planCreateSchema bool
	planCreateVolume bool
	planCreateTable  bool
	planUploadData   bool
)

var planCmd = &cobra.Command{
	Use:   "plan <environment>",
	Short: "Compute idempotent create/skip flags for the provisioner",
	Long: `Probes the target schema's existence and prints the four create
flags the provisioner consumes as TF_VAR assignments.

A schema confirmed present forces every flag to false, regardless of the
supplied defaults. When the probe itself errors the flags fall back to the
defaults and the printed basis says so.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planVarFile, "var-file", config.DefaultVarFile, "Configuration file reference")
	planCmd.Flags().StringVar(&planRoot, "root", ".", "Invocation root directory")
	planCmd.Flags().BoolVar(&planCreateSchema, "create-schema", true, "Default flag: create the schema")
	planCmd.Flags().BoolVar(&planCreateVolume, "create-volume", true, "Default flag: create the volume")
	planCmd.Flags().BoolVar(&planCreateTable, "create-table", true, "Default flag: create the table")
	planCmd.Flags().BoolVar(&planUploadData, "upload-data", true, "Default flag: upload seed data")
}

func runPlan(cmd *cobra.Command, args []string) error {
	env := args[0]
	if err := validateEnvironment(env); err != nil {
		return err
	}

	root, err := filepath.Abs(planRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", planRoot, err)
	}

	logging.Init("")

	cfg, err := config.Resolve(root, env, planVarFile)
	if err != nil {
		return err
	}

	schema := probeSchema(cmd, cfg)

	plan := reconcile.Compute(schema, reconcile.Defaults{
		CreateSchema: planCreateSchema,
		CreateVolume: planCreateVolume,
		CreateTable:  planCreateTable,
		UploadData:   planUploadData,
	})

	fmt.Printf("# schema %s.%s: %s (basis: %s)\n",
		cfg.Value("catalog_name"), cfg.Value("schema_name"), schema, plan.Basis)
	for _, v := range plan.Vars() {
		fmt.Println(v)
	}
	return nil
}

// probeSchema resolves the schema's existence, degrading to a probe-failed
// finding rather than aborting: the flag engine's fail-open policy owns
// what happens next.
func probeSchema(cmd *cobra.Command, cfg *config.Resolved) inspect.Existence {
	wi, err := inspect.NewWorkspaceInspector(cfg.Value("databricks_host"), cfg.Value("databricks_token"))
	if err != nil {
		logging.Warn("workspace client unavailable", "error", err)
		return inspect.ExistenceProbeFailed
	}

	status, err := wi.Inspect(cmd.Context(), inspect.Names{
		Catalog:     cfg.Value("catalog_name"),
		Schema:      cfg.Value("schema_name"),
		Table:       cfg.Value("table_name"),
		Volume:      cfg.Value("volume_name"),
		WarehouseID: cfg.Value("warehouse_id"),
	})
	if err != nil {
		logging.Warn("schema probe failed", "error", err)
		return inspect.ExistenceProbeFailed
	}
	return status.Resource(inspect.KindSchema).Existence
}
