package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lakecheck-io/lakecheck/internal/config"
	"github.com/lakecheck-io/lakecheck/internal/datafile"
	"github.com/lakecheck-io/lakecheck/internal/inspect"
	"github.com/lakecheck-io/lakecheck/internal/report"
)

// requiredTools must be on PATH for the provisioner this tool fronts.
// optionalTools improve fidelity but only warrant a warning.
var (
	requiredTools = []string{"terraform"}
	optionalTools = []string{"databricks", "aws"}
)

func (r *Runner) checkPrerequisites(_ context.Context) (report.Status, string) {
	var missing, optional []string
	for _, tool := range requiredTools {
		if _, ok := r.Host.LookTool(tool); !ok {
			missing = append(missing, tool)
		}
	}
	for _, tool := range optionalTools {
		if _, ok := r.Host.LookTool(tool); !ok {
			optional = append(optional, tool)
		}
	}

	if _, err := config.Locate(r.Root, r.VarFile); err != nil {
		detail := fmt.Sprintf("primary config file not found: %s", r.VarFile)
		if len(missing) > 0 {
			detail = fmt.Sprintf("missing tools: %s; %s", strings.Join(missing, ", "), detail)
		}
		return report.StatusFail, detail
	}

	if len(missing) > 0 {
		return report.StatusFail, fmt.Sprintf("missing required tools: %s", strings.Join(missing, ", "))
	}
	if len(optional) > 0 {
		return report.StatusWarn, fmt.Sprintf("optional tools not found: %s", strings.Join(optional, ", "))
	}
	return report.StatusPass, "tooling and primary config file present"
}

func (r *Runner) checkConfiguration(_ context.Context) (report.Status, string) {
	cfg, err := config.Resolve(r.Root, r.Environment, r.VarFile)
	if err != nil {
		return report.StatusFail, err.Error()
	}
	r.cfg = cfg

	if missing := cfg.MissingRequired(); len(missing) > 0 {
		err := &config.IncompleteError{Missing: missing}
		return report.StatusFail, err.Error()
	}

	return report.StatusPass, fmt.Sprintf("%d/%d required keys present across %d file(s)",
		len(config.RequiredKeys), len(config.RequiredKeys), len(cfg.Sources))
}

func (r *Runner) checkBackend(ctx context.Context) (report.Status, string) {
	if r.cfg == nil {
		return report.StatusFail, "configuration unresolved, cannot determine backend"
	}

	bucket, err := inspect.ResolveBucketName(r.Root, r.Environment)
	if err != nil {
		return report.StatusFail, err.Error()
	}

	region := r.cfg.Value("aws_region")
	if region == "" {
		region = "us-east-1"
	}

	prober, err := r.NewBackendProber(ctx, region)
	if err != nil {
		return report.StatusFail, fmt.Sprintf("backend probe unavailable: %v", err)
	}

	status, err := prober.InspectBucket(ctx, bucket, r.Environment)
	if err != nil {
		return report.StatusFail, err.Error()
	}
	if status.Bucket.Existence != inspect.ExistencePresent {
		// The backend bucket is the one remote resource whose absence is a
		// hard failure: without it the provisioner has no state.
		return report.StatusFail, status.Detail()
	}
	return report.StatusPass, status.Detail()
}

func (r *Runner) checkPlatform(ctx context.Context) (report.Status, string) {
	if r.cfg == nil {
		return report.StatusFail, "configuration unresolved, cannot reach workspace"
	}

	host := r.cfg.Value("databricks_host")
	token := r.cfg.Value("databricks_token")
	if host == "" {
		return report.StatusFail, "databricks_host unresolved"
	}
	if token == "" {
		return r.probeFallback(ctx, host, "no token resolved")
	}

	prober, err := r.NewPlatformProber(host, token)
	if err != nil {
		return r.probeFallback(ctx, host, fmt.Sprintf("client unavailable (%v)", err))
	}

	status, err := prober.Inspect(ctx, inspect.Names{
		Catalog:     r.cfg.Value("catalog_name"),
		Schema:      r.cfg.Value("schema_name"),
		Table:       r.cfg.Value("table_name"),
		Volume:      r.cfg.Value("volume_name"),
		WarehouseID: r.cfg.Value("warehouse_id"),
	})
	if err != nil {
		if errors.Is(err, inspect.ErrAuthFailure) {
			return report.StatusFail, err.Error()
		}
		return report.StatusFail, fmt.Sprintf("workspace probe failed: %v", err)
	}

	r.schemaResult = status.Resource(inspect.KindSchema).Existence

	if len(status.Warnings) > 0 {
		return report.StatusWarn, status.Detail()
	}
	return report.StatusPass, status.Detail()
}

// probeFallback is the degraded mode: without a usable client the check
// reports a weaker reachable/unreachable signal, as a warning either way.
func (r *Runner) probeFallback(ctx context.Context, host, reason string) (report.Status, string) {
	if err := inspect.ProbeReachable(ctx, host); err != nil {
		return report.StatusWarn, fmt.Sprintf("degraded (%s): %v", reason, err)
	}
	return report.StatusWarn, fmt.Sprintf("degraded (%s): workspace %s reachable, existence unverified", reason, host)
}

func (r *Runner) checkDataFile(_ context.Context) (report.Status, string) {
	path := r.Host.ResolvePath(r.DataFile)
	res, err := datafile.Validate(path)
	if err != nil {
		return report.StatusFail, err.Error()
	}
	if !res.OK() {
		return report.StatusFail, res.Detail()
	}
	return report.StatusPass, res.Detail()
}
