package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lakecheck-io/lakecheck/internal/config"
	"github.com/lakecheck-io/lakecheck/internal/datafile"
	"github.com/lakecheck-io/lakecheck/internal/inspect"
	"github.com/lakecheck-io/lakecheck/internal/logging"
	"github.com/lakecheck-io/lakecheck/internal/platform"
	"github.com/lakecheck-io/lakecheck/internal/reconcile"
	"github.com/lakecheck-io/lakecheck/internal/report"
)

// BackendProber probes the S3 state backend.
type BackendProber interface {
	InspectBucket(ctx context.Context, bucket, env string) (*inspect.BucketStatus, error)
}

// PlatformProber walks the workspace hierarchy.
type PlatformProber interface {
	Inspect(ctx context.Context, names inspect.Names) (*inspect.PlatformStatus, error)
}

// Runner executes the fixed validation sequence for one environment and
// owns all per-run state: the resolved configuration, the report under
// construction, and the schema existence finding the flag engine consumes.
// Checks run strictly one at a time; nothing here mutates remote state.
type Runner struct {
	Root         string
	Environment  string
	VarFile      string
	DataFile     string
	RunDataCheck bool

	Host platform.Host
	Out  io.Writer

	// Prober factories are deferred because region and credentials only
	// become known once configuration resolves. Tests inject fakes here.
	NewBackendProber  func(ctx context.Context, region string) (BackendProber, error)
	NewPlatformProber func(host, token string) (PlatformProber, error)

	cfg          *config.Resolved
	schemaResult inspect.Existence
}

// New returns a Runner with production wiring for env rooted at root.
func New(root, env string) *Runner {
	return &Runner{
		Root:         root,
		Environment:  env,
		VarFile:      config.DefaultVarFile,
		DataFile:     datafile.DefaultPath,
		RunDataCheck: true,
		Host:         platform.NewHost(root),
		Out:          os.Stdout,
		NewBackendProber: func(ctx context.Context, region string) (BackendProber, error) {
			return inspect.NewBackendInspector(ctx, region)
		},
		NewPlatformProber: func(host, token string) (PlatformProber, error) {
			return inspect.NewWorkspaceInspector(host, token)
		},
	}
}

// Run executes every enabled check in fixed order. A check that fails — or
// that errors internally — degrades to a fail outcome and never blocks the
// checks after it. The returned report decides the process exit status.
func (r *Runner) Run(ctx context.Context) *report.Report {
	rep := report.New()
	r.schemaResult = inspect.ExistenceUnknown

	checks := []struct {
		name    string
		fn      func(context.Context) (report.Status, string)
		enabled bool
	}{
		{"Prerequisites", r.checkPrerequisites, true},
		{"Configuration", r.checkConfiguration, true},
		{"BackendState", r.checkBackend, true},
		{"PlatformState", r.checkPlatform, true},
		{"DataFile", r.checkDataFile, r.RunDataCheck},
	}

	for _, c := range checks {
		if !c.enabled {
			logging.Debug("check skipped", "check", c.name)
			continue
		}
		status, detail := c.fn(ctx)
		outcome := report.Check{Name: c.name, Status: status, Detail: detail}
		rep.Add(outcome)
		fmt.Fprintln(r.Out, outcome.Line())
	}

	return rep
}

// SchemaExistence returns the schema finding from the platform check, or
// ExistenceProbeFailed when the walk never resolved it.
func (r *Runner) SchemaExistence() inspect.Existence {
	if r.schemaResult == inspect.ExistenceUnknown {
		return inspect.ExistenceProbeFailed
	}
	return r.schemaResult
}

// ReconcilePlan computes the provisioner's create/skip flags from the
// schema finding of the last Run.
func (r *Runner) ReconcilePlan(def reconcile.Defaults) reconcile.Plan {
	return reconcile.Compute(r.SchemaExistence(), def)
}
