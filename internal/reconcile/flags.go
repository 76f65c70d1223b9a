package reconcile

import (
	"fmt"

	"github.com/lakecheck-io/lakecheck/internal/inspect"
)

// Basis records how a plan's flags were decided, so callers can tell a
// confirmed-absent default from an error-driven one.
type Basis string

const (
	// BasisSchemaExists: the schema is confirmed present; everything under
	// it is assumed provisioned and all create flags are forced off.
	BasisSchemaExists Basis = "schema-exists"

	// BasisConfirmedAbsent: the schema is confirmed missing; caller defaults
	// stand.
	BasisConfirmedAbsent Basis = "confirmed-absent"

	// BasisProbeError: the existence probe itself failed. The policy is
	// fail-open — default to creating — but the basis makes the distinction
	// visible to the provisioner and its logs.
	BasisProbeError Basis = "probe-error"
)

// Defaults are the caller-supplied create flags, all true unless overridden.
type Defaults struct {
	CreateSchema bool
	CreateVolume bool
	CreateTable  bool
	UploadData   bool
}

// DefaultFlags returns the standard all-create defaults.
func DefaultFlags() Defaults {
	return Defaults{
		CreateSchema: true,
		CreateVolume: true,
		CreateTable:  true,
		UploadData:   true,
	}
}

// Plan is the create/skip decision set consumed by the external
// provisioner. Computing it keeps re-provisioning idempotent: nothing that
// already exists is created twice.
type Plan struct {
	CreateSchema bool
	CreateVolume bool
	CreateTable  bool
	UploadData   bool
	Basis        Basis
}

// Compute derives the plan from the schema existence finding. A present
// schema overrides every caller default to false; anything else passes the
// defaults through, with the basis recording whether absence was confirmed
// or assumed after a probe error.
func Compute(schema inspect.Existence, def Defaults) Plan {
	if schema == inspect.ExistencePresent {
		return Plan{Basis: BasisSchemaExists}
	}

	plan := Plan{
		CreateSchema: def.CreateSchema,
		CreateVolume: def.CreateVolume,
		CreateTable:  def.CreateTable,
		UploadData:   def.UploadData,
		Basis:        BasisConfirmedAbsent,
	}
	if schema != inspect.ExistenceAbsent {
		plan.Basis = BasisProbeError
	}
	return plan
}

// Vars renders the plan as the TF_VAR environment assignments the
// provisioner consumes.
func (p Plan) Vars() []string {
	return []string{
		fmt.Sprintf("TF_VAR_create_schema=%t", p.CreateSchema),
		fmt.Sprintf("TF_VAR_create_volume=%t", p.CreateVolume),
		fmt.Sprintf("TF_VAR_create_table=%t", p.CreateTable),
		fmt.Sprintf("TF_VAR_upload_data=%t", p.UploadData),
	}
}
