package reconcile

import (
	"testing"

	"github.com/lakecheck-io/lakecheck/internal/inspect"
	"github.com/stretchr/testify/assert"
)

func TestComputeSchemaExistsOverridesDefaults(t *testing.T) {
	plan := Compute(inspect.ExistencePresent, DefaultFlags())
	assert.False(t, plan.CreateSchema)
	assert.False(t, plan.CreateVolume)
	assert.False(t, plan.CreateTable)
	assert.False(t, plan.UploadData)
	assert.Equal(t, BasisSchemaExists, plan.Basis)

	// Caller defaults must not leak through a confirmed-present schema.
	plan = Compute(inspect.ExistencePresent, Defaults{CreateSchema: true, UploadData: true})
	assert.False(t, plan.CreateSchema)
	assert.False(t, plan.UploadData)
}

func TestComputeConfirmedAbsentKeepsDefaults(t *testing.T) {
	def := Defaults{CreateSchema: true, CreateVolume: false, CreateTable: true, UploadData: false}
	plan := Compute(inspect.ExistenceAbsent, def)
	assert.Equal(t, def.CreateSchema, plan.CreateSchema)
	assert.Equal(t, def.CreateVolume, plan.CreateVolume)
	assert.Equal(t, def.CreateTable, plan.CreateTable)
	assert.Equal(t, def.UploadData, plan.UploadData)
	assert.Equal(t, BasisConfirmedAbsent, plan.Basis)
}

func TestComputeProbeErrorFailsOpen(t *testing.T) {
	for _, existence := range []inspect.Existence{inspect.ExistenceProbeFailed, inspect.ExistenceUnknown} {
		plan := Compute(existence, DefaultFlags())
		assert.True(t, plan.CreateSchema)
		assert.True(t, plan.CreateVolume)
		assert.True(t, plan.CreateTable)
		assert.True(t, plan.UploadData)
		// Error-driven default, distinguishable from confirmed absence.
		assert.Equal(t, BasisProbeError, plan.Basis)
	}
}

func TestPlanVars(t *testing.T) {
	plan := Compute(inspect.ExistencePresent, DefaultFlags())
	assert.Equal(t, []string{
		"TF_VAR_create_schema=false",
		"TF_VAR_create_volume=false",
		"TF_VAR_create_table=false",
		"TF_VAR_upload_data=false",
	}, plan.Vars())
}
