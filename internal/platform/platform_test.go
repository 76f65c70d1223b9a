package platform

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	h := NewHost("/opt/pipeline")
	assert.Equal(t, filepath.Join("/opt/pipeline", "data", "country_currency.csv"),
		h.ResolvePath("data/country_currency.csv"))
	assert.Equal(t, "/etc/hosts", h.ResolvePath("/etc/hosts"))
}

func TestGetenv(t *testing.T) {
	t.Setenv("LAKECHECK_TEST_VALUE", "42")
	h := NewHost(".")
	assert.Equal(t, "42", h.Getenv("LAKECHECK_TEST_VALUE"))
	assert.Empty(t, h.Getenv("LAKECHECK_TEST_UNSET"))
}

func TestLookTool(t *testing.T) {
	h := NewHost(".")
	// sh is present on every platform the CI matrix covers.
	path, ok := h.LookTool("sh")
	require.True(t, ok)
	assert.NotEmpty(t, path)

	_, ok = h.LookTool("definitely-not-a-real-tool-xyz")
	assert.False(t, ok)
}

func TestRunTool(t *testing.T) {
	h := NewHost(".")
	out, err := h.RunTool(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}
