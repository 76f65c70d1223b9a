package platform

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Host abstracts the handful of OS facilities checks depend on — tool
// lookup, tool execution, environment variables, and path resolution — so
// one implementation of the checks runs everywhere and tests can inject a
// fake host.
type Host interface {
	// LookTool resolves an external tool on PATH.
	LookTool(name string) (string, bool)

	// RunTool executes an external tool and returns its combined output.
	RunTool(ctx context.Context, name string, args ...string) (string, error)

	// Getenv reads an environment variable.
	Getenv(key string) string

	// ResolvePath makes a path absolute relative to the invocation root.
	ResolvePath(path string) string
}

// osHost is the real-OS Host implementation.
type osHost struct {
	root string
}

// NewHost returns a Host rooted at the invocation directory.
func NewHost(root string) Host {
	return &osHost{root: root}
}

func (h *osHost) LookTool(name string) (string, bool) {
	path, err := exec.LookPath(name)
	return path, err == nil
}

func (h *osHost) RunTool(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func (h *osHost) Getenv(key string) string {
	return os.Getenv(key)
}

func (h *osHost) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(h.root, path)
}
