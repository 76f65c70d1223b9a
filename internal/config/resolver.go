package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakecheck-io/lakecheck/internal/logging"
)

// DefaultVarFile is the sentinel filename that triggers the multi-directory
// union search.
const DefaultVarFile = "terraform.tfvars"

// RequiredKeys is the fixed catalogue every environment's configuration must
// cover before provisioning can be trusted.
var RequiredKeys = []string{
	"databricks_host",
	"databricks_token",
	"warehouse_id",
	"catalog_name",
	"schema_name",
	"table_name",
	"volume_name",
	"aws_region",
}

// ErrNotFound indicates no candidate configuration file exists for the
// given reference.
var ErrNotFound = errors.New("configuration file not found")

// IncompleteError reports required keys absent from a resolved configuration.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("configuration incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// Resolved is the deduplicated key set gathered for one environment run.
// It is immutable once built; later sources add keys but never overwrite
// earlier ones.
type Resolved struct {
	Environment string
	Primary     string
	Sources     []string

	entries map[string]Entry
	order   []string
}

// SearchDirs returns the candidate directories for bare filenames, in fixed
// precedence order: backend-config dir, platform-infra dir, environment root.
func SearchDirs(root string) []string {
	return []string{
		filepath.Join(root, "backend-config"),
		filepath.Join(root, "terraform"),
		root,
	}
}

// Locate resolves a file reference to the candidate files that exist, in
// precedence order. The first returned path is the primary file.
//
//   - A reference containing a path separator is taken relative to the
//     invocation root with no fallback search.
//   - A bare non-default filename resolves to the first directory match.
//   - The default sentinel resolves to every directory match, because keys
//     for one environment are legitimately split across files.
func Locate(root, ref string) ([]string, error) {
	if strings.ContainsAny(ref, `/\`) {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, ref)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return []string{path}, nil
	}

	var matches []string
	for _, dir := range SearchDirs(root) {
		path := filepath.Join(dir, ref)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		matches = append(matches, path)
		if ref != DefaultVarFile {
			// Non-default names stop at the first match.
			return matches, nil
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return matches, nil
}

// Resolve locates the configuration files for env and accumulates their keys
// into a deduplicated, first-wins set.
func Resolve(root, env, ref string) (*Resolved, error) {
	sources, err := Locate(root, ref)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Environment: env,
		Primary:     sources[0],
		Sources:     sources,
		entries:     make(map[string]Entry),
	}

	for _, src := range sources {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", src, err)
		}
		entries, err := ScanEntries(f, src)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", src, err)
		}

		for _, e := range entries {
			if _, seen := r.entries[e.Name]; seen {
				continue
			}
			r.entries[e.Name] = e
			r.order = append(r.order, e.Name)
		}
	}

	logging.Debug("configuration resolved",
		"environment", env, "primary", r.Primary, "sources", len(sources), "keys", len(r.order))

	return r, nil
}

// Keys returns the resolved entries in discovery order.
func (r *Resolved) Keys() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Has reports whether a key was found in any contributing file.
func (r *Resolved) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Value returns the first-wins raw value for a key, or "" when absent.
func (r *Resolved) Value(name string) string {
	return r.entries[name].Value
}

// MissingRequired returns the subset of RequiredKeys absent from the set,
// in catalogue order.
func (r *Resolved) MissingRequired() []string {
	var missing []string
	for _, k := range RequiredKeys {
		if !r.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}
