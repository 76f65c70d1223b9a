package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/apierr"

	"github.com/lakecheck-io/lakecheck/internal/logging"
)

// workspaceAPI is the narrow workspace surface the platform probe walks.
// Existence results are pre-classified so callers never see raw API 404s.
type workspaceAPI interface {
	CurrentUser(ctx context.Context) (string, error)
	CatalogExistence(ctx context.Context, name string) (Existence, error)
	SchemaExistence(ctx context.Context, fullName string) (Existence, error)
	TableExistence(ctx context.Context, fullName string) (Existence, error)
	VolumeExistence(ctx context.Context, fullName string) (Existence, error)
	WarehouseState(ctx context.Context, id string) (string, error)
}

// sdkWorkspace backs workspaceAPI with the Databricks SDK client.
type sdkWorkspace struct {
	w *databricks.WorkspaceClient
}

func newSDKWorkspace(host, token string) (*sdkWorkspace, error) {
	w, err := databricks.NewWorkspaceClient(&databricks.Config{
		Host:  host,
		Token: token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build workspace client for %s: %w", host, err)
	}
	return &sdkWorkspace{w: w}, nil
}

func (s *sdkWorkspace) CurrentUser(ctx context.Context) (string, error) {
	me, err := s.w.CurrentUser.Me(ctx)
	if err != nil {
		return "", err
	}
	return me.UserName, nil
}

func (s *sdkWorkspace) CatalogExistence(ctx context.Context, name string) (Existence, error) {
	_, err := s.w.Catalogs.GetByName(ctx, name)
	return classifyExistence(err)
}

func (s *sdkWorkspace) SchemaExistence(ctx context.Context, fullName string) (Existence, error) {
	_, err := s.w.Schemas.GetByFullName(ctx, fullName)
	return classifyExistence(err)
}

func (s *sdkWorkspace) TableExistence(ctx context.Context, fullName string) (Existence, error) {
	_, err := s.w.Tables.GetByFullName(ctx, fullName)
	return classifyExistence(err)
}

func (s *sdkWorkspace) VolumeExistence(ctx context.Context, fullName string) (Existence, error) {
	_, err := s.w.Volumes.ReadByName(ctx, fullName)
	return classifyExistence(err)
}

func (s *sdkWorkspace) WarehouseState(ctx context.Context, id string) (string, error) {
	wh, err := s.w.Warehouses.GetById(ctx, id)
	if err != nil {
		return "", err
	}
	return string(wh.State), nil
}

func classifyExistence(err error) (Existence, error) {
	if err == nil {
		return ExistencePresent, nil
	}
	if apierr.IsMissing(err) {
		return ExistenceAbsent, nil
	}
	return ExistenceProbeFailed, err
}

// Names carries the qualified names the platform probe walks.
type Names struct {
	Catalog     string
	Schema      string
	Table       string
	Volume      string
	WarehouseID string
}

// PlatformStatus is what the workspace probe reports for one environment.
type PlatformStatus struct {
	User      string
	Resources []Descriptor
	Warnings  []string
}

// Resource returns the walked descriptor of the given kind, resolved or not.
func (s *PlatformStatus) Resource(kind ResourceKind) Descriptor {
	for _, d := range s.Resources {
		if d.Kind == kind {
			return d
		}
	}
	return Descriptor{Kind: kind, Existence: ExistenceUnknown}
}

// Detail renders the single-line summary used in check output.
func (s *PlatformStatus) Detail() string {
	line := fmt.Sprintf("authenticated as %s", s.User)
	if len(s.Warnings) > 0 {
		line += "; " + strings.Join(s.Warnings, "; ")
	}
	return line
}

// WorkspaceInspector walks the workspace hierarchy read-only: catalog,
// then schema, then table and volume, plus the warehouse run state.
type WorkspaceInspector struct {
	api workspaceAPI
}

// NewWorkspaceInspector authenticates with an explicit host and token. The
// credentials live in the client object only.
func NewWorkspaceInspector(host, token string) (*WorkspaceInspector, error) {
	api, err := newSDKWorkspace(host, token)
	if err != nil {
		return nil, err
	}
	return &WorkspaceInspector{api: api}, nil
}

// Inspect authenticates and walks the hierarchy. Authentication failure is
// the only hard error; every nested miss or nested probe error lands in
// Warnings with its descriptor marked accordingly.
func (wi *WorkspaceInspector) Inspect(ctx context.Context, names Names) (*PlatformStatus, error) {
	user, err := wi.api.CurrentUser(ctx)
	if err != nil {
		if isAuthError(err) {
			return nil, fmt.Errorf("%w: %v", ErrAuthFailure, err)
		}
		return nil, fmt.Errorf("workspace probe failed: %w", err)
	}

	status := &PlatformStatus{User: user}

	walk := []struct {
		kind  ResourceKind
		name  string
		probe func(context.Context, string) (Existence, error)
	}{
		{KindCatalog, names.Catalog, wi.api.CatalogExistence},
		{KindSchema, names.Catalog + "." + names.Schema, wi.api.SchemaExistence},
		{KindTable, names.Catalog + "." + names.Schema + "." + names.Table, wi.api.TableExistence},
		{KindVolume, names.Catalog + "." + names.Schema + "." + names.Volume, wi.api.VolumeExistence},
	}

	for _, step := range walk {
		d := Descriptor{Kind: step.kind, Name: step.name}
		d.Existence, err = step.probe(ctx, step.name)
		switch d.Existence {
		case ExistenceAbsent:
			status.Warnings = append(status.Warnings, fmt.Sprintf("%s %s not found", step.kind, step.name))
		case ExistenceProbeFailed:
			status.Warnings = append(status.Warnings, fmt.Sprintf("%s %s probe failed", step.kind, step.name))
			logging.Warn("nested probe failed", "kind", step.kind.String(), "name", step.name, "error", err)
		}
		status.Resources = append(status.Resources, d)
	}

	wh := Descriptor{Kind: KindWarehouse, Name: names.WarehouseID}
	if state, err := wi.api.WarehouseState(ctx, names.WarehouseID); err == nil {
		wh.Existence = ExistencePresent
		wh.Metadata = map[string]string{"state": state}
		if state != "RUNNING" {
			status.Warnings = append(status.Warnings, fmt.Sprintf("warehouse %s is %s", names.WarehouseID, state))
		}
	} else if apierr.IsMissing(err) {
		wh.Existence = ExistenceAbsent
		status.Warnings = append(status.Warnings, fmt.Sprintf("warehouse %s not found", names.WarehouseID))
	} else {
		wh.Existence = ExistenceProbeFailed
		status.Warnings = append(status.Warnings, fmt.Sprintf("warehouse %s probe failed", names.WarehouseID))
		logging.Warn("warehouse probe failed", "id", names.WarehouseID, "error", err)
	}
	status.Resources = append(status.Resources, wh)

	return status, nil
}

// isAuthError classifies credential rejection as distinct from transport or
// server errors.
func isAuthError(err error) bool {
	var ae *apierr.APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == 401 || ae.StatusCode == 403
	}
	return strings.Contains(err.Error(), "cannot configure default credentials")
}
