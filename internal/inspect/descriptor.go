package inspect

import "errors"

// Existence is the resolved existence of a remote resource. A descriptor
// must leave ExistenceUnknown before any reconciliation decision that
// references it is computed.
type Existence int

const (
	ExistenceUnknown Existence = iota
	ExistencePresent
	ExistenceAbsent
	ExistenceProbeFailed
)

func (e Existence) String() string {
	switch e {
	case ExistencePresent:
		return "present"
	case ExistenceAbsent:
		return "absent"
	case ExistenceProbeFailed:
		return "probe-failed"
	default:
		return "unknown"
	}
}

// ResourceKind identifies a type of probed remote resource, ordered by
// hierarchy depth.
type ResourceKind int

const (
	KindBucket ResourceKind = iota
	KindWorkspace
	KindCatalog
	KindSchema
	KindTable
	KindVolume
	KindWarehouse
)

func (k ResourceKind) String() string {
	switch k {
	case KindBucket:
		return "bucket"
	case KindWorkspace:
		return "workspace"
	case KindCatalog:
		return "catalog"
	case KindSchema:
		return "schema"
	case KindTable:
		return "table"
	case KindVolume:
		return "volume"
	case KindWarehouse:
		return "warehouse"
	default:
		return "unknown"
	}
}

// Descriptor is one named remote resource and what a probe learned about it.
type Descriptor struct {
	Kind      ResourceKind
	Name      string
	Existence Existence
	Metadata  map[string]string
}

// ErrAuthFailure indicates the workspace rejected the resolved credentials.
// It is a hard failure for the platform-state category.
var ErrAuthFailure = errors.New("workspace authentication failed")

// ErrUnreachable indicates the degraded reachability probe could not reach
// the workspace host. Callers treat it as a warning, not a failure.
var ErrUnreachable = errors.New("workspace unreachable")
