package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/lakecheck-io/lakecheck/internal/logging"
)

// s3API is the read-only S3 surface the bucket probe uses.
type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetBucketVersioning(ctx context.Context, params *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error)
	GetBucketEncryption(ctx context.Context, params *s3.GetBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// BackendInspector probes the provisioner's S3 state backend. It holds the
// client explicitly; credentials never leak into process environment for
// nested tool invocations.
type BackendInspector struct {
	client s3API
}

// NewBackendInspector builds an inspector from the default AWS credential
// chain for the given region.
func NewBackendInspector(ctx context.Context, region string) (*BackendInspector, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &BackendInspector{client: s3.NewFromConfig(cfg)}, nil
}

// BucketStatus is what the backend probe reports for one environment.
type BucketStatus struct {
	Bucket      Descriptor
	Versioning  string // "Enabled", "Suspended", or "" when never enabled
	Encryption  string // default SSE algorithm, "" when unset
	StateObject Descriptor
}

// Detail renders the single-line summary used in check output.
func (s *BucketStatus) Detail() string {
	if s.Bucket.Existence != ExistencePresent {
		return fmt.Sprintf("bucket %s %s", s.Bucket.Name, s.Bucket.Existence)
	}

	versioning := s.Versioning
	if versioning == "" {
		versioning = "disabled"
	}
	encryption := s.Encryption
	if encryption == "" {
		encryption = "none"
	}

	stateObj := "no state object"
	if s.StateObject.Existence == ExistencePresent {
		stateObj = fmt.Sprintf("state %s bytes @ %s",
			s.StateObject.Metadata["size"], s.StateObject.Metadata["last_modified"])
	}

	return fmt.Sprintf("bucket %s present (versioning=%s, encryption=%s, %s)",
		s.Bucket.Name, strings.ToLower(versioning), encryption, stateObj)
}

// InspectBucket resolves the existence and health of the backend bucket and
// its state object for env. An absent bucket comes back with a resolved
// descriptor and nil error; the error return means the probe itself failed.
func (bi *BackendInspector) InspectBucket(ctx context.Context, bucket, env string) (*BucketStatus, error) {
	status := &BucketStatus{
		Bucket: Descriptor{Kind: KindBucket, Name: bucket, Existence: ExistenceUnknown},
		StateObject: Descriptor{
			Kind:      KindBucket,
			Name:      fmt.Sprintf("s3://%s/%s", bucket, StateObjectKey(env)),
			Existence: ExistenceUnknown,
		},
	}

	_, err := bi.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		if isNotFound(err) {
			status.Bucket.Existence = ExistenceAbsent
			status.StateObject.Existence = ExistenceAbsent
			return status, nil
		}
		status.Bucket.Existence = ExistenceProbeFailed
		return status, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	status.Bucket.Existence = ExistencePresent

	// Versioning and encryption are health metadata; a denied sub-probe
	// leaves the field empty rather than failing the whole check.
	if out, err := bi.client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: aws.String(bucket)}); err == nil {
		status.Versioning = string(out.Status)
	} else {
		logging.Debug("versioning probe failed", "bucket", bucket, "error", err)
	}

	if out, err := bi.client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: aws.String(bucket)}); err == nil {
		if cfg := out.ServerSideEncryptionConfiguration; cfg != nil && len(cfg.Rules) > 0 {
			if def := cfg.Rules[0].ApplyServerSideEncryptionByDefault; def != nil {
				status.Encryption = string(def.SSEAlgorithm)
			}
		}
	} else {
		logging.Debug("encryption probe failed", "bucket", bucket, "error", err)
	}

	key := StateObjectKey(env)
	head, err := bi.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	switch {
	case err == nil:
		status.StateObject.Existence = ExistencePresent
		status.StateObject.Metadata = map[string]string{}
		if head.ContentLength != nil {
			status.StateObject.Metadata["size"] = fmt.Sprintf("%d", *head.ContentLength)
		}
		if head.LastModified != nil {
			status.StateObject.Metadata["last_modified"] = head.LastModified.UTC().Format(time.RFC3339)
		}
	case isNotFound(err):
		status.StateObject.Existence = ExistenceAbsent
	default:
		status.StateObject.Existence = ExistenceProbeFailed
		logging.Debug("state object probe failed", "key", key, "error", err)
	}

	return status, nil
}

// isNotFound classifies S3 absence responses. HeadBucket and HeadObject
// surface bare 404s, so the error message fallback mirrors the API
// variations.
func isNotFound(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "NotFound", "NoSuchBucket", "NoSuchKey":
			return true
		}
	}
	return strings.Contains(err.Error(), "StatusCode: 404") || strings.Contains(err.Error(), "NotFound")
}
