package inspect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 implements s3API for tests.
type fakeS3 struct {
	headBucketErr error
	versioning    s3types.BucketVersioningStatus
	versioningErr error
	sseAlgorithm  s3types.ServerSideEncryption
	encryptionErr error
	headObjectOut *s3.HeadObjectOutput
	headObjectErr error
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headBucketErr != nil {
		return nil, f.headBucketErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) GetBucketVersioning(ctx context.Context, params *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error) {
	if f.versioningErr != nil {
		return nil, f.versioningErr
	}
	return &s3.GetBucketVersioningOutput{Status: f.versioning}, nil
}

func (f *fakeS3) GetBucketEncryption(ctx context.Context, params *s3.GetBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error) {
	if f.encryptionErr != nil {
		return nil, f.encryptionErr
	}
	return &s3.GetBucketEncryptionOutput{
		ServerSideEncryptionConfiguration: &s3types.ServerSideEncryptionConfiguration{
			Rules: []s3types.ServerSideEncryptionRule{
				{ApplyServerSideEncryptionByDefault: &s3types.ServerSideEncryptionByDefault{
					SSEAlgorithm: f.sseAlgorithm,
				}},
			},
		},
	}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headObjectErr != nil {
		return nil, f.headObjectErr
	}
	return f.headObjectOut, nil
}

func notFoundErr() error {
	return &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"}
}

func TestInspectBucketPresent(t *testing.T) {
	modified := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	bi := &BackendInspector{client: &fakeS3{
		versioning:   s3types.BucketVersioningStatusEnabled,
		sseAlgorithm: s3types.ServerSideEncryptionAes256,
		headObjectOut: &s3.HeadObjectOutput{
			ContentLength: aws.Int64(4096),
			LastModified:  &modified,
		},
	}}

	status, err := bi.InspectBucket(context.Background(), "dataplatform-state-dev", "dev")
	require.NoError(t, err)
	assert.Equal(t, ExistencePresent, status.Bucket.Existence)
	assert.Equal(t, "Enabled", status.Versioning)
	assert.Equal(t, "AES256", status.Encryption)
	assert.Equal(t, ExistencePresent, status.StateObject.Existence)
	assert.Equal(t, "4096", status.StateObject.Metadata["size"])
	assert.Equal(t, "2026-08-01T12:00:00Z", status.StateObject.Metadata["last_modified"])
	assert.Contains(t, status.Detail(), "versioning=enabled")
}

func TestInspectBucketAbsent(t *testing.T) {
	bi := &BackendInspector{client: &fakeS3{headBucketErr: notFoundErr()}}

	status, err := bi.InspectBucket(context.Background(), "missing-bucket", "prod")
	require.NoError(t, err)
	assert.Equal(t, ExistenceAbsent, status.Bucket.Existence)
	assert.Contains(t, status.Detail(), "absent")
}

func TestInspectBucketProbeFailure(t *testing.T) {
	bi := &BackendInspector{client: &fakeS3{
		headBucketErr: &smithy.GenericAPIError{Code: "Forbidden", Message: "Access Denied"},
	}}

	status, err := bi.InspectBucket(context.Background(), "denied-bucket", "dev")
	require.Error(t, err)
	assert.Equal(t, ExistenceProbeFailed, status.Bucket.Existence)
}

func TestInspectBucketStateObjectAbsent(t *testing.T) {
	bi := &BackendInspector{client: &fakeS3{headObjectErr: notFoundErr()}}

	status, err := bi.InspectBucket(context.Background(), "dataplatform-state-dev", "dev")
	require.NoError(t, err)
	assert.Equal(t, ExistencePresent, status.Bucket.Existence)
	assert.Equal(t, ExistenceAbsent, status.StateObject.Existence)
	assert.Contains(t, status.Detail(), "no state object")
}

func TestInspectBucketSubProbeFailuresAreSoft(t *testing.T) {
	// Denied versioning/encryption sub-probes leave metadata empty without
	// failing the check.
	bi := &BackendInspector{client: &fakeS3{
		versioningErr: errors.New("access denied"),
		encryptionErr: errors.New("access denied"),
		headObjectErr: notFoundErr(),
	}}

	status, err := bi.InspectBucket(context.Background(), "b", "dev")
	require.NoError(t, err)
	assert.Equal(t, ExistencePresent, status.Bucket.Existence)
	assert.Empty(t, status.Versioning)
	assert.Empty(t, status.Encryption)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(notFoundErr()))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchBucket"}))
	assert.True(t, isNotFound(errors.New("operation error S3: HeadObject, https response error StatusCode: 404")))
	assert.False(t, isNotFound(errors.New("connection refused")))
}
