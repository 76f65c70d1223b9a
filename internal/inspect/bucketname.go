package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakecheck-io/lakecheck/internal/config"
)

// envPlaceholder is the token the backend pattern file carries where the
// environment name goes. Terraform backend blocks cannot interpolate, so
// the pattern is substituted here instead.
const envPlaceholder = "{env}"

// ResolveBucketName determines the backend state bucket for env. It prefers
// the literal name in backend-config/<env>.s3.tfbackend and falls back to
// the bucket pattern in terraform/backend.tf with the environment
// substituted.
func ResolveBucketName(root, env string) (string, error) {
	literal := filepath.Join(root, "backend-config", env+".s3.tfbackend")
	if name, err := bucketFrom(literal); err == nil && name != "" {
		return name, nil
	}

	pattern := filepath.Join(root, "terraform", "backend.tf")
	name, err := bucketFrom(pattern)
	if err != nil || name == "" {
		return "", fmt.Errorf("no backend bucket name found for %s (tried %s, %s)", env, literal, pattern)
	}
	return strings.ReplaceAll(name, envPlaceholder, env), nil
}

// bucketFrom scans a file for its bucket assignment.
func bucketFrom(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	entries, err := config.ScanEntries(f, path)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Name == "bucket" {
			return e.Value, nil
		}
	}
	return "", nil
}

// StateObjectKey returns the provisioner's state object key for env,
// matching the Terraform S3 backend's workspace layout.
func StateObjectKey(env string) string {
	return fmt.Sprintf("env:/%s/terraform.tfstate", env)
}
