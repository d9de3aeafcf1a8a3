package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"platewise/internal/recipe"
)

// ObjectConfig points at a catalog CSV kept in an S3-compatible bucket.
type ObjectConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Object    string
	UseSSL    bool
}

// LoadObject fetches the catalog CSV from object storage and parses it. Used
// by deployments that publish the catalog to a shared bucket instead of
// baking the file into the image.
func LoadObject(ctx context.Context, cfg ObjectConfig) ([]recipe.Recipe, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("catalog: object endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("catalog: object access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	object := strings.TrimSpace(cfg.Object)
	if bucket == "" || object == "" {
		return nil, fmt.Errorf("catalog: object bucket and key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: init object client: %w", err)
	}

	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s/%s: %w", bucket, object, err)
	}
	defer obj.Close()

	recipes, err := Parse(obj)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s/%s: %w", bucket, object, err)
	}
	return recipes, nil
}
