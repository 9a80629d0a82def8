// Package oss publishes result files to Aliyun OSS.
package oss

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

type Client struct {
	client *oss.Client
	bucket string
	region string
}

func NewClient(accessKeyId, accessKeySecret, bucket, region, endpoint string) *Client {
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyId, accessKeySecret)).
		WithRegion(region)
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint)
	}
	return &Client{
		client: oss.NewClient(cfg),
		bucket: bucket,
		region: region,
	}
}

// Upload puts a local file at key with overwrite forbidden and returns its
// public URL. Conflicts surface as errors satisfying IsConflict.
func (c *Client) Upload(ctx context.Context, key, filePath, contentType string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	_, err = c.client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:          oss.Ptr(c.bucket),
		Key:             oss.Ptr(key),
		Body:            f,
		ContentType:     oss.Ptr(contentType),
		ForbidOverwrite: oss.Ptr("true"),
	})
	if err != nil {
		return "", err
	}
	return c.PublicUrl(key), nil
}

// Delete removes an object; missing keys are not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(c.bucket),
		Key:    oss.Ptr(key),
	})
	return err
}

// IsConflict reports whether err is the forbid-overwrite rejection.
func (c *Client) IsConflict(err error) bool {
	var serviceErr *oss.ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == "FileAlreadyExists"
	}
	return false
}

func (c *Client) PublicUrl(key string) string {
	return fmt.Sprintf("https://%s.oss-%s.aliyuncs.com/%s", c.bucket, c.region, key)
}
