// Package s3fetch serves the s3 scheme of the protocol handler registry,
// fetching bundles from S3-compatible object storage through minio.
package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/protocol"
)

// Scheme served by this package. Locators take the form s3://bucket/key.
const Scheme = "s3"

// Config carries the connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// Handler fetches objects through a minio client.
type Handler struct {
	client *minio.Client
}

// New connects a handler to the configured endpoint.
func New(cfg Config) (*Handler, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("s3 endpoint must not be empty")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &Handler{client: client}, nil
}

// Open fetches the object named by an s3://bucket/key locator. The object is
// stat'ed up front so a missing key fails here instead of on first read.
func (h *Handler) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	bucket, key, err := SplitLocator(locator)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Fetching remote locator.", "locator", locator, "bucket", bucket, "key", key)

	object, err := h.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch '%s': %w", locator, err)
	}
	if _, err := object.Stat(); err != nil {
		object.Close()
		return nil, fmt.Errorf("failed to fetch '%s': %w", locator, err)
	}
	return object, nil
}

// SplitLocator splits an s3://bucket/key locator into bucket and object key.
func SplitLocator(locator string) (string, string, error) {
	rest, ok := strings.CutPrefix(locator, Scheme+"://")
	if !ok {
		return "", "", fmt.Errorf("locator '%s' is not an s3 locator", locator)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("locator '%s' must name a bucket and an object key", locator)
	}
	return bucket, key, nil
}

// Factory returns the handler factory serving the s3 scheme.
func Factory(cfg Config) (protocol.HandlerFactory, error) {
	handler, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return protocol.HandlerFactoryFunc(func(scheme string) (protocol.Handler, bool) {
		if scheme == Scheme {
			return handler, true
		}
		return nil, false
	}), nil
}
