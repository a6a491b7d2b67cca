// Package downloads lists the files already published in the Alliance
// downloads bucket.
//
// Object keys have the shape "{schema}/{datatype}/{provider}/{file}". Keys
// of any other shape are not submissions and are skipped.
package downloads

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Default location of the public downloads bucket.
const (
	DefaultEndpoint = "s3.amazonaws.com"
	DefaultBucket   = "download.alliancegenome.org"
	DefaultRegion   = "us-east-1"
)

// Config locates the downloads bucket.
type Config struct {
	Endpoint string
	Bucket   string
	Region   string
	UseSSL   bool
}

// Validate checks that the bucket can be addressed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("downloads endpoint is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return fmt.Errorf("downloads bucket is required")
	}
	return nil
}

// NewClient returns an anonymous client for the bucket. The bucket name
// contains dots, so path-style addressing is used.
func NewClient(cfg Config) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &minio.Options{
		Creds:        credentials.NewStaticV4("", "", ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
		Transport:    newTransport(),
	}
	return minio.New(cfg.Endpoint, opts)
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// ObjectLister is the listing subset of *minio.Client.
type ObjectLister interface {
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// List walks the whole bucket and returns the submissions f accepts, in
// key order. Pagination is handled by the client.
func List(ctx context.Context, lister ObjectLister, bucket string, f Filter) ([]Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []Object
	for info := range lister.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s: %w", bucket, info.Err)
		}
		obj, ok := FromInfo(info)
		if !ok {
			continue
		}
		if f.Match(obj) {
			out = append(out, obj)
		}
	}
	return out, nil
}
