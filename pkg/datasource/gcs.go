package datasource

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"k8s.io/klog"
)

// GCSConfig describes a Google Cloud Storage object holding directory data.
type GCSConfig struct {
	Bucket          string
	ObjectPath      string
	CredentialsJSON string
	CheckInterval   time.Duration
}

// GCSDataSource reads a JSON document from a GCS object and polls object
// metadata for changes.
type GCSDataSource struct {
	config      GCSConfig
	client      *storage.Client
	lastModTime time.Time
}

// NewGCSDataSource creates a GCS-backed data source. Without explicit
// credentials the client falls back to Application Default Credentials.
func NewGCSDataSource(ctx context.Context, config GCSConfig) (*GCSDataSource, error) {
	if config.CheckInterval == 0 {
		config.CheckInterval = 5 * time.Minute
	}

	var client *storage.Client
	var err error
	if config.CredentialsJSON != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSDataSource{config: config, client: client}, nil
}

// Load returns a reader for the GCS object.
func (g *GCSDataSource) Load(ctx context.Context) (io.ReadCloser, error) {
	object := g.client.Bucket(g.config.Bucket).Object(g.config.ObjectPath)

	attrs, err := object.Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get object attributes for %s: %w", g, err)
	}
	g.lastModTime = attrs.Updated

	reader, err := object.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create object reader for %s: %w", g, err)
	}
	return reader, nil
}

// Watch polls object metadata and invokes callback when the object is
// updated.
func (g *GCSDataSource) Watch(ctx context.Context, callback func() error) error {
	ticker := time.NewTicker(g.config.CheckInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				object := g.client.Bucket(g.config.Bucket).Object(g.config.ObjectPath)
				attrs, err := object.Attrs(ctx)
				if err != nil {
					klog.Warningf("Failed to check %s for changes: %v", g, err)
					continue
				}
				if attrs.Updated.After(g.lastModTime) {
					g.lastModTime = attrs.Updated
					klog.Infof("Object %s updated, reloading", g)
					if err := callback(); err != nil {
						klog.Errorf("Reload of %s failed: %v", g, err)
					}
				}
			}
		}
	}()

	return nil
}

// String returns a description of this data source.
func (g *GCSDataSource) String() string {
	return fmt.Sprintf("gs://%s/%s", g.config.Bucket, g.config.ObjectPath)
}

// Close closes the underlying GCS client.
func (g *GCSDataSource) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
