// Package datasource abstracts where directory data comes from. A source
// hands back a JSON document on demand and can poll for upstream changes so
// callers may refresh cached state early.
package datasource

import (
	"context"
	"io"
)

// DataSource represents a source of directory data.
type DataSource interface {
	// Load returns a reader for the current JSON document.
	Load(ctx context.Context) (io.ReadCloser, error)

	// Watch monitors for changes and calls the callback when the document
	// is updated. It returns after starting the watcher; the watcher stops
	// when ctx is cancelled.
	Watch(ctx context.Context, callback func() error) error

	// String returns a description of this data source.
	String() string
}
