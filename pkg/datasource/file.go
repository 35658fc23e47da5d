package datasource

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"k8s.io/klog"
)

const defaultFileCheckInterval = 30 * time.Second

// FileDataSource reads a JSON document from the local filesystem and polls
// its modification time for changes.
type FileDataSource struct {
	fs            afero.Fs
	path          string
	checkInterval time.Duration
	lastModTime   time.Time
}

// NewFileDataSource creates a file-backed data source for path.
func NewFileDataSource(fs afero.Fs, path string) *FileDataSource {
	return &FileDataSource{
		fs:            fs,
		path:          path,
		checkInterval: defaultFileCheckInterval,
	}
}

// Load returns a reader for the file contents.
func (f *FileDataSource) Load(ctx context.Context) (io.ReadCloser, error) {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", f.path, err)
	}
	f.lastModTime = info.ModTime()

	file, err := f.fs.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	return file, nil
}

// Watch polls the file's modification time and invokes callback when it
// advances past the last loaded version.
func (f *FileDataSource) Watch(ctx context.Context, callback func() error) error {
	ticker := time.NewTicker(f.checkInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				info, err := f.fs.Stat(f.path)
				if err != nil {
					klog.Warningf("Failed to check %s for changes: %v", f.path, err)
					continue
				}
				if info.ModTime().After(f.lastModTime) {
					f.lastModTime = info.ModTime()
					klog.Infof("File %s updated, reloading", f.path)
					if err := callback(); err != nil {
						klog.Errorf("Reload of %s failed: %v", f.path, err)
					}
				}
			}
		}
	}()

	return nil
}

// String returns a description of this data source.
func (f *FileDataSource) String() string {
	return fmt.Sprintf("file://%s", f.path)
}
