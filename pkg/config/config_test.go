package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
snapshot_ttl: 45s
default_page_size: 25
org_sources:
  - file: /data/org-a.json
  - gcs:
      bucket: directory-data
      object_path: rosters/org-b.json
      check_interval: 10m
identity:
  source:
    file: /data/links.json
  cache_ttl: 2m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if time.Duration(cfg.SnapshotTTL) != 45*time.Second {
		t.Errorf("SnapshotTTL = %v", time.Duration(cfg.SnapshotTTL))
	}
	if cfg.DefaultPageSize != 25 {
		t.Errorf("DefaultPageSize = %d", cfg.DefaultPageSize)
	}
	if len(cfg.OrgSources) != 2 {
		t.Fatalf("got %d org sources", len(cfg.OrgSources))
	}
	if cfg.OrgSources[0].File != "/data/org-a.json" {
		t.Errorf("first source = %+v", cfg.OrgSources[0])
	}
	gcs := cfg.OrgSources[1].GCS
	if gcs == nil || gcs.Bucket != "directory-data" || time.Duration(gcs.CheckInterval) != 10*time.Minute {
		t.Errorf("gcs source = %+v", gcs)
	}
	if time.Duration(cfg.Identity.CacheTTL) != 2*time.Minute {
		t.Errorf("identity cache TTL = %v", time.Duration(cfg.Identity.CacheTTL))
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
org_sources:
  - file: /data/org-a.json
identity:
  source:
    file: /data/links.json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want default %q", cfg.Listen, DefaultListen)
	}
	if time.Duration(cfg.SnapshotTTL) != DefaultSnapshotTTL {
		t.Errorf("SnapshotTTL = %v, want default %v", time.Duration(cfg.SnapshotTTL), DefaultSnapshotTTL)
	}
	if cfg.DefaultPageSize != DefaultDefaultPageSize {
		t.Errorf("DefaultPageSize = %d", cfg.DefaultPageSize)
	}
	if time.Duration(cfg.Identity.CacheTTL) != DefaultLinkCacheTTL {
		t.Errorf("identity cache TTL = %v", time.Duration(cfg.Identity.CacheTTL))
	}
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "no org sources",
			contents: `
identity:
  source:
    file: /data/links.json
`,
		},
		{
			name: "source with both backends",
			contents: `
org_sources:
  - file: /data/org-a.json
    gcs:
      bucket: b
      object_path: o
identity:
  source:
    file: /data/links.json
`,
		},
		{
			name: "identity source missing",
			contents: `
org_sources:
  - file: /data/org-a.json
`,
		},
		{
			name: "bad duration",
			contents: `
snapshot_ttl: often
org_sources:
  - file: /data/org-a.json
identity:
  source:
    file: /data/links.json
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.contents)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
