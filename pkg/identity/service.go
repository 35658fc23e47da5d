package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/openshift-eng/org-directory/pkg/datasource"
)

// Provider maps account logins to corporate links.
type Provider interface {
	Links(ctx context.Context) (map[string]Link, error)
}

// linksCacheKey is the only key ever stored; the cache memoizes the single
// global mapping.
const linksCacheKey = "links"

// linkDocument is the JSON document shape the link source produces.
type linkDocument struct {
	Links []linkEntry `json:"links"`
}

type linkEntry struct {
	Login string `json:"login"`
	Link
}

// Service loads the login-to-identity mapping from a data source and caches
// it for a fixed window so every request inside the window shares one load.
type Service struct {
	source datasource.DataSource
	cache  *ttlcache.Cache[string, map[string]Link]
}

// NewService creates a link service over source, caching loads for ttl.
func NewService(source datasource.DataSource, ttl time.Duration) *Service {
	cache := ttlcache.New[string, map[string]Link](
		ttlcache.WithTTL[string, map[string]Link](ttl),
		ttlcache.WithDisableTouchOnHit[string, map[string]Link](),
	)
	return &Service{source: source, cache: cache}
}

// Links returns the login-to-link mapping, loading it from the data source
// when the cached copy is absent or expired. Load failures propagate and
// are never cached; the next call retries.
func (s *Service) Links(ctx context.Context) (map[string]Link, error) {
	var loadErr error
	loader := ttlcache.LoaderFunc[string, map[string]Link](
		func(cache *ttlcache.Cache[string, map[string]Link], key string) *ttlcache.Item[string, map[string]Link] {
			links, err := s.load(ctx)
			if err != nil {
				loadErr = err
				return nil
			}
			return cache.Set(key, links, ttlcache.DefaultTTL)
		},
	)

	item := s.cache.Get(linksCacheKey, ttlcache.WithLoader[string, map[string]Link](loader))
	if item == nil {
		return nil, loadErr
	}
	return item.Value(), nil
}

// Invalidate drops the cached mapping so the next call reloads. Wired to
// the data source watcher.
func (s *Service) Invalidate() {
	s.cache.Delete(linksCacheKey)
}

func (s *Service) load(ctx context.Context) (map[string]Link, error) {
	reader, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load links from %s: %w", s.source, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read links from %s: %w", s.source, err)
	}

	var doc linkDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse links JSON from %s: %w", s.source, err)
	}

	links := make(map[string]Link, len(doc.Links))
	for _, entry := range doc.Links {
		if entry.Login == "" {
			continue
		}
		links[entry.Login] = entry.Link
	}
	return links, nil
}
