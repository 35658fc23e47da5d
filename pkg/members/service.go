package members

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"k8s.io/klog"

	"github.com/openshift-eng/org-directory/pkg/datasource"
)

// Provider enumerates the members of every configured organization. The
// call is expected to be expensive; callers memoize the result.
type Provider interface {
	Aggregate(ctx context.Context) (*Snapshot, error)
}

// roster is the JSON document shape each organization source produces.
type roster struct {
	Organization string         `json:"organization"`
	Members      []rosterMember `json:"members"`
}

type rosterMember struct {
	ID        int64  `json:"id"`
	Login     string `json:"login,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Type      string `json:"type,omitempty"`
	Role      string `json:"role,omitempty"`
	State     string `json:"state,omitempty"`
}

// Service aggregates per-organization member rosters into a single
// cross-organization snapshot. Every Aggregate call re-reads all sources;
// there is no state kept between calls.
type Service struct {
	sources []datasource.DataSource
}

// NewService creates an aggregation service over the given roster sources.
func NewService(sources ...datasource.DataSource) *Service {
	return &Service{sources: sources}
}

// Aggregate loads every configured roster and merges entries that share a
// login into one member carrying all of its organization memberships. The
// returned slice is ordered by login, ties broken by id, so repeated calls
// over the same data paginate identically.
func (s *Service) Aggregate(ctx context.Context) (*Snapshot, error) {
	merged := make(map[string]*Member)
	var orgs []string

	for _, source := range s.sources {
		r, err := s.loadRoster(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate members from %s: %w", source, err)
		}
		if r.Organization == "" {
			return nil, fmt.Errorf("roster from %s has no organization name", source)
		}
		orgs = append(orgs, r.Organization)

		for _, entry := range r.Members {
			key := memberKey(entry)
			member, exists := merged[key]
			if !exists {
				member = &Member{ID: entry.ID, Orgs: make(map[string]OrgMembership)}
				if entry.Login != "" {
					member.Account = &Account{
						ID:        entry.ID,
						Login:     entry.Login,
						AvatarURL: entry.AvatarURL,
						Type:      entry.Type,
					}
				}
				merged[key] = member
			}
			member.Orgs[r.Organization] = OrgMembership{Role: entry.Role, State: entry.State}
		}
	}

	result := make([]Member, 0, len(merged))
	for _, member := range merged {
		result = append(result, *member)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].login(), result[j].login()
		if a != b {
			return a < b
		}
		return result[i].ID < result[j].ID
	})
	sort.Strings(orgs)

	klog.Infof("Aggregated %d members across %d organizations", len(result), len(orgs))
	return &Snapshot{Members: result, Orgs: orgs, AggregatedAt: time.Now()}, nil
}

func (s *Service) loadRoster(ctx context.Context, source datasource.DataSource) (*roster, error) {
	reader, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var r roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse roster JSON: %w", err)
	}
	return &r, nil
}

// memberKey identifies the same account across organizations. Entries
// without a login cannot be correlated by name and merge by id instead.
func memberKey(entry rosterMember) string {
	if entry.Login != "" {
		return entry.Login
	}
	return "#" + strconv.FormatInt(entry.ID, 10)
}

func (m Member) login() string {
	if m.Account != nil {
		return m.Account.Login
	}
	return ""
}
