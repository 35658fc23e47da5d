package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/openshift-eng/org-directory/pkg/identity"
	"github.com/openshift-eng/org-directory/pkg/members"
	"github.com/openshift-eng/org-directory/pkg/memo"
	"github.com/openshift-eng/org-directory/pkg/search"
)

// snapshotCacheKey is the only key the handler ever uses; the cache
// memoizes the single global membership snapshot.
const snapshotCacheKey = "snapshot"

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 500

type membersResponse struct {
	Members    []MemberRecord `json:"members"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	HasMore    bool           `json:"has_more"`
}

// MembersHandler serves the paginated cross-organization member listing.
type MembersHandler struct {
	members members.Provider
	links   identity.Provider
	cache   *memo.Cache[string, *members.Snapshot]
	logger  *logrus.Entry

	defaultPageSize int
}

// NewMembersHandler creates the handler. Membership snapshots are memoized
// for snapshotTTL; the link provider carries its own cache.
func NewMembersHandler(memberProvider members.Provider, linkProvider identity.Provider, snapshotTTL time.Duration, defaultPageSize int, logger *logrus.Entry) *MembersHandler {
	if defaultPageSize < 1 {
		defaultPageSize = search.DefaultPageSize
	}
	return &MembersHandler{
		members:         memberProvider,
		links:           linkProvider,
		cache:           memo.New[string, *members.Snapshot](snapshotTTL),
		logger:          logger,
		defaultPageSize: defaultPageSize,
	}
}

// InvalidateSnapshot drops the memoized snapshot so the next request
// re-aggregates. Wired to data source watchers.
func (h *MembersHandler) InvalidateSnapshot() {
	h.cache.Delete(snapshotCacheKey)
}

func (h *MembersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}

	params := h.parseParams(r)

	var snapshot *members.Snapshot
	var links map[string]identity.Link
	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() error {
		s, err := h.snapshot(ctx)
		snapshot = s
		return err
	})
	group.Go(func() error {
		l, err := h.links.Links(ctx)
		links = l
		return err
	})
	if err := group.Wait(); err != nil {
		h.logger.WithError(err).Error("failed to gather directory data")
		writeError(w, h.logger, http.StatusInternalServerError, "failed to gather directory data")
		return
	}

	results := search.Execute(snapshot, links, params)
	page := search.Paginate(results, params.PageNumber, params.PageSize)

	records := make([]MemberRecord, 0, len(page.Items))
	for _, member := range page.Items {
		records = append(records, NormalizeMember(member))
	}

	writeJSON(w, h.logger, http.StatusOK, membersResponse{
		Members:    records,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		Total:      page.Total,
		HasMore:    page.HasMore,
	})
}

// snapshot returns the memoized membership snapshot, aggregating on a miss.
// A failed aggregation is never cached, so the next request retries.
// Concurrent misses each aggregate independently; the last Set wins.
func (h *MembersHandler) snapshot(ctx context.Context) (*members.Snapshot, error) {
	if snapshot, ok := h.cache.Get(snapshotCacheKey); ok {
		return snapshot, nil
	}

	snapshot, err := h.members.Aggregate(ctx)
	if err != nil {
		return nil, err
	}
	h.cache.Set(snapshotCacheKey, snapshot)
	snapshotRefreshes.Inc()
	return snapshot, nil
}

func (h *MembersHandler) parseParams(r *http.Request) search.Params {
	query := r.URL.Query()

	pageNumber := 1
	if raw := query.Get("page_number"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageNumber = n
		}
	}

	pageSize := h.defaultPageSize
	if raw := query.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return search.Params{
		Phrase:     query.Get("q"),
		Type:       search.NormalizeType(query.Get("type")),
		Org:        query.Get("org"),
		Sort:       search.NormalizeSort(query.Get("sort")),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}
