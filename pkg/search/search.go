package search

import (
	"sort"
	"strings"

	"github.com/openshift-eng/org-directory/pkg/identity"
	"github.com/openshift-eng/org-directory/pkg/members"
)

// Execute resolves corporate links and applies the org scope, type filter,
// phrase filter and sort from params. The snapshot is never mutated; the
// returned slice holds copies with links attached. Ordering is
// deterministic for a given snapshot and params, which keeps pagination
// stable across requests inside one cache window.
//
// The type value must already be normalized; Execute treats anything
// outside the enumeration as no filter.
func Execute(snapshot *members.Snapshot, links map[string]identity.Link, params Params) []members.Member {
	phrase := strings.ToLower(strings.TrimSpace(params.Phrase))

	result := make([]members.Member, 0, len(snapshot.Members))
	for _, member := range snapshot.Members {
		if member.Account != nil {
			if link, ok := links[member.Account.Login]; ok {
				l := link
				member.Link = &l
			}
		}
		if params.Org != "" {
			if _, ok := member.Orgs[params.Org]; !ok {
				continue
			}
		}
		if !matchesType(member, params.Type) {
			continue
		}
		if phrase != "" && !matchesPhrase(member, phrase) {
			continue
		}
		result = append(result, member)
	}

	sortMembers(result, params.Sort)
	return result
}

func matchesType(m members.Member, t MemberType) bool {
	switch t {
	case TypeLinked:
		return m.Link != nil
	case TypeActive:
		return m.Link != nil && m.Link.Active
	case TypeUnlinked:
		return m.Link == nil
	case TypeFormer:
		return m.Link != nil && !m.Link.Active
	case TypeServiceAccount:
		if m.Link != nil && m.Link.Kind == identity.KindService {
			return true
		}
		return m.Account != nil && m.Account.Type == "Bot"
	case TypeUnknownAccount:
		return m.Account == nil
	case TypeOwners:
		return m.IsOwner()
	default:
		return true
	}
}

func matchesPhrase(m members.Member, phrase string) bool {
	if m.Account != nil && strings.Contains(strings.ToLower(m.Account.Login), phrase) {
		return true
	}
	if m.Link != nil {
		if strings.Contains(strings.ToLower(m.Link.UID), phrase) {
			return true
		}
		if strings.Contains(strings.ToLower(m.Link.FullName), phrase) {
			return true
		}
		if strings.Contains(strings.ToLower(m.Link.Email), phrase) {
			return true
		}
	}
	return false
}

func sortMembers(result []members.Member, key SortKey) {
	less := func(a, b members.Member) bool {
		la, lb := loginOf(a), loginOf(b)
		if la != lb {
			return la < lb
		}
		return a.ID < b.ID
	}
	switch key {
	case SortID:
		less = func(a, b members.Member) bool { return a.ID < b.ID }
	case SortName:
		less = func(a, b members.Member) bool {
			na, nb := nameOf(a), nameOf(b)
			if na != nb {
				return na < nb
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
}

func loginOf(m members.Member) string {
	if m.Account != nil {
		return m.Account.Login
	}
	return ""
}

// nameOf prefers the corporate full name so linked accounts sort by person,
// not handle.
func nameOf(m members.Member) string {
	if m.Link != nil && m.Link.FullName != "" {
		return m.Link.FullName
	}
	return loginOf(m)
}
