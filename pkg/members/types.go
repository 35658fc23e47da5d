package members

import (
	"time"

	"github.com/openshift-eng/org-directory/pkg/identity"
)

// Account holds the identity fields a source organization knows about a
// member. A roster entry that carries only a numeric id produces a Member
// with no Account.
type Account struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Type      string `json:"type,omitempty"` // "User" or "Bot"
}

// OrgMembership is one organization's view of a member.
type OrgMembership struct {
	Role  string `json:"role,omitempty"`  // "member" or "admin"
	State string `json:"state,omitempty"` // "active" or "pending"
}

// Member represents one person (or service account) across organizations.
type Member struct {
	ID      int64
	Account *Account
	Link    *identity.Link
	// Orgs maps organization name to that organization's view of the
	// account. Keys are unique; iteration order is not significant.
	Orgs map[string]OrgMembership
}

// IsOwner reports whether the member holds the admin role in any
// organization.
func (m Member) IsOwner() bool {
	for _, membership := range m.Orgs {
		if membership.Role == "admin" {
			return true
		}
	}
	return false
}

// Snapshot is an immutable collection of cross-organization members
// produced by a single aggregation pass. Callers must not mutate it; the
// same snapshot is shared by every request inside a cache window.
type Snapshot struct {
	Members      []Member
	Orgs         []string
	AggregatedAt time.Time
}
