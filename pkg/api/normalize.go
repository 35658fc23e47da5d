package api

import (
	"sort"

	"github.com/openshift-eng/org-directory/pkg/identity"
	"github.com/openshift-eng/org-directory/pkg/members"
)

// MemberRecord is the serialization-ready shape of one directory member.
// Only the names of the organizations a member belongs to are exposed;
// each organization's membership details stay server-side.
type MemberRecord struct {
	ID            int64          `json:"id"`
	Login         string         `json:"login,omitempty"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	Link          *identity.Link `json:"link"`
	Organizations []string       `json:"organizations"`
}

// NormalizeMember flattens one member into its output record. Identity
// fields come from the account sub-record when present; a member without
// one is reduced to its numeric id. Organization names are sorted so the
// same member always serializes identically.
func NormalizeMember(m members.Member) MemberRecord {
	record := MemberRecord{
		ID:            m.ID,
		Link:          m.Link,
		Organizations: make([]string, 0, len(m.Orgs)),
	}
	if m.Account != nil {
		record.ID = m.Account.ID
		record.Login = m.Account.Login
		record.AvatarURL = m.Account.AvatarURL
	}
	for org := range m.Orgs {
		record.Organizations = append(record.Organizations, org)
	}
	sort.Strings(record.Organizations)
	return record
}
