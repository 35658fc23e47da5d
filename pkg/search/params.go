// Package search filters, sorts and paginates directory members.
package search

// MemberType narrows a search to one class of member. The zero value means
// no type filter.
type MemberType string

const (
	TypeAny            MemberType = ""
	TypeLinked         MemberType = "linked"
	TypeActive         MemberType = "active"
	TypeUnlinked       MemberType = "unlinked"
	TypeFormer         MemberType = "former"
	TypeServiceAccount MemberType = "serviceAccount"
	TypeUnknownAccount MemberType = "unknownAccount"
	TypeOwners         MemberType = "owners"
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortLogin SortKey = "login"
	SortID    SortKey = "id"
	SortName  SortKey = "name"
)

// DefaultPageSize is applied when a request does not name a page size.
const DefaultPageSize = 50

// Params captures one search request.
type Params struct {
	Phrase     string
	Type       MemberType
	Org        string
	Sort       SortKey
	PageNumber int
	PageSize   int
}

// NormalizeType maps a raw query value onto the type enumeration. Anything
// unrecognized, including the empty string, downgrades to no filter rather
// than an error; clients sending bad values see unfiltered results.
func NormalizeType(raw string) MemberType {
	switch t := MemberType(raw); t {
	case TypeLinked, TypeActive, TypeUnlinked, TypeFormer,
		TypeServiceAccount, TypeUnknownAccount, TypeOwners:
		return t
	default:
		return TypeAny
	}
}

// NormalizeSort maps a raw query value onto a supported sort key, falling
// back to login order.
func NormalizeSort(raw string) SortKey {
	switch k := SortKey(raw); k {
	case SortLogin, SortID, SortName:
		return k
	default:
		return SortLogin
	}
}
