// Package identity resolves external account logins to corporate
// identities.
package identity

// Link kinds. Unknown covers accounts a human reviewer has not classified
// yet.
const (
	KindEmployee = "employee"
	KindService  = "service"
	KindUnknown  = "unknown"
)

// Link associates an external account with an internal corporate identity.
type Link struct {
	UID      string `json:"uid"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Active   bool   `json:"active"`
}
