package domain

// UserRole is the role an authenticated caller acts under.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleParent UserRole = "parent"
)

// Actor identifies the authenticated caller of an operation. Identity and
// credential management live in an external service; this application only
// consumes the user ID and role carried by the request token.
type Actor struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanViewLedgerOf reports whether the actor may read ledger rows owned by
// the given guardian. Admins see everything; parents only their own rows.
func (a Actor) CanViewLedgerOf(parentID string) bool {
	return a.IsAdmin() || a.UserID == parentID
}
