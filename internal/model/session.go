package model

// Session is the authenticated identity held for a logged-in staff
// member.  It is created at login, persisted through a session store
// adapter, and destroyed at logout.
//
// Credential is the content-store write token and is present only when
// Role is "admin"; preview sessions never carry one.  When persisted
// the credential is base64-encoded so the raw bearer token is not
// stored in plain sight.  The encoding is reversible and is NOT a
// security boundary; authoritative write protection lives in the
// content store's own access rules.
type Session struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	Credential string `json:"credential,omitempty"`
}

// IsAdmin reports whether the session belongs to an admin account.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
