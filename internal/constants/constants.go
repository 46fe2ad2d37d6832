package constants

// Session
const (
	SessionCookieName    = "checklist_session"
	ContextKeyIdentityID = "identity_id"
	ContextKeyIdentity   = "identity"
)

// Dates are exchanged and stored as ISO calendar dates.
const DateLayout = "2006-01-02"

// Pagination (activity log listing)
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// MaxAdHocTextLength bounds free-form ad-hoc task text.
const MaxAdHocTextLength = 500
