package constants

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "visitor_session"

	// SessionKeyUserID is the session key the authenticated user ID is stored under.
	SessionKeyUserID = "user_id"

	// ContextKeyUser is the gin context key the resolved caller identity is stored under.
	ContextKeyUser = "current_user"

	// SessionMaxAge is the session lifetime in seconds (7 days).
	SessionMaxAge = 86400 * 7
)
