package common

// AuthCookieName is the cookie that carries the session token between the
// storefront and the auth server.
const AuthCookieName = "auth_token"

// Roles known to the back office. The login lookup treats role as part of
// the key, so these strings must match the users.role column exactly.
const (
	RoleAdmin   = "admin"
	RoleKitchen = "kitchen"
	RoleRider   = "rider"
)
