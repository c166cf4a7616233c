// Package models defines the wire-level data model shared by the API client
// and the state-management services.
package models

// User is the identity record as served by the backend. The same shape is
// used for the authenticated user's own identity and for roster entries in
// the admin view; for roster entries only IsActive and IsAdmin are
// administratively mutable.
//
// CreatedAt stays a string: the server emits bare ISO-8601 timestamps
// without a timezone, which time.Time unmarshalling rejects. The client
// never computes on it.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	IsAdmin        bool   `json:"is_admin"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// UserPatch is a partial administrative update. Exactly one field is set
// per request; nil fields are omitted from the body.
type UserPatch struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsAdmin  *bool `json:"is_admin,omitempty"`
}

// IdentityPatch is a partial update of the current identity's mutable
// fields, merged into the session after a confirmed server response.
type IdentityPatch struct {
	Name           *string
	Email          *string
	ProfilePicture *string
}

// Stats is the aggregate account snapshot from the admin dashboard
// endpoint. Treated as opaque; refreshed wholesale alongside the roster.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	InactiveUsers int `json:"inactive_users"`
	AdminUsers    int `json:"admin_users"`
}

// Session is the login response: the bearer credential plus the
// authenticated identity.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
