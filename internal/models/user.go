package models

import "time"

// Role identifies what an account is allowed to do
type Role string

const (
	RoleChild  Role = "child"
	RoleParent Role = "parent"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the known account roles
func (r Role) Valid() bool {
	return r == RoleChild || r == RoleParent || r == RoleAdmin
}

// User represents an account in the system. Accounts are created once by an
// admin and are immutable afterwards except for the tutorial flag.
type User struct {
	ID                  int64
	Role                Role
	Username            string
	FullName            string
	Email               *string
	ParentUsername      *string
	PasswordHash        string
	OAuthProvider       string
	OAuthSubject        string
	HasFinishedTutorial bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanViewChildren reports whether the user may view children's statistics
func (u *User) CanViewChildren() bool {
	return u.Role == RoleParent || u.Role == RoleAdmin
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
