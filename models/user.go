package models

import (
	"time"
)

// UserRole represents the role a user holds in the system
type UserRole string

const (
	RoleAttendee  UserRole = "attendee"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// IsValid reports whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAttendee, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole converts a raw claim or request value into a UserRole.
// The second return value is false for unknown roles.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(s)
	return role, role.IsValid()
}

// User represents a registered account.
// PasswordHash is never serialized.
type User struct {
	ID           int       `json:"userId" db:"user_id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance. An empty role defaults to attendee.
func NewUser(fullName, email, passwordHash string, role UserRole) *User {
	if role == "" {
		role = RoleAttendee
	}
	return &User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageEvents returns true if the user can create and edit events
func (u *User) CanManageEvents() bool {
	return u.Role == RoleOrganizer || u.Role == RoleAdmin
}
