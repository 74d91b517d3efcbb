package domain

import "time"

// Role is the closed set of authority tags a user can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the account record behind authentication and order ownership.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Phone        *string
	Address      *string
	Roles        []Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user was granted the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authorities returns the effective role set. Accounts persisted without
// roles fall back to the base role so every principal has at least one.
func (u *User) Authorities() []Role {
	if len(u.Roles) == 0 {
		return []Role{RoleUser}
	}
	return u.Roles
}
