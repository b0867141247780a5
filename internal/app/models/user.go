package models

import "time"

// User represents an account holder, either an institution admin or
// a county office user.
type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	Password      string     `json:"-"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         string     `json:"phone"`
	InstitutionID *int64     `json:"institutionId,omitempty"`
	IsActive      bool       `json:"isActive"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Roles []Role `json:"roles,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FullName returns the display name used in audit fields.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
