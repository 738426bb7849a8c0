package domain

import "time"

// Role is the privilege level of a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// DefaultAvatar is the avatar file name assigned to accounts without an upload.
const DefaultAvatar = "default-user.jpg"

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Country is the optional country a user declares on their profile.
type Country struct {
	Name string `json:"name" bson:"name"`
	CCA2 string `json:"cca2" bson:"cca2"`
}

// User models an authenticated identity.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Country      *Country   `json:"country,omitempty"`
	Avatar       string     `json:"avatar"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of u. Stores hand out clones so callers never share
// mutable state with the backing record.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Country != nil {
		country := *u.Country
		c.Country = &country
	}
	if u.LastLogin != nil {
		ts := *u.LastLogin
		c.LastLogin = &ts
	}
	return &c
}
