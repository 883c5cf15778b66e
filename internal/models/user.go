// internal/models/user.go
package models

import "time"

// UserRole is the portal role of a registered user.
type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsHigherOrEqual reports whether the role ranks at least as high as
// the target in the citizen < staff < admin hierarchy.
func (r UserRole) IsHigherOrEqual(target UserRole) bool {
	hierarchy := map[UserRole]int{
		RoleCitizen: 0,
		RoleStaff:   1,
		RoleAdmin:   2,
	}

	current, ok1 := hierarchy[r]
	required, ok2 := hierarchy[target]
	if !ok1 || !ok2 {
		return false
	}
	return current >= required
}

// CanReview reports whether the role may process applications and
// complaints.
func (r UserRole) CanReview() bool {
	return r == RoleStaff || r == RoleAdmin
}

func (r UserRole) String() string {
	return string(r)
}

type User struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`

	// Persisted in the registered_users snapshot; cleared via Redacted
	// before leaving the API.
	PasswordHash string `json:"password_hash,omitempty" bson:"password_hash"`

	Role      UserRole  `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Redacted returns a copy safe to return to clients.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}
