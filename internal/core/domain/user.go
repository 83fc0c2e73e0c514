package domain

import (
	"fmt"
	"time"
)

// Role is the fixed set of categories used to gate operations.
type Role string

const (
	RoleManager        Role = "MANAGER"
	RoleScientist      Role = "SCIENTIST"
	RoleAdministrative Role = "ADMINISTRATIVE"
	RoleOther          Role = "OTHER"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleManager, RoleScientist, RoleAdministrative, RoleOther}
}

// ParseRole accepts exactly one of the enumerated role names.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r Role) String() string { return string(r) }

// User models an account. Email is the login identifier and token subject.
type User struct {
	ID           string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
