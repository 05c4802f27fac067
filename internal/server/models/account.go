package models

import (
	"fmt"
	"time"
)

// Role is the closed set of roles an account can hold. Adding a role means
// updating the access policy table, not scattering string comparisons.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultRole is assigned when signup does not request a role.
const DefaultRole = RoleUser

// ParseRole converts an external role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Account is a user or admin identity record. PasswordHash holds the bcrypt
// credential and must never appear in any externally visible form.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	MiddleName   string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountUpdate lists the only fields mutable after signup. Email and role
// deliberately have no counterpart here, so the type system enforces the
// restriction instead of a runtime key filter.
type AccountUpdate struct {
	FirstName  *string
	LastName   *string
	MiddleName *string
	Department *string
	Password   *string
}

// Empty reports whether the update would change nothing.
func (u AccountUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.MiddleName == nil &&
		u.Department == nil && u.Password == nil
}
