package auth

import "github.com/dmitrijs2005/userhub/internal/server/models"

// Caller is the identity resolved from a verified access token, valid only
// for the current request.
type Caller struct {
	AccountID string
	Role      models.Role
}

// The policy below is deny-by-default: any role outside the known set, and
// any action without a matching rule, is refused.

// CanView reports whether the caller may read the target account:
// admins may read anyone, everyone may read themselves.
func CanView(caller Caller, targetAccountID string) bool {
	switch caller.Role {
	case models.RoleAdmin:
		return true
	case models.RoleUser:
		return caller.AccountID == targetAccountID
	default:
		return false
	}
}

// CanUpdate follows the same self-or-admin rule as CanView.
func CanUpdate(caller Caller, targetAccountID string) bool {
	return CanView(caller, targetAccountID)
}

// CanList restricts account listing to admins.
func CanList(caller Caller) bool {
	switch caller.Role {
	case models.RoleAdmin:
		return true
	default:
		return false
	}
}

// CanCreate decides whether open signup may request the given role.
// Self-service creation of admins is refused; admins are bootstrapped out of
// band (see cmd/useradmin).
func CanCreate(requested models.Role) bool {
	switch requested {
	case models.RoleUser:
		return true
	default:
		return false
	}
}
