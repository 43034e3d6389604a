package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role distinguishes guests (who book spots) from hosts (who list them).
// Access to a booking is decided by ownership data, not by role, so the
// role only gates host-side surfaces such as spot management.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

func NewRole(value string) (Role, error) {
	switch Role(value) {
	case RoleGuest, RoleHost:
		return Role(value), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
