package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is the access level of a user. Values are persisted as smallint.
type Role uint8

const (
	RoleAdmin    Role = 1
	RoleManager  Role = 2
	RoleEmployee Role = 3
)

// Roles lists every valid role in ascending order.
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleEmployee
}

// IsStaff reports whether the role grants staff access.
func (r Role) IsStaff() bool {
	return IsStaff(r)
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleEmployee:
		return "Employee"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// IsStaff is true only for Admin.
func IsStaff(r Role) bool {
	return r == RoleAdmin
}

// ParseRole accepts a role name (case-insensitive) or its numeric value.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		r := Role(n)
		if n < 0 || n > 255 || !r.Valid() {
			return 0, fmt.Errorf("unknown role %q", s)
		}
		return r, nil
	}
	for _, r := range Roles {
		if strings.EqualFold(r.String(), s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
