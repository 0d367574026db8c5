package staff

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role is the department a staff member belongs to.
type Role int

const (
	UnknownRole Role = iota
	Sales
	Operation
	Manager
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Sales:       "sales",
		Operation:   "operation",
		Manager:     "manager",
		Admin:       "admin",
	}
}

// ParseRole converts the persisted or wire representation of a role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r <= UnknownRole || r > Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
