package staff

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrStaffIsNotConstructed = errors.New("Staff must be created via NewStaff constructor")
)

// Staff is the read model of a staff member as the workflow sees it. The staff
// directory owns the master data; the engine only checks stage eligibility.
type Staff struct {
	id         kernel.UUID
	name       string
	role       Role
	department string
	// extra roles the staff member may be assigned to besides their own
	eligible []Role
	guard    guard.ConstructorGuard
}

// NewStaff creates a staff member. Additional roles extend stage eligibility
// beyond the primary role.
func NewStaff(id kernel.UUID, name string, role Role, department string, additional ...Role) (*Staff, error) {
	s := &Staff{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setRole(role),
		s.setEligible(additional),
	); err != nil {
		return nil, err
	}
	s.department = strings.TrimSpace(department)

	return s, nil
}

func (s *Staff) Validate() error {
	if s == nil {
		return ErrStaffIsNotConstructed
	}
	return s.guard.Validate(ErrStaffIsNotConstructed)
}

func (s *Staff) ID() kernel.UUID    { return s.id }
func (s *Staff) Name() string       { return s.name }
func (s *Staff) Role() Role         { return s.role }
func (s *Staff) Department() string { return s.department }

// EligibleRoles returns the additional roles, excluding the primary one.
func (s *Staff) EligibleRoles() []Role {
	return slices.Clone(s.eligible)
}

// CanHandle reports whether the staff member may be assigned to stages owned by role.
// Admins may be assigned anywhere.
func (s *Staff) CanHandle(role Role) bool {
	if s.role == Admin || s.role == role {
		return true
	}
	return slices.Contains(s.eligible, role)
}

func (s *Staff) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Staff) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Staff) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	s.role = role
	return nil
}

func (s *Staff) setEligible(roles []Role) error {
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return err
		}
		if r != s.role && !slices.Contains(s.eligible, r) {
			s.eligible = append(s.eligible, r)
		}
	}
	return nil
}
