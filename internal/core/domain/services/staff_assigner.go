package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"
)

var partyRoles = map[order.Party]staff.Role{
	order.SalesParty:     staff.Sales,
	order.OperationParty: staff.Operation,
	order.ManagerParty:   staff.Manager,
}

type StaffAssigner struct{}

func NewStaffAssigner() StaffAssigner {
	return StaffAssigner{}
}

// Assign puts member on the stages owned by party after checking that their
// role allows it.
func (StaffAssigner) Assign(o *order.Order, party order.Party, member *staff.Staff) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := member.Validate(); err != nil {
		return err
	}

	role, ok := partyRoles[party]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%s cannot be assigned", party))
	}
	if !member.CanHandle(role) {
		return errs.NewValueIsInvalidErrorWithCause("staff",
			fmt.Errorf("%s (%s) is not eligible for %s stages", member.Name(), member.Role(), role))
	}

	return o.Assign(party, member.ID())
}
