package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfigureCommissionCommandIsNotConstructed = errors.New(
	"ConfigureCommissionCommand must be created via NewConfigureCommissionCommand constructor",
)

// ConfigureCommissionCommand creates or replaces the tier table of a staff
// member. Existing entries keep the tier they were computed with.
type ConfigureCommissionCommand struct {
	staffID  kernel.UUID
	currency kernel.Currency
	tiers    []commission.Tier

	guard guard.ConstructorGuard
}

func NewConfigureCommissionCommand(
	staffID kernel.UUID,
	currency kernel.Currency,
	tiers []commission.Tier,
) (ConfigureCommissionCommand, error) {
	if err := errors.Join(staffID.Validate(), currency.Validate()); err != nil {
		return ConfigureCommissionCommand{}, err
	}
	if err := commission.ValidateTiers(tiers, currency); err != nil {
		return ConfigureCommissionCommand{}, err
	}

	return ConfigureCommissionCommand{
		staffID:  staffID,
		currency: currency,
		tiers:    slices.Clone(tiers),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ConfigureCommissionCommand) Validate() error {
	return c.guard.Validate(ErrConfigureCommissionCommandIsNotConstructed)
}

func (c ConfigureCommissionCommand) StaffID() kernel.UUID      { return c.staffID }
func (c ConfigureCommissionCommand) Currency() kernel.Currency { return c.currency }
func (c ConfigureCommissionCommand) Tiers() []commission.Tier  { return slices.Clone(c.tiers) }
