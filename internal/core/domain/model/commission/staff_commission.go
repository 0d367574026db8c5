package commission

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrStaffCommissionIsNotConstructed = errors.New("StaffCommission must be created via NewStaffCommission or RestoreStaffCommission")

// StaffCommission is the commission ledger of one staff member. Entries are
// append-only; totals are always derived from them.
type StaffCommission struct {
	staffID  kernel.UUID
	currency kernel.Currency
	tiers    []Tier
	entries  []Entry
	version  int
	guard    guard.ConstructorGuard
}

func NewStaffCommission(staffID kernel.UUID, currency kernel.Currency, tiers []Tier) (*StaffCommission, error) {
	return RestoreStaffCommission(staffID, currency, tiers, nil, 0)
}

func RestoreStaffCommission(
	staffID kernel.UUID,
	currency kernel.Currency,
	tiers []Tier,
	entries []Entry,
	version int,
) (*StaffCommission, error) {
	if err := errors.Join(staffID.Validate(), currency.Validate()); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", version))
	}
	if err := ValidateTiers(tiers, currency); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.commission.Currency().IsEqual(currency) {
			return nil, errs.NewValueIsInvalidErrorWithCause("commission entry",
				fmt.Errorf("entry %s is in %s, expected %s", e.id, e.commission.Currency(), currency))
		}
	}

	return &StaffCommission{
		staffID:  staffID,
		currency: currency,
		tiers:    slices.Clone(tiers),
		entries:  slices.Clone(entries),
		version:  version,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *StaffCommission) Validate() error {
	if c == nil {
		return ErrStaffCommissionIsNotConstructed
	}
	return c.guard.Validate(ErrStaffCommissionIsNotConstructed)
}

func (c *StaffCommission) StaffID() kernel.UUID      { return c.staffID }
func (c *StaffCommission) Currency() kernel.Currency { return c.currency }
func (c *StaffCommission) Tiers() []Tier             { return slices.Clone(c.tiers) }
func (c *StaffCommission) Entries() []Entry          { return slices.Clone(c.entries) }

// Version is the persisted version this ledger was loaded at.
func (c *StaffCommission) Version() int { return c.version }

// AdvanceVersion is called by repositories once a write at Version() succeeded.
func (c *StaffCommission) AdvanceVersion() {
	c.version++
}

// NextOrderCount is the cumulative order count the next accrual would use.
func (c *StaffCommission) NextOrderCount() int {
	return len(c.entries) + 1
}

// SetTiers replaces the tier table for future accruals.
func (c *StaffCommission) SetTiers(tiers []Tier) error {
	if err := ValidateTiers(tiers, c.currency); err != nil {
		return err
	}
	c.tiers = slices.Clone(tiers)
	return nil
}

// FindByInvoice returns the entry accrued for invoiceID.
func (c *StaffCommission) FindByInvoice(invoiceID string) (Entry, bool) {
	i := slices.IndexFunc(c.entries, func(e Entry) bool { return e.invoiceID == invoiceID })
	if i < 0 {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Compute accrues a pending entry for an invoice using the tier that contains
// orderCount. A second call for the same invoice returns the existing entry
// and created is false.
func (c *StaffCommission) Compute(
	invoiceID string,
	orderCount int,
	amount kernel.Money,
	at time.Time,
) (entry Entry, created bool, err error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return Entry{}, false, ErrInvoiceIDIsRequired
	}
	if existing, ok := c.FindByInvoice(invoiceID); ok {
		return existing, false, nil
	}

	if orderCount < 1 {
		return Entry{}, false, errs.NewValueIsOutOfRangeError("orderCount", orderCount, 1, "unbounded")
	}
	if err = amount.Validate(); err != nil {
		return Entry{}, false, err
	}
	if !amount.Currency().IsEqual(c.currency) {
		return Entry{}, false, errs.NewValueIsInvalidErrorWithCause("invoice amount",
			fmt.Errorf("%s does not match commission currency %s", amount.Currency(), c.currency))
	}
	if amount.IsNegative() {
		return Entry{}, false, errs.NewValueIsOutOfRangeError("invoice amount", amount.String(), 0, "unbounded")
	}

	tier, ok := tierFor(c.tiers, orderCount)
	if !ok {
		return Entry{}, false, errs.NewValueIsOutOfRangeError("orderCount", orderCount, 1, "unbounded")
	}
	commission, err := tier.Commission(amount)
	if err != nil {
		return Entry{}, false, err
	}

	entry = Entry{
		id:            kernel.NewUUID(),
		invoiceID:     invoiceID,
		orderCount:    orderCount,
		tier:          tier,
		invoiceAmount: amount,
		commission:    commission,
		status:        Pending,
		createdAt:     at.UTC(),
	}
	c.entries = append(c.entries, entry)
	return entry, true, nil
}

// MarkPaid is the only way an entry becomes paid.
func (c *StaffCommission) MarkPaid(entryID kernel.UUID, at time.Time) (Entry, error) {
	i := slices.IndexFunc(c.entries, func(e Entry) bool { return e.id.IsEqual(entryID) })
	if i < 0 {
		return Entry{}, errs.NewObjectNotFoundError("commission entry", entryID)
	}
	if c.entries[i].status == Paid {
		return Entry{}, errs.NewInvalidTransitionError("mark paid", Paid.String())
	}

	paidAt := at.UTC()
	c.entries[i].status = Paid
	c.entries[i].paidAt = &paidAt
	return c.entries[i], nil
}

// TotalEarned is the sum of every entry.
func (c *StaffCommission) TotalEarned() kernel.Money {
	return c.sum(func(Entry) bool { return true })
}

func (c *StaffCommission) PaidAmount() kernel.Money {
	return c.sum(func(e Entry) bool { return e.status == Paid })
}

func (c *StaffCommission) PendingAmount() kernel.Money {
	return c.sum(func(e Entry) bool { return e.status == Pending })
}

// sum cannot fail: every entry is in c.currency.
func (c *StaffCommission) sum(include func(Entry) bool) kernel.Money {
	total, _ := kernel.ZeroMoney(c.currency)
	for _, e := range c.entries {
		if include(e) {
			total, _ = total.Add(e.commission)
		}
	}
	return total
}
