package commission

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// EntryStatus is pending until MarkPaid.
type EntryStatus int

const (
	UnknownEntryStatus EntryStatus = iota
	Pending
	Paid
)

func (s EntryStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Paid:
		return "paid"
	default:
		return "unknown"
	}
}

// ParseEntryStatus converts the persisted representation of a status.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "paid":
		return Paid, nil
	default:
		return UnknownEntryStatus, errs.NewValueIsInvalidError("commission status")
	}
}

var ErrInvoiceIDIsRequired = errs.NewValueIsRequiredError("invoice id")

// Entry is one commission accrual for one invoice.
type Entry struct {
	id            kernel.UUID
	invoiceID     string
	orderCount    int
	tier          Tier
	invoiceAmount kernel.Money
	commission    kernel.Money
	status        EntryStatus
	createdAt     time.Time
	paidAt        *time.Time
}

// RestoreEntry rebuilds a persisted entry.
func RestoreEntry(
	id kernel.UUID,
	invoiceID string,
	orderCount int,
	tier Tier,
	invoiceAmount, commission kernel.Money,
	status EntryStatus,
	createdAt time.Time,
	paidAt *time.Time,
) (Entry, error) {
	var invoiceErr, statusErr error
	if strings.TrimSpace(invoiceID) == "" {
		invoiceErr = ErrInvoiceIDIsRequired
	}
	if status != Pending && status != Paid {
		statusErr = errs.NewValueIsInvalidError("commission status")
	} else if (status == Paid) != (paidAt != nil) {
		statusErr = errs.NewValueIsInvalidError("paidAt")
	}

	if err := errors.Join(
		id.Validate(),
		invoiceErr,
		statusErr,
		invoiceAmount.Validate(),
		commission.Validate(),
	); err != nil {
		return Entry{}, err
	}

	e := Entry{
		id:            id,
		invoiceID:     invoiceID,
		orderCount:    orderCount,
		tier:          tier,
		invoiceAmount: invoiceAmount,
		commission:    commission,
		status:        status,
		createdAt:     createdAt.UTC(),
	}
	if paidAt != nil {
		at := paidAt.UTC()
		e.paidAt = &at
	}
	return e, nil
}

func (e Entry) ID() kernel.UUID             { return e.id }
func (e Entry) InvoiceID() string           { return e.invoiceID }
func (e Entry) OrderCount() int             { return e.orderCount }
func (e Entry) Tier() Tier                  { return e.tier }
func (e Entry) InvoiceAmount() kernel.Money { return e.invoiceAmount }
func (e Entry) Commission() kernel.Money    { return e.commission }
func (e Entry) Status() EntryStatus         { return e.status }
func (e Entry) CreatedAt() time.Time        { return e.createdAt }

func (e Entry) PaidAt() *time.Time {
	if e.paidAt == nil {
		return nil
	}
	at := *e.paidAt
	return &at
}
