package order

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrNumberIsRequired      = errs.NewValueIsRequiredError("order number")
	ErrReasonIsRequired      = errs.NewValueIsRequiredError("rejection reason")
)

// Order is the aggregate root of the fulfillment workflow. Its status only
// changes through Submit, Accept, Reject and Resubmit, each of which appends to
// the history ledger and records one Event.
type Order struct {
	id        kernel.UUID
	number    string
	status    Status
	productID kernel.UUID
	amount    kernel.Money
	countries []string
	createdAt time.Time

	completedAt       *time.Time
	completedServices product.Services

	salesID     *kernel.UUID
	operationID *kernel.UUID
	managerID   *kernel.UUID

	rejectionReasons []string
	history          Ledger

	// version is the persisted version this instance was loaded at.
	version int
	events  []Event
	guard   guard.ConstructorGuard
}

// NewOrder creates an order in status New. Call Submit to hand it to sales.
func NewOrder(
	id kernel.UUID,
	number string,
	productID kernel.UUID,
	amount kernel.Money,
	countries []string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status: New,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setProductID(productID),
		o.setAmount(amount),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	o.countries = normalizeCountries(countries)

	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID                kernel.UUID
	Number            string
	Status            Status
	ProductID         kernel.UUID
	Amount            kernel.Money
	Countries         []string
	CreatedAt         time.Time
	CompletedAt       *time.Time
	CompletedServices product.Services
	SalesID           *kernel.UUID
	OperationID       *kernel.UUID
	ManagerID         *kernel.UUID
	RejectionReasons  []string
	History           []HistoryEntry
	Version           int
}

// RestoreOrder rebuilds an order from storage. The history must chain and end
// in the stored status.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		completedServices: s.CompletedServices,
		version:           s.Version,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setProductID(s.ProductID),
		o.setAmount(s.Amount),
		o.setCreatedAt(s.CreatedAt),
		s.Status.Validate(),
		optionalUUID(s.SalesID),
		optionalUUID(s.OperationID),
		optionalUUID(s.ManagerID),
	); err != nil {
		return nil, err
	}

	if s.Version < 0 {
		return nil, errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", s.Version))
	}

	history, err := NewLedger(s.History...)
	if err != nil {
		return nil, err
	}
	if last, ok := history.Last(); ok && last.NewStatus() != s.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("history ends in %s but order is %s", last.NewStatus(), s.Status))
	}

	o.status = s.Status
	o.history = history
	o.countries = normalizeCountries(s.Countries)
	o.salesID, o.operationID, o.managerID = s.SalesID, s.OperationID, s.ManagerID
	o.rejectionReasons = slices.Clone(s.RejectionReasons)
	if s.CompletedAt != nil {
		at := s.CompletedAt.UTC()
		o.completedAt = &at
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                     { return o.id }
func (o *Order) Number() string                      { return o.number }
func (o *Order) Status() Status                      { return o.status }
func (o *Order) ProductID() kernel.UUID              { return o.productID }
func (o *Order) Amount() kernel.Money                { return o.amount }
func (o *Order) Countries() []string                 { return slices.Clone(o.countries) }
func (o *Order) CreatedAt() time.Time                { return o.createdAt }
func (o *Order) CompletedServices() product.Services { return o.completedServices }
func (o *Order) SalesID() *kernel.UUID               { return o.salesID }
func (o *Order) OperationID() *kernel.UUID           { return o.operationID }
func (o *Order) ManagerID() *kernel.UUID             { return o.managerID }
func (o *Order) RejectionReasons() []string          { return slices.Clone(o.rejectionReasons) }
func (o *Order) Version() int                        { return o.version }

func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

// Snapshot returns the persisted state of the order. RestoreOrder(o.Snapshot())
// yields an equal order without pending events.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		Number:            o.number,
		Status:            o.status,
		ProductID:         o.productID,
		Amount:            o.amount,
		Countries:         slices.Clone(o.countries),
		CreatedAt:         o.createdAt,
		CompletedAt:       o.CompletedAt(),
		CompletedServices: o.completedServices,
		SalesID:           o.salesID,
		OperationID:       o.operationID,
		ManagerID:         o.managerID,
		RejectionReasons:  slices.Clone(o.rejectionReasons),
		History:           slices.Collect(o.history.Entries()),
		Version:           o.version,
	}
}

// History yields the ledger entries oldest first.
func (o *Order) History() iter.Seq[HistoryEntry] {
	return o.history.Entries()
}

func (o *Order) HistoryLen() int {
	return o.history.Len()
}

// DomainEvents returns the events recorded since the order was loaded.
func (o *Order) DomainEvents() []Event {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// AdvanceVersion is called by repositories once a write at Version() succeeded.
func (o *Order) AdvanceVersion() {
	o.version++
}

// ResponsibleID returns the actor id expected to act on the current status, or
// an empty string when nobody is assigned.
func (o *Order) ResponsibleID() string {
	return o.partyID(ResponsibleParty(o.status))
}

// Assign sets the staff member responsible for a party's stages.
func (o *Order) Assign(party Party, staffID kernel.UUID) error {
	if err := staffID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError("assign staff to", o.status.String())
	}

	id := staffID
	switch party {
	case SalesParty:
		o.salesID = &id
	case OperationParty:
		o.operationID = &id
	case ManagerParty:
		o.managerID = &id
	default:
		return errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%s cannot be assigned", party))
	}
	return nil
}

// Submit moves a New order into sales review as a system transition.
func (o *Order) Submit(at time.Time) error {
	if o.status != New {
		return errs.NewInvalidTransitionError("submit", o.status.String())
	}
	entry, err := NewHistoryEntry(kernel.NewUUID(), New, PendingSalesReview, SystemTransition, SystemActor(), "", "", at)
	if err != nil {
		return err
	}
	if err = o.appendHistory(entry); err != nil {
		return err
	}
	o.record(StageAdvanced{eventBase: o.eventBase(entry), From: New, To: PendingSalesReview, ActorID: SystemActorID})
	return nil
}

// Accept advances the order one stage. required lists the product services that
// are flagged as delivered when the order completes.
func (o *Order) Accept(actor Actor, notes string, required product.Services, at time.Time) error {
	entry, err := o.authorize(Accept, actor, "", notes, at)
	if err != nil {
		return err
	}
	from := o.status
	if err = o.appendHistory(entry); err != nil {
		return err
	}

	if entry.NewStatus() != Completed {
		o.record(StageAdvanced{eventBase: o.eventBase(entry), From: from, To: entry.NewStatus(), ActorID: actor.ID})
		return nil
	}

	completedAt := entry.CreatedAt()
	o.completedAt = &completedAt
	o.completedServices = o.completedServices.Union(required)
	o.record(OrderCompleted{
		eventBase:        o.eventBase(entry),
		ProductID:        o.productID,
		SalesStaffID:     o.salesID,
		OperationStaffID: o.operationID,
		Amount:           o.amount,
		CreatedAt:        o.createdAt,
		CompletedAt:      completedAt,
	})
	return nil
}

// Reject sends the order to the rejected status of the current stage or back
// one stage for rework.
func (o *Order) Reject(actor Actor, reason string, at time.Time) error {
	entry, err := o.authorize(Reject, actor, reason, "", at)
	if err != nil {
		return err
	}
	from := o.status
	if err = o.appendHistory(entry); err != nil {
		return err
	}
	o.rejectionReasons = append(o.rejectionReasons, entry.Reason())

	var attributed *kernel.UUID
	if party, ok := rejectionBlame[from]; ok {
		attributed = o.partyStaffID(party)
	}
	o.record(OrderRejected{
		eventBase:         o.eventBase(entry),
		From:              from,
		To:                entry.NewStatus(),
		ActorID:           actor.ID,
		Reason:            entry.Reason(),
		Rework:            !entry.NewStatus().IsRejected(),
		AttributedStaffID: attributed,
	})
	return nil
}

// Resubmit returns a rejected order to sales review.
func (o *Order) Resubmit(actor Actor, notes string, at time.Time) error {
	entry, err := o.authorize(Resubmit, actor, "", notes, at)
	if err != nil {
		return err
	}
	from := o.status
	if err = o.appendHistory(entry); err != nil {
		return err
	}
	o.record(StageAdvanced{eventBase: o.eventBase(entry), From: from, To: entry.NewStatus(), ActorID: actor.ID})
	return nil
}

// authorize runs the checks shared by every actor-driven transition and builds
// the history entry. It never mutates the order.
func (o *Order) authorize(action Action, actor Actor, reason, notes string, at time.Time) (HistoryEntry, error) {
	if err := actor.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	to, party, ok := Next(o.status, action)
	if !ok {
		return HistoryEntry{}, errs.NewInvalidTransitionError(action.String(), o.status.String())
	}
	if o.partyID(party) != actor.ID {
		return HistoryEntry{}, errs.NewPermissionDeniedError(action.String(), o.status.String(), actor.ID)
	}

	reason = strings.TrimSpace(reason)
	if action == Reject && reason == "" {
		return HistoryEntry{}, ErrReasonIsRequired
	}

	return NewHistoryEntry(kernel.NewUUID(), o.status, to, action, actor, reason, strings.TrimSpace(notes), at)
}

// appendHistory commits the entry and the status change together.
func (o *Order) appendHistory(entry HistoryEntry) error {
	if err := o.history.Append(o.status, entry); err != nil {
		return err
	}
	o.status = entry.NewStatus()
	return nil
}

func (o *Order) record(e Event) {
	o.events = append(o.events, e)
}

func (o *Order) eventBase(entry HistoryEntry) eventBase {
	return eventBase{orderID: o.id, entryID: entry.ID(), occurredAt: entry.CreatedAt()}
}

func (o *Order) partyID(p Party) string {
	if p == ClientParty {
		return ClientActorID
	}
	if id := o.partyStaffID(p); id != nil {
		return id.String()
	}
	return ""
}

func (o *Order) partyStaffID(p Party) *kernel.UUID {
	switch p {
	case SalesParty:
		return o.salesID
	case OperationParty:
		return o.operationID
	case ManagerParty:
		return o.managerID
	default:
		return nil
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	o.productID = id
	return nil
}

func (o *Order) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	o.amount = amount
	return nil
}

func (o *Order) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = at.UTC()
	return nil
}

func optionalUUID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func normalizeCountries(countries []string) []string {
	out := make([]string, 0, len(countries))
	for _, c := range countries {
		if c = strings.TrimSpace(c); c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
