package order

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// SystemActorID is recorded on transitions the engine makes on its own.
const SystemActorID = "system"

var ErrActorIsRequired = errs.NewValueIsRequiredError("actor id")

// Actor is whoever performs a transition: a staff member (by id), the client
// (ClientActorID) or the engine (SystemActorID).
type Actor struct {
	ID   string
	Name string
}

func NewActor(id, name string) (Actor, error) {
	a := Actor{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

func SystemActor() Actor {
	return Actor{ID: SystemActorID, Name: "System"}
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrActorIsRequired
	}
	return nil
}

// HistoryEntry is one immutable line of the order ledger.
type HistoryEntry struct {
	id        kernel.UUID
	previous  Status
	next      Status
	action    Action
	actor     Actor
	reason    string
	notes     string
	createdAt time.Time
}

// NewHistoryEntry validates and builds a ledger entry. It is also used by
// repositories to restore persisted entries.
func NewHistoryEntry(
	id kernel.UUID,
	previous, next Status,
	action Action,
	actor Actor,
	reason, notes string,
	createdAt time.Time,
) (HistoryEntry, error) {
	var actionErr error
	if _, ok := getActionStrings()[action]; !ok || action == UnknownAction {
		actionErr = errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", action))
	}
	var timeErr error
	if createdAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(
		id.Validate(),
		previous.Validate(),
		next.Validate(),
		actionErr,
		actor.Validate(),
		timeErr,
	); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		id:        id,
		previous:  previous,
		next:      next,
		action:    action,
		actor:     actor,
		reason:    reason,
		notes:     notes,
		createdAt: createdAt.UTC(),
	}, nil
}

func (e HistoryEntry) ID() kernel.UUID        { return e.id }
func (e HistoryEntry) PreviousStatus() Status { return e.previous }
func (e HistoryEntry) NewStatus() Status      { return e.next }
func (e HistoryEntry) Action() Action         { return e.action }
func (e HistoryEntry) Actor() Actor           { return e.actor }
func (e HistoryEntry) Reason() string         { return e.reason }
func (e HistoryEntry) Notes() string          { return e.notes }
func (e HistoryEntry) CreatedAt() time.Time   { return e.createdAt }

// Ledger is the append-only transition history of one order. Consecutive
// entries chain: entry[i].NewStatus() == entry[i+1].PreviousStatus().
type Ledger struct {
	entries []HistoryEntry
}

// NewLedger restores a ledger and checks the chain and time order.
func NewLedger(entries ...HistoryEntry) (Ledger, error) {
	var l Ledger
	for _, e := range entries {
		current := e.previous
		if last, ok := l.Last(); ok {
			current = last.next
		}
		if err := l.Append(current, e); err != nil {
			return Ledger{}, err
		}
	}
	return l, nil
}

// Append adds e provided it starts from current, the owner's status, and is
// not older than the last entry. The caller moves its status to e.NewStatus()
// only when Append succeeds.
func (l *Ledger) Append(current Status, e HistoryEntry) error {
	if e.id.Validate() != nil {
		return errs.NewValueIsRequiredError("history entry")
	}
	if e.previous != current {
		return errs.NewValueIsInvalidErrorWithCause("history entry",
			fmt.Errorf("previous status %s does not match current status %s", e.previous, current))
	}
	if last, ok := l.Last(); ok && e.createdAt.Before(last.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("history entry",
			fmt.Errorf("created at %s precedes the last entry at %s",
				e.createdAt.Format(time.RFC3339), last.createdAt.Format(time.RFC3339)))
	}
	l.entries = append(l.entries, e)
	return nil
}

// Entries yields the entries oldest first. The sequence is a snapshot and may
// be ranged over any number of times.
func (l Ledger) Entries() iter.Seq[HistoryEntry] {
	entries := l.entries
	return func(yield func(HistoryEntry) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}
}

func (l Ledger) Len() int {
	return len(l.entries)
}

func (l Ledger) Last() (HistoryEntry, bool) {
	if len(l.entries) == 0 {
		return HistoryEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
