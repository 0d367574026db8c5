package performance

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

const (
	BaseScore             = 100
	EarlyCompletionPoints = 10
	RejectionPoints       = -10
)

var (
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")
	ErrKeyIsRequired          = errs.NewValueIsRequiredError("idempotency key")
)

// EventType is what earned or cost a staff member points.
type EventType int

const (
	UnknownEvent EventType = iota
	EarlyCompletion
	Rejection
)

func (t EventType) String() string {
	switch t {
	case EarlyCompletion:
		return "early_completion"
	case Rejection:
		return "rejection"
	default:
		return "unknown"
	}
}

// Points returns the score delta of the event.
func (t EventType) Points() int {
	switch t {
	case EarlyCompletion:
		return EarlyCompletionPoints
	case Rejection:
		return RejectionPoints
	default:
		return 0
	}
}

func ParseEventType(s string) (EventType, error) {
	switch s {
	case "early_completion":
		return EarlyCompletion, nil
	case "rejection":
		return Rejection, nil
	default:
		return UnknownEvent, errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a valid event type", s))
	}
}

// Delta is one append-only score change. Key is the idempotency key, usually
// the id of the order history entry that caused it.
type Delta struct {
	key       string
	eventType EventType
	points    int
	orderID   *kernel.UUID
	at        time.Time
}

func RestoreDelta(key string, eventType EventType, points int, orderID *kernel.UUID, at time.Time) (Delta, error) {
	if strings.TrimSpace(key) == "" {
		return Delta{}, ErrKeyIsRequired
	}
	if eventType.Points() == 0 {
		return Delta{}, errs.NewValueIsInvalidError("event type")
	}
	return Delta{key: key, eventType: eventType, points: points, orderID: orderID, at: at.UTC()}, nil
}

func (d Delta) Key() string           { return d.key }
func (d Delta) EventType() EventType  { return d.eventType }
func (d Delta) Points() int           { return d.points }
func (d Delta) OrderID() *kernel.UUID { return d.orderID }
func (d Delta) At() time.Time         { return d.at }

// Record is the performance history of one staff member.
type Record struct {
	staffID kernel.UUID
	deltas  []Delta
	version int
	guard   guard.ConstructorGuard
}

func NewRecord(staffID kernel.UUID) (*Record, error) {
	return RestoreRecord(staffID, nil, 0)
}

// RestoreRecord rebuilds a stored record. Version 0 means the record was never
// saved.
func RestoreRecord(staffID kernel.UUID, deltas []Delta, version int) (*Record, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", version))
	}
	return &Record{
		staffID: staffID,
		deltas:  slices.Clone(deltas),
		version: version,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) StaffID() kernel.UUID { return r.staffID }
func (r *Record) Deltas() []Delta      { return slices.Clone(r.deltas) }
func (r *Record) Version() int         { return r.version }

// AdvanceVersion is called by repositories once a save at Version() succeeded.
func (r *Record) AdvanceVersion() {
	r.version++
}

// Apply appends the delta for eventType unless key was already applied, in
// which case the earlier delta is returned and applied is false.
func (r *Record) Apply(key string, eventType EventType, orderID *kernel.UUID, at time.Time) (delta Delta, applied bool, err error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Delta{}, false, ErrKeyIsRequired
	}
	if i := slices.IndexFunc(r.deltas, func(d Delta) bool { return d.key == key }); i >= 0 {
		return r.deltas[i], false, nil
	}
	if eventType.Points() == 0 {
		return Delta{}, false, errs.NewValueIsInvalidError("event type")
	}
	if at.IsZero() {
		return Delta{}, false, errs.NewValueIsRequiredError("at")
	}

	delta = Delta{key: key, eventType: eventType, points: eventType.Points(), orderID: orderID, at: at.UTC()}
	r.deltas = append(r.deltas, delta)
	return delta, true, nil
}

// CurrentScore is BaseScore plus every delta. It may leave [0, 100].
func (r *Record) CurrentScore() int {
	score := BaseScore
	for _, d := range r.deltas {
		score += d.points
	}
	return score
}

// TotalScore is the fixed denominator scores are reported against.
func (r *Record) TotalScore() int {
	return BaseScore
}

func (r *Record) Rejections() int {
	return r.count(Rejection)
}

func (r *Record) EarlyCompletions() int {
	return r.count(EarlyCompletion)
}

// PeriodScore is BaseScore plus the deltas that fall in p.
func (r *Record) PeriodScore(p Period) int {
	score := BaseScore
	for _, d := range r.deltas {
		if PeriodOf(d.at) == p {
			score += d.points
		}
	}
	return score
}

// PeriodCounts returns the rejections and early completions recorded in p.
func (r *Record) PeriodCounts(p Period) (rejections, earlyCompletions int) {
	for _, d := range r.deltas {
		if PeriodOf(d.at) != p {
			continue
		}
		switch d.eventType {
		case Rejection:
			rejections++
		case EarlyCompletion:
			earlyCompletions++
		}
	}
	return rejections, earlyCompletions
}

func (r *Record) count(t EventType) int {
	n := 0
	for _, d := range r.deltas {
		if d.eventType == t {
			n++
		}
	}
	return n
}

// Clamp limits a score to [0, 100] for display.
func Clamp(score int) int {
	return max(0, min(score, BaseScore))
}
