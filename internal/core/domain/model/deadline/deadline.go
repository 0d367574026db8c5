// Package deadline computes per-stage service-level deadlines in business days
// and classifies how close an order is to missing them. Everything here is a
// pure function of its arguments.
package deadline

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

const (
	// SalesReviewWindow is the wall-clock allowance for sales review.
	SalesReviewWindow = 6 * time.Hour
	// ApproachingWindow is how close to the deadline a stage counts as approaching.
	ApproachingWindow = 6 * time.Hour
)

// cumulative business days from order creation to the end of each stage.
var stageBusinessDays = map[order.Status]int{
	order.PendingOperation:              3,
	order.PendingOperationManagerReview: 4,
	order.AwaitingClientAcceptance:      5,
}

const (
	shippingBusinessDays          = 8
	shippingApostilleBusinessDays = 7
)

// State classifies the time left on a stage.
type State int

const (
	OnTrack State = iota
	Approaching
	Overdue
)

func (s State) String() string {
	switch s {
	case OnTrack:
		return "on_track"
	case Approaching:
		return "approaching"
	case Overdue:
		return "overdue"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsBusinessDay reports whether t falls on Monday to Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays moves forward one calendar day at a time, counting only
// weekdays, until n business days have been counted. The time of day is kept.
// The result is never on a weekend when n > 0; n <= 0 returns t unchanged.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if IsBusinessDay(t) {
			n--
		}
	}
	return t
}

// ForStage returns the deadline of stage for an order created at createdAt.
// ok is false for statuses without a running deadline.
func ForStage(stage order.Status, createdAt time.Time, hasApostille bool) (time.Time, bool) {
	switch stage {
	case order.PendingSalesReview:
		return createdAt.Add(SalesReviewWindow), true
	case order.ShippingPreparation:
		if hasApostille {
			return AddBusinessDays(createdAt, shippingApostilleBusinessDays), true
		}
		return AddBusinessDays(createdAt, shippingBusinessDays), true
	}
	days, ok := stageBusinessDays[stage]
	if !ok {
		return time.Time{}, false
	}
	return AddBusinessDays(createdAt, days), true
}

// Classify is overdue once now is past the deadline and approaching while
// less than ApproachingWindow remains.
func Classify(now, deadline time.Time) State {
	remaining := deadline.Sub(now)
	switch {
	case now.After(deadline):
		return Overdue
	case remaining < ApproachingWindow:
		return Approaching
	default:
		return OnTrack
	}
}

// Evaluation is the deadline view of an order's current stage.
type Evaluation struct {
	Stage      order.Status
	DeadlineAt time.Time
	Remaining  time.Duration
	State      State
}

// Evaluate classifies stage at now. ok is false for statuses without a deadline.
func Evaluate(stage order.Status, createdAt time.Time, hasApostille bool, now time.Time) (Evaluation, bool) {
	at, ok := ForStage(stage, createdAt, hasApostille)
	if !ok {
		return Evaluation{}, false
	}
	return Evaluation{
		Stage:      stage,
		DeadlineAt: at.UTC(),
		Remaining:  at.Sub(now),
		State:      Classify(now, at),
	}, true
}
