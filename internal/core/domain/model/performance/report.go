package performance

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Status buckets a monthly score.
type Status int

const (
	UnknownStatus Status = iota
	Excellent
	Good
	Fair
	Poor
)

// Lower bounds of each bucket. They are business settings, not derived facts.
const (
	ExcellentThreshold = 90
	GoodThreshold      = 75
	FairThreshold      = 60
)

func StatusFor(score int) Status {
	switch {
	case score >= ExcellentThreshold:
		return Excellent
	case score >= GoodThreshold:
		return Good
	case score >= FairThreshold:
		return Fair
	default:
		return Poor
	}
}

func (s Status) String() string {
	switch s {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Fair:
		return "fair"
	case Poor:
		return "poor"
	default:
		return "unknown"
	}
}

// ParseStatus converts the persisted representation of a status.
func ParseStatus(s string) (Status, error) {
	for _, status := range []Status{Excellent, Good, Fair, Poor} {
		if status.String() == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("performance status", fmt.Errorf("%q is not a valid status", s))
}

// MonthlyReport summarises a staff member's month.
type MonthlyReport struct {
	StaffID          kernel.UUID
	Period           Period
	TotalScore       int
	ScoreTrend       int
	Status           Status
	Rejections       int
	EarlyCompletions int
	SalaryImpact     bool
	DeductionAmount  kernel.Money
	GeneratedAt      time.Time
}
