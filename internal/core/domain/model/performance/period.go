package performance

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Period is a calendar month in UTC.
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, errs.NewValueIsOutOfRangeError("month", int(month), 1, 12)
	}
	if year < 1 {
		return Period{}, errs.NewValueIsOutOfRangeError("year", year, 1, "unbounded")
	}
	return Period{Year: year, Month: month}, nil
}

// ParsePeriod accepts "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, errs.NewValueIsInvalidErrorWithCause("period", err)
	}
	return PeriodOf(t), nil
}

// PeriodOf returns the UTC month t falls in.
func PeriodOf(t time.Time) Period {
	u := t.UTC()
	return Period{Year: u.Year(), Month: u.Month()}
}

func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Start is the first instant of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
