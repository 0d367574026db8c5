package performance

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSalaryIsNotConstructed = errors.New("Salary must be created via NewSalary or RestoreSalary")

// Deduction is queued against the next payment.
type Deduction struct {
	Period Period
	Amount kernel.Money
}

// Salary holds the pay settings of a staff member and the deductions queued by
// the performance engine. Rejection fees and monthly deductions are separate
// mechanisms and both apply.
type Salary struct {
	staffID                   kernel.UUID
	base                      kernel.Money
	underperformanceDeduction kernel.Money
	underperformanceThreshold int
	rejectionFee              kernel.Money
	totalRejectionFees        kernel.Money
	nextPaymentDate           time.Time
	deductions                []Deduction
	version                   int
	guard                     guard.ConstructorGuard
}

// SalaryTerms are the configurable parts of a salary.
type SalaryTerms struct {
	Base                      kernel.Money
	UnderperformanceDeduction kernel.Money
	UnderperformanceThreshold int
	RejectionFee              kernel.Money
	NextPaymentDate           time.Time
}

func NewSalary(staffID kernel.UUID, terms SalaryTerms) (*Salary, error) {
	zero, err := kernel.ZeroMoney(terms.Base.Currency())
	if err != nil {
		return nil, err
	}
	return RestoreSalary(staffID, terms, zero, nil, 0)
}

func RestoreSalary(
	staffID kernel.UUID,
	terms SalaryTerms,
	totalRejectionFees kernel.Money,
	deductions []Deduction,
	version int,
) (*Salary, error) {
	if err := errors.Join(
		staffID.Validate(),
		terms.Base.Validate(),
		terms.UnderperformanceDeduction.Validate(),
		terms.RejectionFee.Validate(),
		totalRejectionFees.Validate(),
	); err != nil {
		return nil, err
	}

	cur := terms.Base.Currency()
	for _, m := range []kernel.Money{terms.UnderperformanceDeduction, terms.RejectionFee, totalRejectionFees} {
		if !m.Currency().IsEqual(cur) {
			return nil, errs.NewValueIsInvalidError("salary currency")
		}
		if m.IsNegative() {
			return nil, errs.NewValueIsOutOfRangeError("salary amount", m.String(), 0, "unbounded")
		}
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", version))
	}
	if terms.UnderperformanceThreshold < 0 || terms.UnderperformanceThreshold > BaseScore {
		return nil, errs.NewValueIsOutOfRangeError("underperformanceThreshold", terms.UnderperformanceThreshold, 0, BaseScore)
	}

	return &Salary{
		staffID:                   staffID,
		base:                      terms.Base,
		underperformanceDeduction: terms.UnderperformanceDeduction,
		underperformanceThreshold: terms.UnderperformanceThreshold,
		rejectionFee:              terms.RejectionFee,
		totalRejectionFees:        totalRejectionFees,
		nextPaymentDate:           terms.NextPaymentDate.UTC(),
		deductions:                slices.Clone(deductions),
		version:                   version,
		guard:                     guard.NewConstructorGuard(),
	}, nil
}

func (s *Salary) Validate() error {
	if s == nil {
		return ErrSalaryIsNotConstructed
	}
	return s.guard.Validate(ErrSalaryIsNotConstructed)
}

func (s *Salary) StaffID() kernel.UUID             { return s.staffID }
func (s *Salary) TotalRejectionFees() kernel.Money { return s.totalRejectionFees }
func (s *Salary) PendingDeductions() []Deduction   { return slices.Clone(s.deductions) }
func (s *Salary) Version() int                     { return s.version }

// AdvanceVersion is called by repositories once a write at Version() succeeded.
func (s *Salary) AdvanceVersion() {
	s.version++
}

func (s *Salary) Terms() SalaryTerms {
	return SalaryTerms{
		Base:                      s.base,
		UnderperformanceDeduction: s.underperformanceDeduction,
		UnderperformanceThreshold: s.underperformanceThreshold,
		RejectionFee:              s.rejectionFee,
		NextPaymentDate:           s.nextPaymentDate,
	}
}

// IsUnderperforming reports whether score is below the staff threshold.
func (s *Salary) IsUnderperforming(score int) bool {
	return score < s.underperformanceThreshold
}

// AccrueRejectionFee adds the flat per-rejection fee to the running total.
func (s *Salary) AccrueRejectionFee() error {
	total, err := s.totalRejectionFees.Add(s.rejectionFee)
	if err != nil {
		return err
	}
	s.totalRejectionFees = total
	return nil
}

// QueueDeduction schedules the underperformance deduction for p. Only one
// deduction is queued per period; queued is false if p already has one.
func (s *Salary) QueueDeduction(p Period) (d Deduction, queued bool) {
	if i := slices.IndexFunc(s.deductions, func(d Deduction) bool { return d.Period == p }); i >= 0 {
		return s.deductions[i], false
	}
	d = Deduction{Period: p, Amount: s.underperformanceDeduction}
	s.deductions = append(s.deductions, d)
	return d, true
}

// NextPayment is the base salary less every queued deduction.
func (s *Salary) NextPayment() kernel.Money {
	net := s.base
	for _, d := range s.deductions {
		if v, err := net.Sub(d.Amount); err == nil {
			net = v
		}
	}
	return net
}

func (s *Salary) NextPaymentDate() time.Time {
	return s.nextPaymentDate
}
