package memory

import (
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/performance"
)

func cloneCommission(c *commission.StaffCommission) (*commission.StaffCommission, error) {
	return commission.RestoreStaffCommission(c.StaffID(), c.Currency(), c.Tiers(), c.Entries(), c.Version())
}

func cloneRecord(r *performance.Record) (*performance.Record, error) {
	return performance.RestoreRecord(r.StaffID(), r.Deltas(), r.Version())
}

func cloneSalary(s *performance.Salary) (*performance.Salary, error) {
	return performance.RestoreSalary(s.StaffID(), s.Terms(), s.TotalRejectionFees(), s.PendingDeductions(), s.Version())
}
