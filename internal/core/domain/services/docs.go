// Package services holds domain logic that spans more than one aggregate:
//   - StaffAssigner: checks staff eligibility before putting them on an order
//   - PerformanceScorer: turns order events into performance points, rejection
//     fees and monthly reports
package services
