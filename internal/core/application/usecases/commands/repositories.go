// Package commands contains the write side of the workflow. Every handler
// follows the same shape: validate the command, open a unit of work, load the
// aggregates, let the domain decide, persist, commit.
package commands

import (
	"time"

	"fulfillment/internal/core/ports"
)

type (
	// UoWFactory creates a unit of work per handled command.
	UoWFactory interface {
		Create() ports.UnitOfWork
	}

	// Clock supplies the time stamped on history entries, accruals and reports.
	Clock interface {
		Now() time.Time
	}
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
