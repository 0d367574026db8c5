// Package memory is an in-process implementation of the persistence ports.
// Mutable aggregates are copied on every read and write, so callers never share
// state with the store; products and staff members are immutable and stored as
// given. Writes are staged per unit of work and applied on Commit, where the
// versions of orders, commission plans, performance records and salaries are
// checked the same way the SQL adapter checks them.
package memory

import (
	"sync"

	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
)

type reportKey struct {
	staffID kernel.UUID
	period  performance.Period
}

type table int

const (
	ordersTable table = iota
	productsTable
	staffTable
	commissionsTable
	recordsTable
	salariesTable
)

func (t table) String() string {
	switch t {
	case ordersTable:
		return "order"
	case productsTable:
		return "product"
	case staffTable:
		return "staff"
	case commissionsTable:
		return "commission plan"
	case recordsTable:
		return "performance record"
	case salariesTable:
		return "salary"
	default:
		return "unknown"
	}
}

// rowKey names one versioned row.
type rowKey struct {
	table table
	id    kernel.UUID
}

// absent is the version of a row that is not stored.
const absent = -1

// tables is one full set of rows. The store keeps the committed set and every
// unit of work keeps the rows it changed.
type tables struct {
	orders      map[kernel.UUID]order.Snapshot
	products    map[kernel.UUID]*product.Product
	staff       map[kernel.UUID]*staff.Staff
	commissions map[kernel.UUID]*commission.StaffCommission
	records     map[kernel.UUID]*performance.Record
	salaries    map[kernel.UUID]*performance.Salary
	reports     map[reportKey]performance.MonthlyReport
	comments    map[kernel.UUID][]*comment.Comment
}

func newTables() tables {
	return tables{
		orders:      make(map[kernel.UUID]order.Snapshot),
		products:    make(map[kernel.UUID]*product.Product),
		staff:       make(map[kernel.UUID]*staff.Staff),
		commissions: make(map[kernel.UUID]*commission.StaffCommission),
		records:     make(map[kernel.UUID]*performance.Record),
		salaries:    make(map[kernel.UUID]*performance.Salary),
		reports:     make(map[reportKey]performance.MonthlyReport),
		comments:    make(map[kernel.UUID][]*comment.Comment),
	}
}

// versionOf returns the stored version of the row, or absent. Products and
// staff members are never updated and always report version 0.
func (t tables) versionOf(key rowKey) int {
	switch key.table {
	case ordersTable:
		if s, ok := t.orders[key.id]; ok {
			return s.Version
		}
	case productsTable:
		if _, ok := t.products[key.id]; ok {
			return 0
		}
	case staffTable:
		if _, ok := t.staff[key.id]; ok {
			return 0
		}
	case commissionsTable:
		if c, ok := t.commissions[key.id]; ok {
			return c.Version()
		}
	case recordsTable:
		if r, ok := t.records[key.id]; ok {
			return r.Version()
		}
	case salariesTable:
		if s, ok := t.salaries[key.id]; ok {
			return s.Version()
		}
	}
	return absent
}

// merge copies every row of staged into t. Comments are appended.
func (t tables) merge(staged tables) {
	for k, v := range staged.orders {
		t.orders[k] = v
	}
	for k, v := range staged.products {
		t.products[k] = v
	}
	for k, v := range staged.staff {
		t.staff[k] = v
	}
	for k, v := range staged.commissions {
		t.commissions[k] = v
	}
	for k, v := range staged.records {
		t.records[k] = v
	}
	for k, v := range staged.salaries {
		t.salaries[k] = v
	}
	for k, v := range staged.reports {
		t.reports[k] = v
	}
	for k, v := range staged.comments {
		t.comments[k] = append(t.comments[k], v...)
	}
}

// Store holds the committed state shared by all units of work.
type Store struct {
	mu sync.RWMutex
	tables
}

func NewStore() *Store {
	return &Store{tables: newTables()}
}
