package memory

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes until Commit. Reads see the staged rows first and
// then the committed ones.
type UnitOfWork struct {
	store  *Store
	active bool
	staged tables

	// versions holds, per updated row, the committed version the first update
	// was based on. added holds rows created in this unit of work.
	versions map[rowKey]int
	added    map[rowKey]struct{}
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uow.active {
		return nil
	}
	uow.active = true
	uow.staged = newTables()
	uow.versions = make(map[rowKey]int)
	uow.added = make(map[rowKey]struct{})
	return nil
}

// Commit applies the staged rows atomically. It fails with a conflict when an
// updated row was changed by another unit of work after it was read, or when
// an added row already exists.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, version := range uow.versions {
		if s.versionOf(key) != version {
			return errs.NewConflictError(key.table.String(), key.id.String(), version)
		}
	}
	for key := range uow.added {
		if s.versionOf(key) != absent {
			return alreadyExists(key.table.String(), key.id)
		}
	}

	s.merge(uow.staged)
	uow.reset()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.staged = tables{}
	uow.versions = nil
	uow.added = nil
}

func (uow *UnitOfWork) markAdded(key rowKey) {
	uow.added[key] = struct{}{}
}

// markUpdated records the version a write to key was based on. Rows added in
// this unit of work and rows already updated keep their first record.
func (uow *UnitOfWork) markUpdated(key rowKey, version int) {
	if _, ok := uow.added[key]; ok {
		return
	}
	if _, ok := uow.versions[key]; !ok {
		uow.versions[key] = version
	}
}

func (uow *UnitOfWork) checkActive() error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) ProductRepository() ports.ProductRepository {
	return &productRepository{uow: uow}
}

func (uow *UnitOfWork) StaffRepository() ports.StaffRepository {
	return &staffRepository{uow: uow}
}

func (uow *UnitOfWork) CommissionRepository() ports.CommissionRepository {
	return &commissionRepository{uow: uow}
}

func (uow *UnitOfWork) PerformanceRepository() ports.PerformanceRepository {
	return &performanceRepository{uow: uow}
}

func (uow *UnitOfWork) SalaryRepository() ports.SalaryRepository {
	return &salaryRepository{uow: uow}
}

func (uow *UnitOfWork) MonthlyReportRepository() ports.MonthlyReportRepository {
	return &reportRepository{uow: uow}
}

func (uow *UnitOfWork) CommentRepository() ports.CommentRepository {
	return &commentRepository{uow: uow}
}

// lookup returns the staged row for key, or the committed one. Reads outside
// a transaction see committed rows only.
func lookup[K comparable, V any](uow *UnitOfWork, pick func(tables) map[K]V, key K) (V, bool) {
	if uow.active {
		if v, ok := pick(uow.staged)[key]; ok {
			return v, true
		}
	}
	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	v, ok := pick(uow.store.tables)[key]
	return v, ok
}

// scan returns committed rows overlaid with staged ones.
func scan[K comparable, V any](uow *UnitOfWork, pick func(tables) map[K]V) map[K]V {
	uow.store.mu.RLock()
	rows := make(map[K]V, len(pick(uow.store.tables)))
	for k, v := range pick(uow.store.tables) {
		rows[k] = v
	}
	uow.store.mu.RUnlock()

	if uow.active {
		for k, v := range pick(uow.staged) {
			rows[k] = v
		}
	}
	return rows
}
