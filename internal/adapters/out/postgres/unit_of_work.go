// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. Every mutating use case runs inside one database transaction:
// a cart merge and its total recompute, a status transition, a cascade delete.
// Repositories obtained from an active unit of work are bound to its
// transaction; obtained outside one, they fall back to the shared connection.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"tableside/internal/adapters/out/postgres/catalogrepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// connection. Each business operation gets a fresh instance with its own
// transaction state, isolated from concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided connection is shared by all instances it creates.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready to begin a transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction for a business
// operation. The per-table advisory locks taken through its order repository
// are transaction scoped, so releasing them is tied to Commit and Rollback
// and a lock can never outlive the work it protected.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a new database transaction. Calling Begin again on an
// instance with an active transaction is a no-op rather than a nesting.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Safe to call from a defer after Commit: without an active transaction it
// returns gorm.ErrInvalidTransaction and touches nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction if one is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db)
}

// Catalog returns a catalog reader bound to the current transaction if one
// is active, so price capture observes the snapshot the append writes to.
func (uow *GormUnitOfWork) Catalog() ports.Catalog {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return catalogrepo.NewGormCatalog(db)
}
