package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres error codes surfaced by constraint violations.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// tableLockNamespace keys the advisory locks taken by LockTable, so they
// cannot collide with advisory locks other subsystems might take.
const tableLockNamespace = 4217

// ErrDuplicateOrder is returned when an insert collides with an already
// persisted order ID.
var ErrDuplicateOrder = errors.New("order already exists")

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.Items = nil

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapPgError(err)
	}

	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return mapPgError(err)
		}
	}

	return nil
}

// Update saves an existing order back to the database. Line items are append
// only; rows already present are left untouched, freshly merged ones are
// inserted alongside the order row update.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.Items = nil

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return mapPgError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if len(items) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&items).Error
		if err != nil {
			return mapPgError(err)
		}
	}

	return nil
}

// Get retrieves an order with its line items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByTable retrieves the table's order in New or InProgress status.
// The lifecycle rules keep at most one order open per table; the most
// recently touched one wins if legacy data ever violates that.
func (r *GormOrderRepository) GetOpenByTable(ctx context.Context, tableNumber int) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("updated_at DESC").
		First(&dto, "table_number = ? AND status IN ?", tableNumber, []int{int(order.New), int(order.InProgress)}).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tableNumber", tableNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// LockTable takes the advisory transaction lock for a table number. The lock
// is held until the surrounding transaction commits or rolls back, so
// concurrent cart submissions for the same table serialize while independent
// tables proceed in parallel.
func (r *GormOrderRepository) LockTable(ctx context.Context, tableNumber int) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", tableLockNamespace, tableNumber).
		Error
}

// Delete removes an order; the database cascades the removal to its line
// items. Returns an ObjectNotFoundError if no such order exists.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// DeleteAll wipes every order; line items go with them via the cascade.
// An already empty table is not an error.
func (r *GormOrderRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM orders").Error
}

// mapPgError translates Postgres constraint violations into domain-meaningful
// errors. A foreign key violation on insert means a referenced row (the menu
// item or the order) disappeared; a unique violation means an ID collision.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return errs.NewObjectNotFoundErrorWithCause("reference", pgErr.ConstraintName, err)
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicateOrder, pgErr.ConstraintName)
	default:
		return err
	}
}
