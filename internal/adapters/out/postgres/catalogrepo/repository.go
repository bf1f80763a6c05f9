package catalogrepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalog implements the Catalog port using GORM. It also carries the
// write operations used to manage the menu: the order engine itself only
// reads, but seeding and administration need a way in.
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog creates a new GORM catalog repository.
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// GetItem retrieves the current view of a menu item: name, price, and
// availability. Cart submission captures the price from this view.
func (r *GormCatalog) GetItem(ctx context.Context, id kernel.UUID) (ports.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return ports.MenuItem{}, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return ports.MenuItem{}, err
	}

	return menuItemToView(dto)
}

// AddCategory inserts a new menu category.
func (r *GormCatalog) AddCategory(ctx context.Context, id kernel.UUID, name string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	dto := CategoryDTO{ID: id.Bytes(), Name: name}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddItem inserts a new menu item under a category.
func (r *GormCatalog) AddItem(
	ctx context.Context,
	id, categoryID kernel.UUID,
	name string,
	price kernel.Money,
	available bool,
) error {
	if err := errors.Join(id.Validate(), categoryID.Validate()); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	dto := MenuItemDTO{
		ID:         id.Bytes(),
		CategoryID: categoryID.Bytes(),
		Name:       name,
		PriceCents: price.Cents(),
		Available:  available,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// SetItemAvailability flips a menu item's availability flag.
// Returns an ObjectNotFoundError if no such item exists.
func (r *GormCatalog) SetItemAvailability(ctx context.Context, id kernel.UUID, available bool) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MenuItemDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{"available": available})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menuItem", id.String())
	}

	return nil
}

// RemoveItem hard-deletes a menu item. The database cascades the removal to
// line items referencing it; the totals of the affected orders are re-derived
// from their surviving line items in the same transaction, so the
// total-equals-sum-of-subtotals invariant holds across the cascade.
func (r *GormCatalog) RemoveItem(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`
			UPDATE orders SET total_cents = COALESCE((
				SELECT SUM(subtotal_cents)
				FROM order_line_items
				WHERE order_id = orders.id AND menu_item_id <> ?
			), 0)
			WHERE id IN (
				SELECT order_id FROM order_line_items WHERE menu_item_id = ?
			)
		`, id.Bytes(), id.Bytes()).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&MenuItemDTO{}, "id = ?", id.Bytes())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("menuItem", id.String())
		}

		return nil
	})
}
