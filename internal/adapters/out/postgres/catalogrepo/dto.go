// Package catalogrepo provides persistence for the menu catalog: categories
// and the menu items the order engine prices carts against. It implements the
// Catalog port consumed by cart submission.
package catalogrepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryDTO represents a menu category row. Deleting a category cascades to
// its menu items, and from there to any line items referencing them.
type CategoryDTO struct {
	ID    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name  string        `gorm:"uniqueIndex"`
	Items []MenuItemDTO `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for category entities.
func (CategoryDTO) TableName() string {
	return "categories"
}

// MenuItemDTO represents a menu item row: the current price and the
// availability flag consulted when a cart is submitted.
type MenuItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	PriceCents int64
	Available  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for menu item entities.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// BeforeCreate stamps both timestamps when a menu item row is first written.
func (m *MenuItemDTO) BeforeCreate(_ *gorm.DB) error {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}

// BeforeSave stamps updated_at on every write path.
func (m *MenuItemDTO) BeforeSave(_ *gorm.DB) error {
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// menuItemToView converts a menu item row to the read view the order engine
// consumes.
func menuItemToView(dto MenuItemDTO) (ports.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.MenuItem{}, err
	}

	price, err := kernel.NewMoneyFromCents(dto.PriceCents)
	if err != nil {
		return ports.MenuItem{}, err
	}

	return ports.MenuItem{
		ID:        id,
		Name:      dto.Name,
		Price:     price,
		Available: dto.Available,
	}, nil
}
