// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and their
// database representations.
package orderrepo

import (
	"fmt"
	"time"

	"tableside/internal/adapters/out/postgres/catalogrepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order row carries the stored total; the owned line items live in their
// own table and are removed by the database when the order row goes away.
type OrderDTO struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	TableNumber int           `gorm:"index"`
	Status      int           `gorm:"index"`
	TotalCents  int64
	Items       []LineItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// BeforeCreate stamps both timestamps when an order row is first written.
func (o *OrderDTO) BeforeCreate(_ *gorm.DB) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	return nil
}

// BeforeSave stamps updated_at on every write path, so a merge, a status
// transition, and a direct save all touch the row uniformly.
func (o *OrderDTO) BeforeSave(_ *gorm.DB) error {
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// LineItemDTO represents one persisted line item row. The subtotal column is
// stored for reporting convenience but is always written as quantity times the
// captured unit price; reads verify the equality and reject drifted rows.
//
// The MenuItem association exists only to declare the cascade foreign key to
// the menu_items table; it is never preloaded or written through.
type LineItemDTO struct {
	ID             uuid.UUID                `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID                `gorm:"type:uuid;index"`
	MenuItemID     uuid.UUID                `gorm:"type:uuid;index"`
	MenuItem       *catalogrepo.MenuItemDTO `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnDelete:CASCADE"`
	Quantity       int
	UnitPriceCents int64
	SubtotalCents  int64
}

// TableName specifies the database table name for line item entities.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order aggregate to its database representation,
// deriving every stored subtotal from quantity and captured unit price.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			ID:             item.ID().Bytes(),
			OrderID:        aggregate.ID().Bytes(),
			MenuItemID:     item.MenuItemID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
			SubtotalCents:  item.Subtotal().Cents(),
		})
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		TableNumber: aggregate.TableNumber(),
		Status:      int(aggregate.Status()),
		TotalCents:  aggregate.Total().Cents(),
		Items:       itemDTOs,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate. Stored
// subtotals and the stored total are checked against their derivations;
// a mismatch means corrupted data and fails the read.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.TableNumber,
		items,
		total,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoneyFromCents(dto.UnitPriceCents)
	if err != nil {
		return nil, err
	}

	item, err := order.RestoreLineItem(id, menuItemID, dto.Quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	if item.Subtotal().Cents() != dto.SubtotalCents {
		return nil, fmt.Errorf("%w: line item %s stored %d, derived %d",
			order.ErrTotalMismatch, id, dto.SubtotalCents, item.Subtotal().Cents())
	}

	return item, nil
}
