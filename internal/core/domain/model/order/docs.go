// Package order provides domain entities and business logic for restaurant
// order management. It implements the Order aggregate root with exclusive
// ownership of its line items, total consistency, and status transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, total, and lifecycle
//   - LineItem: An entity owned by Order, capturing menu item, quantity, and the unit price at order time
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier and a positive table number
//   - The order total always equals the sum of its line items' subtotals
//   - A line item subtotal is always quantity x captured unit price, never set independently
//   - Order status follows a linear workflow: New -> InProgress -> Fulfilled, no skipping, no going back
//   - Merging new line items into an order resets its status to New
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
