// Package order provides domain entities and business logic for customer-order
// management in the shop system. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages items, totals, statuses and carrier state
//   - Status: A state machine that enforces valid order status transitions
//   - PaymentStatus: An independent enum tracking the payment side of an order
//   - LineItem: A value object binding a purchased quantity to one fulfilling branch
//
// Key business rules:
//   - Orders follow the workflow Pending -> Confirmed -> Processing -> Shipping -> Delivered
//   - Cancellation is possible from any non-terminal status; return only after delivery
//   - Cancelled and Returned orders must carry a status reason
//   - Inventory restoration for an order happens at most once
//   - Every committed mutation bumps the optimistic-concurrency version by one
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
