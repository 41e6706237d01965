// Package order provides domain entities and business logic for custom-cake
// order management. It implements the Order aggregate root with lifecycle
// management, the photo-approval revision loop, and driver assignment records.
//
// The package includes:
//   - Order: The aggregate root that owns identity, the append-only order log,
//     revision history, driver assignments, and the trip membership mirror
//   - Status: A state machine that enforces valid order status transitions
//   - KitchenStatus: The production substate of orders that are in the kitchen
//   - CakeSpec: The cake specification with its (shape, size, flavor) grouping key
//   - DeliveryAssignment: Preliminary and final driver assignment records
//
// Key business rules:
//   - Orders are identified by the shop-assigned MM-YY-NNN code
//   - Every status transition appends a status-change entry to the order log;
//     archive-restore reads that log to recover the pre-archive status
//   - The approval loop PendingApproval <-> NeedsRevision increments the
//     revision count and appends a Revision record on every revision request
//   - Cancellation is reachable from any non-terminal status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
