// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the bakery system. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - TaskAggregator: derives and reconciles baking tasks from
//     production-relevant orders, grouped by cake specification
//   - TripLinkReconciler: repairs drift between a trip's membership and the
//     denormalized trip mirror carried by orders
//
// Both services are pure: they mutate the aggregates they are handed and
// report what changed, leaving persistence to the application layer.
package services
